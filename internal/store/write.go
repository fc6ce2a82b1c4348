package store

import (
	"context"
	"fmt"
)

// Period is one row of the periods table.
type Period struct {
	AuthorityID string
	LabelKey    string
	Label       string
	Language    string
	URI         string
	MinYear     int
	MaxYear     int
	ImportID    string
}

// Import describes one import batch.
type Import struct {
	ID          string
	Source      string
	AuthorityID string
	PeriodCount int
	Skipped     int
}

// ImportPeriods writes periods as one batch in a single transaction.
//
// Each period's AuthorityID defaults to authorityID when empty. Periods
// whose (authority, label key) already exist are skipped and counted in
// Import.Skipped. A period with an empty label key or min > max fails the
// whole batch.
func (s *Store) ImportPeriods(ctx context.Context, source, authorityID string, periods []Period) (Import, error) {
	imp := Import{
		ID:          s.idGen.Generate(),
		Source:      source,
		AuthorityID: authorityID,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Import{}, fmt.Errorf("import periods: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO imports (id, source, authority_id)
		VALUES (?, ?, ?)
	`, imp.ID, imp.Source, imp.AuthorityID); err != nil {
		return Import{}, fmt.Errorf("import periods: write batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO periods
		(authority_id, label_key, label, language, uri, min_year, max_year, import_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(authority_id, label_key) DO NOTHING
	`)
	if err != nil {
		return Import{}, fmt.Errorf("import periods: prepare: %w", err)
	}
	defer stmt.Close()

	for i, p := range periods {
		if p.LabelKey == "" {
			return Import{}, fmt.Errorf("import periods: period %d (%q) has no label key", i, p.Label)
		}
		if p.MinYear > p.MaxYear {
			return Import{}, fmt.Errorf("import periods: period %q: min year %d after max year %d", p.Label, p.MinYear, p.MaxYear)
		}
		authority := p.AuthorityID
		if authority == "" {
			authority = authorityID
		}
		res, err := stmt.ExecContext(ctx,
			authority,
			p.LabelKey,
			p.Label,
			p.Language,
			p.URI,
			p.MinYear,
			p.MaxYear,
			imp.ID,
		)
		if err != nil {
			return Import{}, fmt.Errorf("import periods: write %q: %w", p.Label, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return Import{}, fmt.Errorf("import periods: %w", err)
		}
		if n == 0 {
			imp.Skipped++
		} else {
			imp.PeriodCount++
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE imports SET period_count = ?, skipped = ? WHERE id = ?
	`, imp.PeriodCount, imp.Skipped, imp.ID); err != nil {
		return Import{}, fmt.Errorf("import periods: update batch: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Import{}, fmt.Errorf("import periods: commit: %w", err)
	}
	return imp, nil
}
