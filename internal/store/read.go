package store

import (
	"context"
	"database/sql"
	"fmt"
)

// FindPeriod retrieves the period with the given label key under an
// authority. Returns sql.ErrNoRows if not found.
func (s *Store) FindPeriod(ctx context.Context, authorityID, labelKey string) (Period, error) {
	var p Period
	err := s.db.QueryRowContext(ctx, `
		SELECT authority_id, label_key, label, language, uri, min_year, max_year, import_id
		FROM periods
		WHERE authority_id = ? AND label_key = ?
	`, authorityID, labelKey).Scan(
		&p.AuthorityID,
		&p.LabelKey,
		&p.Label,
		&p.Language,
		&p.URI,
		&p.MinYear,
		&p.MaxYear,
		&p.ImportID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Period{}, err
		}
		return Period{}, fmt.Errorf("find period: %w", err)
	}
	return p, nil
}

// CountPeriods returns the number of periods under an authority, or in the
// whole index when authorityID is empty.
func (s *Store) CountPeriods(ctx context.Context, authorityID string) (int, error) {
	var n int
	var err error
	if authorityID == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM periods`).Scan(&n)
	} else {
		err = s.db.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM periods WHERE authority_id = ?
		`, authorityID).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count periods: %w", err)
	}
	return n, nil
}

// ListImports returns every import batch, oldest first.
//
// Returns an empty slice (not nil) if nothing has been imported.
func (s *Store) ListImports(ctx context.Context) ([]Import, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, authority_id, period_count, skipped
		FROM imports
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}
	defer rows.Close()

	imports := []Import{}
	for rows.Next() {
		var imp Import
		if err := rows.Scan(&imp.ID, &imp.Source, &imp.AuthorityID, &imp.PeriodCount, &imp.Skipped); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		imports = append(imports, imp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate imports: %w", err)
	}
	return imports, nil
}
