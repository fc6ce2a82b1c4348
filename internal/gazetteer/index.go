package gazetteer

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/roach88/yearspans/internal/span"
	"github.com/roach88/yearspans/internal/store"
)

// Index is a Gazetteer over the SQLite periods index.
type Index struct {
	st *store.Store
}

// NewIndex wraps an open store.
func NewIndex(st *store.Store) *Index {
	return &Index{st: st}
}

// Lookup finds label under authority, then among periods imported without
// an authority.
func (x *Index) Lookup(ctx context.Context, label, authority string) (span.YearSpan, error) {
	k := Key(label)
	for _, a := range []string{authority, ""} {
		p, err := x.st.FindPeriod(ctx, a, k)
		if errors.Is(err, sql.ErrNoRows) {
			if a == "" {
				break
			}
			continue
		}
		if err != nil {
			return span.Unresolved(), errors.Wrapf(err, "index lookup %q", label)
		}
		return span.New(p.MinYear, p.MaxYear), nil
	}
	return span.Unresolved(), notFound(label, authority)
}

// ImportTable writes a period table into the index. A non-empty authority
// overrides the table's own.
func ImportTable(ctx context.Context, st *store.Store, source, authority string, f *TableFile) (store.Import, error) {
	if authority == "" {
		authority = f.Authority
	}
	periods := make([]store.Period, 0, len(f.Periods))
	for _, p := range f.Periods {
		periods = append(periods, store.Period{
			LabelKey: Key(p.Label),
			Label:    p.Label,
			Language: f.Language,
			URI:      p.URI,
			MinYear:  p.Min,
			MaxYear:  p.Max,
		})
	}
	imp, err := st.ImportPeriods(ctx, source, authority, periods)
	if err != nil {
		return store.Import{}, errors.Wrapf(err, "import %s", source)
	}
	return imp, nil
}

// ImportEntries writes PeriodO entries into the index. Entries keep their
// own authority; authority names the batch and fills entries that have
// none.
func ImportEntries(ctx context.Context, st *store.Store, source, authority string, entries []Entry) (store.Import, error) {
	periods := make([]store.Period, 0, len(entries))
	for _, e := range entries {
		lo, _ := e.Span.Min()
		hi, _ := e.Span.Max()
		periods = append(periods, store.Period{
			AuthorityID: e.Authority,
			LabelKey:    Key(e.Label),
			Label:       e.Label,
			Language:    e.Language,
			URI:         e.URI,
			MinYear:     lo,
			MaxYear:     hi,
		})
	}
	imp, err := st.ImportPeriods(ctx, source, authority, periods)
	if err != nil {
		return store.Import{}, errors.Wrapf(err, "import %s", source)
	}
	return imp, nil
}
