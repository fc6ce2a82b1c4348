package gazetteer

import (
	"context"

	"github.com/roach88/yearspans/internal/span"
)

// Chain asks each gazetteer in turn and returns the first period found.
// Nil entries are skipped. When none finds the label, the first error
// other than not-found is returned, or a not-found error if there was none.
type Chain []Gazetteer

// Lookup implements Gazetteer.
func (c Chain) Lookup(ctx context.Context, label, authority string) (span.YearSpan, error) {
	var firstErr error
	for _, g := range c {
		if g == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return span.Unresolved(), err
		}
		s, err := g.Lookup(ctx, label, authority)
		if err == nil {
			return s, nil
		}
		if !IsNotFound(err) && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return span.Unresolved(), firstErr
	}
	return span.Unresolved(), notFound(label, authority)
}
