// Package gazetteer resolves named historical periods ("Roman",
// "Edwardian") to year spans.
//
// A Gazetteer is queried with a period label and the identifier of the
// authority whose definitions apply. Implementations in this package:
//
//   - Table: an in-memory table built from YAML period lists, with
//     embedded defaults per language
//   - Index: the SQLite periods index populated by "yearspans periods import"
//   - PeriodO: an HTTP client fetching authority documents from PeriodO
//   - Memo: a concurrent cache over any other gazetteer
//   - Chain: tries several gazetteers in order
package gazetteer

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/yearspans/internal/span"
)

// ErrNotFound is returned when a gazetteer has no period for a label.
var ErrNotFound = errors.New("period not found")

// Gazetteer looks up named periods.
//
// Lookup returns ErrNotFound (possibly wrapped) when the label is unknown
// to the authority. Any other error is a failure of the gazetteer itself.
// Implementations must be safe for concurrent use.
type Gazetteer interface {
	Lookup(ctx context.Context, label, authority string) (span.YearSpan, error)
}

// Func adapts a function to the Gazetteer interface.
type Func func(ctx context.Context, label, authority string) (span.YearSpan, error)

// Lookup calls f.
func (f Func) Lookup(ctx context.Context, label, authority string) (span.YearSpan, error) {
	return f(ctx, label, authority)
}

// IsNotFound reports whether err means the period is unknown.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Key is the form labels are compared in: case-folded, NFC and with
// whitespace runs collapsed. "  Early  MEDIEVAL" and "early medieval" share
// a key.
func Key(label string) string {
	folded := cases.Fold().String(norm.NFC.String(label))
	return strings.Join(strings.Fields(folded), " ")
}

func notFound(label, authority string) error {
	return errors.Wrapf(ErrNotFound, "%q in %s", label, authority)
}
