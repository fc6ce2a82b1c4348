package engine

import (
	"context"
	"fmt"
	"regexp"

	"github.com/roach88/yearspans/internal/calendar"
	"github.com/roach88/yearspans/internal/span"
	"github.com/roach88/yearspans/internal/vocab"
)

// Rule recognizes one shape of temporal expression.
//
// Match is given normalized text and must consider the whole of it. It
// reports false when the text is not of its shape or yields no span; it
// never panics or errors on ordinary input.
type Rule interface {
	Name() string
	Match(ctx context.Context, text string) (span.YearSpan, bool)
}

// BuildFunc constructs a rule for one language. It may return a nil Rule
// when the language has no form for it (e.g. no decade grammar).
type BuildFunc func(env *Env) (Rule, error)

// RuleSpec is a named, not yet built rule. Names are the stable handles
// variants use to replace or suppress rules.
type RuleSpec struct {
	Name  string
	Build BuildFunc
}

// Env is what a rule is built against: a vocabulary, a calendar and the
// named-period lookup.
type Env struct {
	Vocab    *vocab.Vocabulary
	Calendar calendar.Calendar

	lookup func(ctx context.Context, label string) (span.YearSpan, bool)
}

// Lookup resolves a period label through the engine's gazetteer. It reports
// false when there is no gazetteer or the lookup fails in any way.
func (e *Env) Lookup(ctx context.Context, label string) (span.YearSpan, bool) {
	if e.lookup == nil {
		return span.Unresolved(), false
	}
	return e.lookup(ctx, label)
}

// Prefix is an optional precision prefix captured as name.
func (e *Env) Prefix(name string) string {
	if len(e.Vocab.Prefixes) == 0 {
		return ""
	}
	return vocab.Maybe(name, alternation(e.Vocab.Prefixes.Patterns()))
}

// Suffix is an optional era suffix captured as name.
func (e *Env) Suffix(name string) string {
	return vocab.Maybe(name, alternation(e.Vocab.Suffixes.Patterns()))
}

// Separator matches one range separator.
func (e *Env) Separator() string {
	return vocab.OneOf("", e.Vocab.Separators)
}

// Ordinal captures an ordinal number word as name.
func (e *Env) Ordinal(name string) string {
	return vocab.OneOf(name, e.Vocab.Ordinals.Patterns())
}

// Cardinal captures a one or two digit number, or a cardinal word, as name.
func (e *Env) Cardinal(name string) string {
	return vocab.OneOf(name, append([]string{`\d{1,2}`}, e.Vocab.Cardinals.Patterns()...))
}

// CenturyWord is the language's century noun.
func (e *Env) CenturyWord() string {
	return vocab.Group("", e.Vocab.Century)
}

// MillenniumWord is the language's millennium noun.
func (e *Env) MillenniumWord() string {
	return vocab.Group("", e.Vocab.Millennium)
}

// Marker is the optional word some languages put before a year ("de 1066",
// "roku 1066").
func (e *Env) Marker() string {
	if e.Vocab.YearMarker == "" {
		return ""
	}
	return vocab.Maybe("", e.Vocab.YearMarker)
}

// Year captures a numeric year as name.
func (e *Env) Year(name string) string {
	return vocab.Group(name, vocab.NumericYear)
}

func alternation(patterns []string) string {
	return vocab.OneOf("", patterns)
}

// Submatches gives named access to a regular expression match.
type Submatches struct {
	names  []string
	values []string
}

// Get returns the text captured by the named group, or "".
func (m Submatches) Get(name string) string {
	for i, n := range m.names {
		if n == name && i < len(m.values) {
			return m.values[i]
		}
	}
	return ""
}

// Extractor turns a match into a span.
type Extractor func(env *Env, m Submatches) (span.YearSpan, bool)

type patternRule struct {
	name    string
	env     *Env
	re      *regexp.Regexp
	extract Extractor
}

// NewPatternRule compiles expr as a whole-string, case-insensitive pattern
// and returns a rule that hands matches to extract.
func NewPatternRule(name string, env *Env, expr string, extract Extractor) (Rule, error) {
	re, err := regexp.Compile(vocab.Anchor(expr))
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	return &patternRule{name: name, env: env, re: re, extract: extract}, nil
}

func (r *patternRule) Name() string {
	return r.name
}

func (r *patternRule) Match(_ context.Context, text string) (span.YearSpan, bool) {
	values := r.re.FindStringSubmatch(text)
	if values == nil {
		return span.Unresolved(), false
	}
	s, ok := r.extract(r.env, Submatches{names: r.re.SubexpNames(), values: values})
	if !ok || !s.IsResolved() {
		return span.Unresolved(), false
	}
	return s, true
}

type funcRule struct {
	name string
	fn   func(ctx context.Context, text string) (span.YearSpan, bool)
}

// RuleFunc adapts a plain function to the Rule interface.
func RuleFunc(name string, fn func(ctx context.Context, text string) (span.YearSpan, bool)) Rule {
	return &funcRule{name: name, fn: fn}
}

func (r *funcRule) Name() string {
	return r.name
}

func (r *funcRule) Match(ctx context.Context, text string) (span.YearSpan, bool) {
	return r.fn(ctx, text)
}
