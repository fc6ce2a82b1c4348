package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/yearspans/internal/calendar"
	"github.com/roach88/yearspans/internal/gazetteer"
	"github.com/roach88/yearspans/internal/span"
	"github.com/roach88/yearspans/internal/vocab"
)

// DefaultLookupTimeout bounds a single named-period lookup.
const DefaultLookupTimeout = 2 * time.Second

// Engine resolves expressions with one variant's built rule cascade.
//
// An Engine is immutable after New and safe for concurrent use. The only
// blocking work is the named-period lookup, which is bounded by the lookup
// timeout and by the caller's context.
type Engine struct {
	variant   Variant
	rules     []Rule
	present   int
	authority string
	gazetteer gazetteer.Gazetteer
	timeout   time.Duration
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithPresent sets the BP epoch, overriding the variant's.
// Non-positive values are ignored.
func WithPresent(present int) EngineOption {
	return func(e *Engine) {
		if present > 0 {
			e.present = present
		}
	}
}

// WithAuthority sets the named-period authority, overriding the variant's.
// An empty id is ignored.
func WithAuthority(id string) EngineOption {
	return func(e *Engine) {
		if id != "" {
			e.authority = id
		}
	}
}

// WithGazetteer enables the named-period rules. Without a gazetteer they
// never match.
func WithGazetteer(g gazetteer.Gazetteer) EngineOption {
	return func(e *Engine) {
		e.gazetteer = g
	}
}

// WithLookupTimeout bounds each gazetteer lookup. Zero or negative leaves
// lookups bounded only by the caller's context.
func WithLookupTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.timeout = d
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New builds every rule of the variant against its vocabulary.
//
// It fails with a *VariantError when two rules share a name or a rule does
// not build. Rules whose builder returns no rule (the language lacks that
// form) are left out of the cascade.
func New(v Variant, opts ...EngineOption) (*Engine, error) {
	if v.Vocabulary == nil {
		return nil, &VariantError{
			Code:    ErrCodeUnknownLanguage,
			Message: fmt.Sprintf("variant %q has no vocabulary", v.Language),
		}
	}

	e := &Engine{
		variant:   v,
		present:   v.Present,
		authority: v.Authority,
		timeout:   DefaultLookupTimeout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	env := &Env{
		Vocab:    v.Vocabulary,
		Calendar: calendar.New(e.present),
		lookup:   e.lookup,
	}
	e.present = env.Calendar.Present

	seen := make(map[string]bool, len(v.Rules))
	for _, spec := range v.Rules {
		if seen[spec.Name] {
			return nil, &VariantError{
				Code:    ErrCodeDuplicateRule,
				Rule:    spec.Name,
				Message: "rule appears more than once",
			}
		}
		seen[spec.Name] = true
		if spec.Build == nil {
			return nil, &VariantError{
				Code:    ErrCodeBadPattern,
				Rule:    spec.Name,
				Message: "rule has no builder",
			}
		}
		rule, err := spec.Build(env)
		if err != nil {
			return nil, &VariantError{
				Code:    ErrCodeBadPattern,
				Rule:    spec.Name,
				Message: "build rule",
				Err:     err,
			}
		}
		if rule == nil {
			continue
		}
		e.rules = append(e.rules, rule)
	}
	return e, nil
}

// NewForLanguage is ForLanguage followed by New.
func NewForLanguage(tag string, opts ...EngineOption) (*Engine, error) {
	v, err := ForLanguage(tag)
	if err != nil {
		return nil, err
	}
	return New(v, opts...)
}

// Language returns the variant's language code.
func (e *Engine) Language() string { return e.variant.Language }

// Present returns the BP epoch in use.
func (e *Engine) Present() int { return e.present }

// Authority returns the named-period authority in use.
func (e *Engine) Authority() string { return e.authority }

// RuleNames lists the built rules in cascade order.
func (e *Engine) RuleNames() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name()
	}
	return names
}

// Result is the outcome of resolving one expression.
type Result struct {
	// Input is the normalized expression.
	Input string `json:"input"`

	// Span is unresolved when no rule matched.
	Span span.YearSpan `json:"span"`

	// Rule names the rule that matched, or is empty.
	Rule string `json:"rule,omitempty"`
}

// Resolved reports whether a rule matched.
func (r Result) Resolved() bool {
	return r.Span.IsResolved()
}

// Resolve returns the span for text, or false if no rule matches. Failing
// to resolve is routine and never an error.
func (e *Engine) Resolve(ctx context.Context, text string) (span.YearSpan, bool) {
	r := e.Explain(ctx, text)
	return r.Span, r.Resolved()
}

// Explain is Resolve reporting which rule matched.
func (e *Engine) Explain(ctx context.Context, text string) Result {
	input := vocab.Normalize(text)
	result := Result{Input: input, Span: span.Unresolved()}
	if input == "" {
		return result
	}

	for _, rule := range e.rules {
		if ctx.Err() != nil {
			break
		}
		s, ok := e.try(ctx, rule, input)
		if !ok {
			continue
		}
		e.logger.Debug("expression resolved",
			"input", input,
			"rule", rule.Name(),
			"span", s.SpanString(),
		)
		result.Span = s.WithLabel(input)
		result.Rule = rule.Name()
		return result
	}
	return result
}

// try runs one rule. A panicking rule is logged and treated as declining.
func (e *Engine) try(ctx context.Context, rule Rule, input string) (s span.YearSpan, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("rule panicked",
				"rule", rule.Name(),
				"input", input,
				"panic", r,
			)
			s, ok = span.Unresolved(), false
		}
	}()
	s, ok = rule.Match(ctx, input)
	if !ok || !s.IsResolved() {
		return span.Unresolved(), false
	}
	return s, true
}

type lookupResult struct {
	span span.YearSpan
	err  error
}

// lookup queries the gazetteer under the lookup timeout. Every failure,
// including the timeout, is reported as not found.
func (e *Engine) lookup(ctx context.Context, label string) (span.YearSpan, bool) {
	if e.gazetteer == nil {
		return span.Unresolved(), false
	}

	var cancel context.CancelFunc
	if e.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	done := make(chan lookupResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- lookupResult{err: fmt.Errorf("gazetteer panicked: %v", r)}
			}
		}()
		s, err := e.gazetteer.Lookup(ctx, label, e.authority)
		done <- lookupResult{span: s, err: err}
	}()

	select {
	case <-ctx.Done():
		e.logger.Debug("period lookup abandoned",
			"label", label,
			"authority", e.authority,
			"error", ctx.Err(),
		)
		return span.Unresolved(), false
	case r := <-done:
		if r.err != nil {
			if !gazetteer.IsNotFound(r.err) {
				e.logger.Debug("period lookup failed",
					"label", label,
					"authority", e.authority,
					"error", r.err,
				)
			}
			return span.Unresolved(), false
		}
		if !r.span.IsResolved() {
			return span.Unresolved(), false
		}
		return r.span, true
	}
}
