package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/yearspans/internal/engine"
	"github.com/roach88/yearspans/internal/gazetteer"
)

type options struct {
	gazetteer gazetteer.Gazetteer
	logger    *slog.Logger
}

// Option configures Run.
type Option func(*options)

// WithGazetteer replaces the embedded period tables as the scenario's
// named-period source.
func WithGazetteer(g gazetteer.Gazetteer) Option {
	return func(o *options) {
		o.gazetteer = g
	}
}

// WithLogger sets the engine logger. Default: logs are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Run resolves every case of a scenario and checks it.
//
// An error is returned only when the scenario cannot run at all (unknown
// language, unreadable period tables). Failing cases are reported in the
// Result.
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	g := o.gazetteer
	if g == nil {
		table, err := gazetteer.DefaultTable()
		if err != nil {
			return nil, fmt.Errorf("load period tables: %w", err)
		}
		g = table
	}
	if len(scenario.Periods) > 0 {
		local := gazetteer.NewTable(&gazetteer.TableFile{Periods: scenario.Periods})
		g = gazetteer.Chain{local, g}
	}

	eng, err := engine.NewForLanguage(scenario.Language,
		engine.WithPresent(scenario.Present),
		engine.WithAuthority(scenario.Authority),
		engine.WithGazetteer(g),
		engine.WithLogger(o.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := NewResult(scenario.Name, eng.Language())
	for _, c := range scenario.Cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Add(check(ctx, eng, c))
	}
	return result, nil
}

func check(ctx context.Context, eng *engine.Engine, c Case) CaseResult {
	r := eng.Explain(ctx, c.Input)
	cr := CaseResult{
		Input: c.Input,
		Got:   r.Span.SpanString(),
		Rule:  r.Rule,
	}

	if c.Unresolved {
		cr.Pass = !r.Resolved()
		if !cr.Pass {
			cr.Message = fmt.Sprintf("expected unresolved, got %s", cr.Got)
		}
		return cr
	}

	// Validated on load; normalizes "-399/0" style spellings.
	want, err := ParseSpan(c.Expect)
	if err != nil {
		cr.Message = err.Error()
		return cr
	}
	cr.Expect = want.SpanString()

	switch {
	case !r.Resolved():
		cr.Message = fmt.Sprintf("expected %s, got unresolved", cr.Expect)
	case cr.Got != cr.Expect:
		cr.Message = fmt.Sprintf("expected %s, got %s", cr.Expect, cr.Got)
	case c.Rule != "" && c.Rule != r.Rule:
		cr.Message = fmt.Sprintf("expected rule %s, got %s", c.Rule, r.Rule)
	default:
		cr.Pass = true
	}
	return cr
}
