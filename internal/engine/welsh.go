package engine

import (
	"github.com/roach88/yearspans/internal/span"
	"github.com/roach88/yearspans/internal/vocab"
)

// Welsh puts the millennium noun ahead of its ordinal ("diwedd y mileniwm
// cyntaf") but behind the second ordinal of a range ("diwedd y 1af i
// ddechrau'r 2il mileniwm"), so only the single millennium changes.
func welsh(v Variant) (Variant, error) {
	return v.Replace(RuleOrdinalMillennium, buildWelshMillennium)
}

func buildWelshMillennium(env *Env) (Rule, error) {
	expr := vocab.Join(env.Prefix("prefix"), env.MillenniumWord(), env.Ordinal("n"), env.Suffix("era"))
	return NewPatternRule(RuleOrdinalMillennium, env, expr, func(env *Env, m Submatches) (span.YearSpan, bool) {
		n, ok := env.Vocab.Ordinal(m.Get("n"))
		if !ok {
			return span.Unresolved(), false
		}
		return env.Calendar.Millennium(n, env.Vocab.Precision(m.Get("prefix")), env.Vocab.Era(m.Get("era"))), true
	})
}
