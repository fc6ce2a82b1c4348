package engine

import (
	"github.com/roach88/yearspans/internal/calendar"
	"github.com/roach88/yearspans/internal/span"
	"github.com/roach88/yearspans/internal/vocab"
)

// Czech names a decade by its two digits and the century it falls in:
// "50. léta 20. století" is the 1950s.
func czech(v Variant) (Variant, error) {
	v, err := v.Replace(RuleDecade, buildCzechDecade)
	if err != nil {
		return v, err
	}
	return v.Replace(RuleDecadeRange, buildCzechDecadeRange)
}

const (
	czechYears   = `l[eé]ta?`
	czechCentury = `(?P<century>\d{1,2})\.`
)

// czechDecadeYear places a two-digit decade inside a century.
func czechDecadeYear(decade, century string) (int, bool) {
	d, ok := vocab.ParseNumber(decade)
	if !ok {
		return 0, false
	}
	c, ok := vocab.ParseNumber(century)
	if !ok || c < 1 {
		return 0, false
	}
	return (c-1)*100 + d, true
}

func buildCzechDecade(env *Env) (Rule, error) {
	expr := vocab.Join(
		env.Prefix("prefix"),
		`(?P<decade>\d0)\.`,
		czechYears,
		czechCentury,
		env.CenturyWord(),
		env.Suffix("era"),
	)
	return NewPatternRule(RuleDecade, env, expr, func(_ *Env, m Submatches) (span.YearSpan, bool) {
		d, ok := czechDecadeYear(m.Get("decade"), m.Get("century"))
		if !ok {
			return span.Unresolved(), false
		}
		return calendar.Decade(d), true
	})
}

func buildCzechDecadeRange(env *Env) (Rule, error) {
	expr := vocab.Join(
		env.Prefix("p1"),
		`(?P<from>\d0)\.`,
		env.Separator(),
		env.Prefix("p2"),
		`(?P<to>\d0)\.`,
		czechYears,
		czechCentury,
		env.CenturyWord(),
		env.Suffix("era"),
	)
	return NewPatternRule(RuleDecadeRange, env, expr, func(_ *Env, m Submatches) (span.YearSpan, bool) {
		from, ok := czechDecadeYear(m.Get("from"), m.Get("century"))
		if !ok {
			return span.Unresolved(), false
		}
		to, ok := czechDecadeYear(m.Get("to"), m.Get("century"))
		if !ok {
			return span.Unresolved(), false
		}
		return calendar.Compose(calendar.Decade(from), calendar.Decade(to)), true
	})
}
