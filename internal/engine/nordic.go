package engine

import (
	"github.com/roach88/yearspans/internal/span"
	"github.com/roach88/yearspans/internal/vocab"
)

// Norwegian and Swedish write a cardinal century as its hundreds:
// "1100-tallet", "1100-talet". The leading digits are the century number,
// so "tidlig på 1100-tallet" is early in the 11th century. Only the second
// end of a range carries the suffix: "tidlig på 1100 til sent 1200-tallet".
func norwegian(v Variant) (Variant, error) {
	return hundreds(v, `-tallet`)
}

func swedish(v Variant) (Variant, error) {
	return hundreds(v, `-tal(?:et)?`)
}

func hundreds(v Variant, suffix string) (Variant, error) {
	v, err := v.Replace(RuleCardinalCentury, func(env *Env) (Rule, error) {
		return buildHundredsCentury(env, suffix)
	})
	if err != nil {
		return v, err
	}
	return v.Replace(RuleCardinalCenturyRange, func(env *Env) (Rule, error) {
		return buildHundredsCenturyRange(env, suffix)
	})
}

// hundredsNumber is "11" of "1100".
func hundredsNumber(name string) string {
	return vocab.Group(name, `[1-9]\d?`) + `00`
}

func buildHundredsCentury(env *Env, suffix string) (Rule, error) {
	expr := vocab.Join(env.Prefix("prefix"), hundredsNumber("n")+suffix, env.Suffix("era"))
	return NewPatternRule(RuleCardinalCentury, env, expr, func(env *Env, m Submatches) (span.YearSpan, bool) {
		n, ok := vocab.ParseNumber(m.Get("n"))
		if !ok {
			return span.Unresolved(), false
		}
		return env.Calendar.Century(n, env.Vocab.Precision(m.Get("prefix")), env.Vocab.Era(m.Get("era"))), true
	})
}

func buildHundredsCenturyRange(env *Env, suffix string) (Rule, error) {
	expr := vocab.Join(
		env.Prefix("p1"),
		hundredsNumber("from")+vocab.Maybe("", suffix),
		env.Separator(),
		env.Prefix("p2"),
		hundredsNumber("to")+suffix,
		env.Suffix("era"),
	)
	number := func(_ *Env, token string) (int, bool) { return vocab.ParseNumber(token) }
	return NewPatternRule(RuleCardinalCenturyRange, env, expr, blockRange(centuries, number))
}
