package engine

import (
	"github.com/roach88/yearspans/internal/calendar"
	"github.com/roach88/yearspans/internal/span"
	"github.com/roach88/yearspans/internal/vocab"
)

// Rule names. They are the handles variants use to replace or suppress
// individual rules.
const (
	RuleMonthYear            = "month-year"
	RuleSeasonYear           = "season-year"
	RuleCardinalCentury      = "cardinal-century"
	RuleOrdinalCentury       = "ordinal-century"
	RuleCardinalCenturyRange = "cardinal-century-range"
	RuleOrdinalCenturyRange  = "ordinal-century-range"
	RuleOrdinalMillennium    = "ordinal-millennium"
	RuleMillenniumRange      = "ordinal-millennium-range"
	RuleYearPrefix           = "year-prefix"
	RuleYearSuffix           = "year-suffix"
	RuleYearTolerance        = "year-tolerance"
	RuleYearPlusMinus        = "year-plusminus"
	RuleYearRangeShort       = "year-range-short"
	RuleYearRange            = "year-range"
	RuleDecade               = "decade"
	RuleDecadeRange          = "decade-range"
	RuleLoneYear             = "lone-year"
	RuleNamedPeriod          = "named-period"
	RuleNamedPeriodRange     = "named-period-range"
)

// DefaultRules returns the shared cascade, most specific rule first.
func DefaultRules() []RuleSpec {
	return []RuleSpec{
		{Name: RuleMonthYear, Build: buildMonthYear},
		{Name: RuleSeasonYear, Build: buildSeasonYear},
		{Name: RuleCardinalCentury, Build: buildCardinalCentury},
		{Name: RuleOrdinalCentury, Build: buildOrdinalCentury},
		{Name: RuleCardinalCenturyRange, Build: buildCardinalCenturyRange},
		{Name: RuleOrdinalCenturyRange, Build: buildOrdinalCenturyRange},
		{Name: RuleOrdinalMillennium, Build: buildOrdinalMillennium},
		{Name: RuleMillenniumRange, Build: buildMillenniumRange},
		{Name: RuleYearPrefix, Build: buildYearPrefix},
		{Name: RuleYearSuffix, Build: buildYearSuffix},
		{Name: RuleYearTolerance, Build: buildYearTolerance},
		{Name: RuleYearPlusMinus, Build: buildYearPlusMinus},
		{Name: RuleYearRangeShort, Build: buildYearRangeShort},
		{Name: RuleYearRange, Build: buildYearRange},
		{Name: RuleDecade, Build: buildDecade},
		{Name: RuleDecadeRange, Build: buildDecadeRange},
		{Name: RuleLoneYear, Build: buildLoneYear},
		{Name: RuleNamedPeriod, Build: buildNamedPeriod},
		{Name: RuleNamedPeriodRange, Build: buildNamedPeriodRange},
	}
}

// yearPoint extracts a single year with an optional era.
func yearPoint(env *Env, m Submatches) (span.YearSpan, bool) {
	y, ok := vocab.ParseNumber(m.Get("year"))
	if !ok {
		return span.Unresolved(), false
	}
	return env.Calendar.Point(y, env.Vocab.Era(m.Get("era"))), true
}

func buildMonthYear(env *Env) (Rule, error) {
	if len(env.Vocab.Months) == 0 {
		return nil, nil
	}
	expr := vocab.Join(
		env.Prefix("prefix"),
		vocab.OneOf("month", env.Vocab.Months.Patterns()),
		env.Marker(),
		env.Year("year"),
		env.Suffix("era"),
	)
	return NewPatternRule(RuleMonthYear, env, expr, yearPoint)
}

func buildSeasonYear(env *Env) (Rule, error) {
	if len(env.Vocab.Seasons) == 0 {
		return nil, nil
	}
	expr := vocab.Join(
		env.Prefix("prefix"),
		vocab.OneOf("season", env.Vocab.Seasons.Patterns()),
		env.Marker(),
		env.Year("year"),
		env.Suffix("era"),
	)
	return NewPatternRule(RuleSeasonYear, env, expr, yearPoint)
}

// centuryExpr places the century word before or after the number as the
// language requires.
func centuryExpr(env *Env, number string) string {
	if env.Vocab.CenturyFirst {
		return vocab.Join(env.CenturyWord(), number)
	}
	return vocab.Join(number, env.CenturyWord())
}

func buildCardinalCentury(env *Env) (Rule, error) {
	expr := vocab.Join(env.Prefix("prefix"), centuryExpr(env, env.Cardinal("n")), env.Suffix("era"))
	return NewPatternRule(RuleCardinalCentury, env, expr, func(env *Env, m Submatches) (span.YearSpan, bool) {
		n, ok := env.Vocab.Cardinal(m.Get("n"))
		if !ok {
			return span.Unresolved(), false
		}
		return env.Calendar.Century(n, env.Vocab.Precision(m.Get("prefix")), env.Vocab.Era(m.Get("era"))), true
	})
}

func buildOrdinalCentury(env *Env) (Rule, error) {
	expr := vocab.Join(env.Prefix("prefix"), centuryExpr(env, env.Ordinal("n")), env.Suffix("era"))
	return NewPatternRule(RuleOrdinalCentury, env, expr, func(env *Env, m Submatches) (span.YearSpan, bool) {
		n, ok := env.Vocab.Ordinal(m.Get("n"))
		if !ok {
			return span.Unresolved(), false
		}
		return env.Calendar.Century(n, env.Vocab.Precision(m.Get("prefix")), env.Vocab.Era(m.Get("era"))), true
	})
}

// blockRangeExpr is "p1? N1 WORD? SEP p2? N2 WORD era?", or with the word
// leading when wordFirst is set. The word must appear once.
func blockRangeExpr(env *Env, wordFirst bool, word, from, to string) string {
	optional := word + "?"
	if wordFirst {
		return vocab.Join(
			env.Prefix("p1"), word, from,
			env.Separator(),
			env.Prefix("p2"), optional, to,
			env.Suffix("era"),
		)
	}
	return vocab.Join(
		env.Prefix("p1"), from, optional,
		env.Separator(),
		env.Prefix("p2"), to, word,
		env.Suffix("era"),
	)
}

type blockFunc func(n int, p calendar.Precision, era calendar.Era) span.YearSpan

// blockRange composes the two ends of a century or millennium range. Both
// ends share the trailing era.
func blockRange(block func(env *Env) blockFunc, number func(env *Env, token string) (int, bool)) Extractor {
	return func(env *Env, m Submatches) (span.YearSpan, bool) {
		from, ok := number(env, m.Get("from"))
		if !ok {
			return span.Unresolved(), false
		}
		to, ok := number(env, m.Get("to"))
		if !ok {
			return span.Unresolved(), false
		}
		era := env.Vocab.Era(m.Get("era"))
		f := block(env)
		first := f(from, env.Vocab.Precision(m.Get("p1")), era)
		second := f(to, env.Vocab.Precision(m.Get("p2")), era)
		return calendar.Compose(first, second), true
	}
}

func centuries(env *Env) blockFunc { return env.Calendar.Century }
func millennia(env *Env) blockFunc { return env.Calendar.Millennium }
func ordinal(env *Env, token string) (int, bool) { return env.Vocab.Ordinal(token) }

func buildCardinalCenturyRange(env *Env) (Rule, error) {
	expr := blockRangeExpr(env, env.Vocab.CenturyFirst, env.CenturyWord(), `(?P<from>\d{1,2})`, `(?P<to>\d{1,2})`)
	number := func(_ *Env, token string) (int, bool) { return vocab.ParseNumber(token) }
	return NewPatternRule(RuleCardinalCenturyRange, env, expr, blockRange(centuries, number))
}

func buildOrdinalCenturyRange(env *Env) (Rule, error) {
	expr := blockRangeExpr(env, env.Vocab.CenturyFirst, env.CenturyWord(), env.Ordinal("from"), env.Ordinal("to"))
	return NewPatternRule(RuleOrdinalCenturyRange, env, expr, blockRange(centuries, ordinal))
}

// Millennia always put the ordinal first, even in languages that lead with
// the century word ("siglo XI" but "primer milenio").
func buildOrdinalMillennium(env *Env) (Rule, error) {
	expr := vocab.Join(env.Prefix("prefix"), env.Ordinal("n"), env.MillenniumWord(), env.Suffix("era"))
	return NewPatternRule(RuleOrdinalMillennium, env, expr, func(env *Env, m Submatches) (span.YearSpan, bool) {
		n, ok := env.Vocab.Ordinal(m.Get("n"))
		if !ok {
			return span.Unresolved(), false
		}
		return env.Calendar.Millennium(n, env.Vocab.Precision(m.Get("prefix")), env.Vocab.Era(m.Get("era"))), true
	})
}

func buildMillenniumRange(env *Env) (Rule, error) {
	expr := blockRangeExpr(env, false, env.MillenniumWord(), env.Ordinal("from"), env.Ordinal("to"))
	return NewPatternRule(RuleMillenniumRange, env, expr, blockRange(millennia, ordinal))
}

func buildYearPrefix(env *Env) (Rule, error) {
	if len(env.Vocab.Prefixes) == 0 {
		return nil, nil
	}
	expr := vocab.Join(
		vocab.OneOf("prefix", env.Vocab.Prefixes.Patterns()),
		env.Marker(),
		env.Year("year"),
		env.Suffix("era"),
	)
	return NewPatternRule(RuleYearPrefix, env, expr, yearPoint)
}

func buildYearSuffix(env *Env) (Rule, error) {
	expr := vocab.Join(
		env.Prefix("prefix"),
		env.Marker(),
		env.Year("year"),
		vocab.OneOf("era", env.Vocab.Suffixes.Patterns()),
	)
	return NewPatternRule(RuleYearSuffix, env, expr, yearPoint)
}

// buildYearTolerance matches "1600-25+17": a year followed directly by a
// signed lower and upper offset.
func buildYearTolerance(env *Env) (Rule, error) {
	expr := env.Year("year") + `(?P<lower>[+-]\d+)(?P<upper>[+-]\d+)`
	return NewPatternRule(RuleYearTolerance, env, expr, func(_ *Env, m Submatches) (span.YearSpan, bool) {
		y, ok := vocab.ParseNumber(m.Get("year"))
		if !ok {
			return span.Unresolved(), false
		}
		lower, ok := vocab.ParseNumber(m.Get("lower"))
		if !ok {
			return span.Unresolved(), false
		}
		upper, ok := vocab.ParseNumber(m.Get("upper"))
		if !ok {
			return span.Unresolved(), false
		}
		return calendar.Tolerance(y, lower, upper), true
	})
}

func buildYearPlusMinus(env *Env) (Rule, error) {
	expr := vocab.Join(env.Year("year"), `(?:±|\+/-)`, `(?P<t>\d+)`)
	return NewPatternRule(RuleYearPlusMinus, env, expr, func(_ *Env, m Submatches) (span.YearSpan, bool) {
		y, ok := vocab.ParseNumber(m.Get("year"))
		if !ok {
			return span.Unresolved(), false
		}
		t, ok := vocab.ParseNumber(m.Get("t"))
		if !ok {
			return span.Unresolved(), false
		}
		return calendar.PlusMinus(y, t), true
	})
}

// buildYearRangeShort matches ranges whose second year drops its leading
// digits: "1250-57", "1255 - 7".
func buildYearRangeShort(env *Env) (Rule, error) {
	expr := vocab.Join(
		env.Prefix("prefix"),
		`(?P<from>[+-]?\d{3,})`,
		env.Separator(),
		`(?P<to>\d{1,2})`,
		env.Suffix("era"),
	)
	return NewPatternRule(RuleYearRangeShort, env, expr, func(env *Env, m Submatches) (span.YearSpan, bool) {
		from, ok := vocab.ParseNumber(m.Get("from"))
		if !ok || from < 0 {
			return span.Unresolved(), false
		}
		to, ok := vocab.ParseNumber(m.Get("to"))
		if !ok {
			return span.Unresolved(), false
		}
		return env.Calendar.Range(from, calendar.ExpandShortYear(from, to), env.Vocab.Era(m.Get("era"))), true
	})
}

func buildYearRange(env *Env) (Rule, error) {
	expr := vocab.Join(
		env.Prefix("prefix"),
		env.Year("from"),
		env.Separator(),
		env.Year("to"),
		env.Suffix("era"),
	)
	return NewPatternRule(RuleYearRange, env, expr, func(env *Env, m Submatches) (span.YearSpan, bool) {
		from, ok := vocab.ParseNumber(m.Get("from"))
		if !ok {
			return span.Unresolved(), false
		}
		to, ok := vocab.ParseNumber(m.Get("to"))
		if !ok {
			return span.Unresolved(), false
		}
		return env.Calendar.Range(from, to, env.Vocab.Era(m.Get("era"))), true
	})
}

const decadeNumber = `[1-9]\d{1,2}0`

// decadeExpr is one decade with the language's surrounding words. When
// marked is set the words are required, otherwise optional.
func decadeExpr(env *Env, prefix, name string, marked bool) string {
	d := env.Vocab.Decade
	var before, after string
	if d.Before != "" {
		before = vocab.Group("", d.Before)
		if !marked {
			before += "?"
		}
	}
	if d.After != "" {
		after = vocab.Group("", d.After)
		if !marked {
			after += "?"
		}
	}
	return vocab.Join(env.Prefix(prefix), before, vocab.Group(name, decadeNumber)+after)
}

func buildDecade(env *Env) (Rule, error) {
	if !env.Vocab.Decade.Defined() {
		return nil, nil
	}
	expr := vocab.Join(decadeExpr(env, "prefix", "decade", true), env.Suffix("era"))
	return NewPatternRule(RuleDecade, env, expr, func(_ *Env, m Submatches) (span.YearSpan, bool) {
		d, ok := vocab.ParseNumber(m.Get("decade"))
		if !ok {
			return span.Unresolved(), false
		}
		return calendar.Decade(d), true
	})
}

// buildDecadeRange matches "1950s to 1960s" and "les années 1950 à 1960".
// Leading words are required on the first decade, trailing words on the
// second.
func buildDecadeRange(env *Env) (Rule, error) {
	d := env.Vocab.Decade
	if !d.Defined() {
		return nil, nil
	}
	expr := vocab.Join(
		decadeExpr(env, "p1", "from", d.After == ""),
		env.Separator(),
		decadeExpr(env, "p2", "to", d.After != ""),
		env.Suffix("era"),
	)
	return NewPatternRule(RuleDecadeRange, env, expr, func(_ *Env, m Submatches) (span.YearSpan, bool) {
		from, ok := vocab.ParseNumber(m.Get("from"))
		if !ok {
			return span.Unresolved(), false
		}
		to, ok := vocab.ParseNumber(m.Get("to"))
		if !ok {
			return span.Unresolved(), false
		}
		return calendar.Compose(calendar.Decade(from), calendar.Decade(to)), true
	})
}

func buildLoneYear(env *Env) (Rule, error) {
	expr := vocab.Join(env.Year("year"), `\+?`, env.Suffix("era"))
	return NewPatternRule(RuleLoneYear, env, expr, yearPoint)
}
