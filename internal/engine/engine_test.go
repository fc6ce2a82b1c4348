package engine

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/yearspans/internal/gazetteer"
	"github.com/roach88/yearspans/internal/span"
	"github.com/roach88/yearspans/internal/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// periodTable is a minimal in-test gazetteer.
func periodTable(periods map[string][2]int) gazetteer.Gazetteer {
	return gazetteer.Func(func(_ context.Context, label, _ string) (span.YearSpan, error) {
		p, ok := periods[gazetteer.Key(label)]
		if !ok {
			return span.Unresolved(), gazetteer.ErrNotFound
		}
		return span.New(p[0], p[1]), nil
	})
}

var englishPeriods = map[string][2]int{
	"edwardian": {1902, 1910},
	"medieval":  {1066, 1540},
	"victorian": {1837, 1901},
	"roman":     {43, 410},
}

func newEnglish(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	opts = append([]EngineOption{WithLogger(quietLogger())}, opts...)
	e, err := NewForLanguage("en", opts...)
	require.NoError(t, err)
	return e
}

func TestEngine_ResolveEnglish(t *testing.T) {
	e := newEnglish(t, WithGazetteer(periodTable(englishPeriods)))

	tests := []struct {
		input string
		want  string
		rule  string
	}{
		{"May 1066", "1066/1066", RuleMonthYear},
		{"early Summer 1950 AD", "1950/1950", RuleSeasonYear},
		{"11C", "1001/1100", RuleCardinalCentury},
		{"early 11th century AD", "1001/1040", RuleOrdinalCentury},
		{"early 11th century BC", "-1099/-1059", RuleOrdinalCentury},
		{"11 to 12 C", "1001/1200", RuleCardinalCenturyRange},
		{"11th to 12th century", "1001/1200", RuleOrdinalCenturyRange},
		{"early 12th to late 11th century BC", "-1199/-1000", RuleOrdinalCenturyRange},
		{"late 1st millennium AD", "0600/1000", RuleOrdinalMillennium},
		{"late 1st millennium BC", "-0399/0000", RuleOrdinalMillennium},
		{"late 1st to early 2nd millennium AD", "0600/1400", RuleMillenniumRange},
		{"circa 1066", "1066/1066", RuleYearPrefix},
		{"1066 BC", "-1065/-1065", RuleYearSuffix},
		{"1950 BP", "0050/0050", RuleYearSuffix},
		{"2000 BP", "0000/0000", RuleYearSuffix},
		{"1,000 BC", "-0999/-0999", RuleYearSuffix},
		{"1600-25+17", "1575/1617", RuleYearTolerance},
		{"1600±17", "1583/1617", RuleYearPlusMinus},
		{"1600 +/- 17", "1583/1617", RuleYearPlusMinus},
		{"1250-57 AD", "1250/1257", RuleYearRangeShort},
		{"1255 - 7", "1255/1257", RuleYearRangeShort},
		{"1066-1100", "1066/1100", RuleYearRange},
		{"1500 to 1200 BC", "-1499/-1199", RuleYearRange},
		{"1950s", "1950/1959", RuleDecade},
		{"1950's", "1950/1959", RuleDecade},
		{"1950s to 1960s", "1950/1969", RuleDecadeRange},
		{"1066", "1066/1066", RuleLoneYear},
		{"1950+", "1950/1950", RuleLoneYear},
		{"Edwardian", "1902/1910", RuleNamedPeriod},
		{"Medieval to Edwardian", "1066/1910", RuleNamedPeriodRange},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := e.Explain(context.Background(), tt.input)
			require.True(t, r.Resolved(), "expected %q to resolve", tt.input)
			assert.Equal(t, tt.want, r.Span.SpanString())
			assert.Equal(t, tt.rule, r.Rule)
			assert.Equal(t, tt.input, r.Span.Label())
		})
	}
}

func TestEngine_Unresolved(t *testing.T) {
	e := newEnglish(t, WithGazetteer(periodTable(englishPeriods)))

	for _, input := range []string{"", "   ", "not a date at all", "Atlantis", "Roman to Atlantis", "1066 1100"} {
		s, ok := e.Resolve(context.Background(), input)
		assert.False(t, ok, "input %q", input)
		assert.False(t, s.IsResolved())
	}
}

func TestEngine_NormalizesInput(t *testing.T) {
	e := newEnglish(t)

	r := e.Explain(context.Background(), "  early   11th\tcentury  AD ")
	require.True(t, r.Resolved())
	assert.Equal(t, "early 11th century AD", r.Input)
	assert.Equal(t, "early 11th century AD", r.Span.Label())
	assert.Equal(t, "1001/1040", r.Span.SpanString())
}

func TestEngine_SpecificRuleWins(t *testing.T) {
	e := newEnglish(t)

	// Both month-year and year-suffix can read this; month-year is earlier.
	r := e.Explain(context.Background(), "May 1066 AD")
	require.True(t, r.Resolved())
	assert.Equal(t, RuleMonthYear, r.Rule)
}

func TestEngine_ReversedRangesSpanBothEnds(t *testing.T) {
	e := newEnglish(t, WithGazetteer(periodTable(englishPeriods)))

	tests := []struct {
		input string
		want  string
		rule  string
	}{
		{"12th to 11th century", "1001/1200", RuleOrdinalCenturyRange},
		{"12 to 11 C", "1001/1200", RuleCardinalCenturyRange},
		{"late 12th to early 11th century AD", "1001/1200", RuleOrdinalCenturyRange},
		{"2nd to 1st millennium AD", "0001/2000", RuleMillenniumRange},
		{"1960s to 1950s", "1950/1969", RuleDecadeRange},
		{"Edwardian to Medieval", "1066/1910", RuleNamedPeriodRange},
		// Already ordered BC ranges are composed as usual.
		{"early 12th to late 11th century BC", "-1199/-1000", RuleOrdinalCenturyRange},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := e.Explain(context.Background(), tt.input)
			require.True(t, r.Resolved())
			assert.Equal(t, tt.want, r.Span.SpanString())
			assert.Equal(t, tt.rule, r.Rule)
		})
	}
}

func TestEngine_NamedRangeSplitsOnWholeWords(t *testing.T) {
	g := testutil.NewFakeGazetteer(map[string][2]int{
		"Georgian":       {1714, 1837},
		"Victorian":      {1837, 1901},
		"Romano-British": {43, 410},
	})
	e := newEnglish(t, WithGazetteer(g))

	s, ok := e.Resolve(context.Background(), "Georgian to Victorian")
	require.True(t, ok)
	assert.Equal(t, "1714/1901", s.SpanString())
	assert.Equal(t, []string{"Georgian to Victorian", "Georgian", "Victorian"}, g.Labels())

	s, ok = e.Resolve(context.Background(), "Romano-British to Victorian")
	require.True(t, ok)
	assert.Equal(t, "0043/1901", s.SpanString())
}

func TestEngine_NamedPeriodsNeedGazetteer(t *testing.T) {
	e := newEnglish(t)

	_, ok := e.Resolve(context.Background(), "Edwardian")
	assert.False(t, ok)
}

func TestEngine_NamedPeriodWithPrefix(t *testing.T) {
	e := newEnglish(t, WithGazetteer(periodTable(englishPeriods)))

	s, ok := e.Resolve(context.Background(), "during the Victorian")
	require.True(t, ok)
	assert.Equal(t, "1837/1901", s.SpanString())
	assert.Equal(t, "during the Victorian", s.Label())
}

func TestEngine_WithPresent(t *testing.T) {
	e := newEnglish(t, WithPresent(1950))
	assert.Equal(t, 1950, e.Present())

	s, ok := e.Resolve(context.Background(), "1000 BP")
	require.True(t, ok)
	assert.Equal(t, "0950/0950", s.SpanString())
}

func TestEngine_WithAuthority(t *testing.T) {
	var got string
	g := gazetteer.Func(func(_ context.Context, _, authority string) (span.YearSpan, error) {
		got = authority
		return span.New(1, 2), nil
	})

	e := newEnglish(t, WithGazetteer(g), WithAuthority("p0test"))
	_, ok := e.Resolve(context.Background(), "Anything")
	require.True(t, ok)
	assert.Equal(t, "p0test", got)
	assert.Equal(t, "p0test", e.Authority())
}

func TestEngine_DefaultAuthority(t *testing.T) {
	e := newEnglish(t)
	assert.Equal(t, "p0kh9ds", e.Authority())
}

func TestEngine_LookupTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	slow := gazetteer.Func(func(_ context.Context, _, _ string) (span.YearSpan, error) {
		<-release
		return span.New(1902, 1910), nil
	})

	e := newEnglish(t, WithGazetteer(slow), WithLookupTimeout(20*time.Millisecond))

	start := time.Now()
	_, ok := e.Resolve(context.Background(), "Edwardian")
	elapsed := time.Since(start)

	assert.False(t, ok)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestEngine_LookupErrorIsUnresolved(t *testing.T) {
	failing := gazetteer.Func(func(_ context.Context, _, _ string) (span.YearSpan, error) {
		return span.Unresolved(), assert.AnError
	})

	e := newEnglish(t, WithGazetteer(failing))
	_, ok := e.Resolve(context.Background(), "Edwardian")
	assert.False(t, ok)

	// Numeric rules are unaffected.
	s, ok := e.Resolve(context.Background(), "1950s")
	require.True(t, ok)
	assert.Equal(t, "1950/1959", s.SpanString())
}

func TestEngine_CancelledContext(t *testing.T) {
	e := newEnglish(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := e.Resolve(ctx, "1066")
	assert.False(t, ok)
}

func TestEngine_PanickingRuleDeclines(t *testing.T) {
	v, err := ForLanguage("en")
	require.NoError(t, err)

	v, err = v.InsertBefore(RuleMonthYear, RuleSpec{
		Name: "boom",
		Build: func(*Env) (Rule, error) {
			return RuleFunc("boom", func(context.Context, string) (span.YearSpan, bool) {
				panic("boom")
			}), nil
		},
	})
	require.NoError(t, err)

	e, err := New(v, WithLogger(quietLogger()))
	require.NoError(t, err)

	s, ok := e.Resolve(context.Background(), "1066")
	require.True(t, ok)
	assert.Equal(t, "1066/1066", s.SpanString())
}

func TestEngine_ConcurrentResolve(t *testing.T) {
	e := newEnglish(t, WithGazetteer(periodTable(englishPeriods)))

	inputs := map[string]string{
		"1950s":                 "1950/1959",
		"early 11th century BC": "-1099/-1059",
		"Edwardian":             "1902/1910",
		"1600±17":               "1583/1617",
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		for input, want := range inputs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s, ok := e.Resolve(context.Background(), input)
				assert.True(t, ok)
				assert.Equal(t, want, s.SpanString())
			}()
		}
	}
	wg.Wait()
}

func TestEngine_Czech(t *testing.T) {
	e, err := NewForLanguage("cs", WithLogger(quietLogger()))
	require.NoError(t, err)

	tests := []struct {
		input string
		want  string
		rule  string
	}{
		{"50. léta 20. století", "1950/1959", RuleDecade},
		{"50. až 60. léta 20. století", "1950/1969", RuleDecadeRange},
		{"1950 př. n. l.", "-1949/-1949", RuleYearSuffix},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := e.Explain(context.Background(), tt.input)
			require.True(t, r.Resolved())
			assert.Equal(t, tt.want, r.Span.SpanString())
			assert.Equal(t, tt.rule, r.Rule)
		})
	}
}

type explainCase struct {
	input string
	want  string
	rule  string
}

func checkExplain(t *testing.T, e *Engine, tests []explainCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := e.Explain(context.Background(), tt.input)
			require.True(t, r.Resolved())
			assert.Equal(t, tt.want, r.Span.SpanString())
			assert.Equal(t, tt.rule, r.Rule)
		})
	}
}

func TestEngine_Welsh(t *testing.T) {
	periods := map[string][2]int{"edwardaidd": {1902, 1910}, "canoloesol": {1066, 1540}}
	e, err := NewForLanguage("cy", WithGazetteer(periodTable(periods)), WithLogger(quietLogger()))
	require.NoError(t, err)

	checkExplain(t, e, []explainCase{
		{"Ionawr 1066 OC", "1066/1066", RuleMonthYear},
		{"Haf 1066 CP", "0934/0934", RuleSeasonYear},
		{"Dechrau'r unfed ar ddeg ganrif CC", "-1099/-1059", RuleOrdinalCentury},
		{"dechrau'r ddeuddegfed ganrif i ddiwedd yr unfed ar ddeg ganrif CC", "-1199/-1000", RuleOrdinalCenturyRange},
		{"diwedd y mileniwm cyntaf OC", "0600/1000", RuleOrdinalMillennium},
		{"diwedd y mileniwm 1af CC", "-0399/0000", RuleOrdinalMillennium},
		{"diwedd y 1af i ddechrau'r 2il mileniwm OC", "0600/1400", RuleMillenniumRange},
		{"1500 i 1200 CC", "-1499/-1199", RuleYearRange},
		{"1950au", "1950/1959", RuleDecade},
		{"1950au i 1960au", "1950/1969", RuleDecadeRange},
		{"Canoloesol i Edwardaidd", "1066/1910", RuleNamedPeriodRange},
	})
}

func TestEngine_Dutch(t *testing.T) {
	periods := map[string][2]int{"romeinse": {-12, 449}, "romeins": {-12, 449}, "middeleeuws": {450, 1499}}
	e, err := NewForLanguage("nl", WithGazetteer(periodTable(periods)), WithLogger(quietLogger()))
	require.NoError(t, err)

	checkExplain(t, e, []explainCase{
		{"Januari 1066 voor Christus", "-1065/-1065", RuleMonthYear},
		{"Begin elfde eeuw voor Christus", "-1099/-1059", RuleOrdinalCentury},
		{"begin 11e tot eind 12e eeuw na Christus", "1001/1200", RuleOrdinalCenturyRange},
		{"laat 1e millennium na Christus", "0600/1000", RuleOrdinalMillennium},
		{"1255-7 n.Chr", "1255/1257", RuleYearRangeShort},
		{"jaren 1850", "1850/1859", RuleDecade},
		{"jaren 1850 tot 1860", "1850/1869", RuleDecadeRange},
		{"Romeinse", "-0011/0449", RuleNamedPeriod},
		{"Romeins tot middeleeuws", "-0011/1499", RuleNamedPeriodRange},
	})
}

func TestEngine_Norwegian(t *testing.T) {
	periods := map[string][2]int{"vikingtid": {750, 1050}, "høymiddelalder": {1130, 1350}}
	e, err := NewForLanguage("no", WithGazetteer(periodTable(periods)), WithLogger(quietLogger()))
	require.NoError(t, err)

	checkExplain(t, e, []explainCase{
		{"Januar 1066 f.Kr.", "-1065/-1065", RuleMonthYear},
		{"Tidlig på 1100-tallet e.Kr.", "1001/1040", RuleCardinalCentury},
		{"Tidlig på 1100-tallet f.Kr.", "-1099/-1059", RuleCardinalCentury},
		{"tidlig på 1100 til sent 1200-tallet e.Kr.", "1001/1200", RuleCardinalCenturyRange},
		{"Tidlig ellevte århundre e.Kr.", "1001/1040", RuleOrdinalCentury},
		{"tidlig på 12. til slutten av det 11. århundre f.Kr.", "-1199/-1000", RuleOrdinalCenturyRange},
		{"sent 1. til tidlig 2. årtusen e.Kr.", "0600/1400", RuleMillenniumRange},
		{"1250 - 57 e.Kr.", "1250/1257", RuleYearRangeShort},
		{"1950-tallet", "1950/1959", RuleDecade},
		{"1950- til 1960-tallet", "1950/1969", RuleDecadeRange},
		{"vikingtid til høymiddelalder", "0750/1350", RuleNamedPeriodRange},
	})
}

func TestEngine_Swedish(t *testing.T) {
	periods := map[string][2]int{"vikingatid": {800, 1050}, "medeltid": {1050, 1520}}
	e, err := NewForLanguage("sv", WithGazetteer(periodTable(periods)), WithLogger(quietLogger()))
	require.NoError(t, err)

	checkExplain(t, e, []explainCase{
		{"Vår 1066 f.Kr.", "-1065/-1065", RuleSeasonYear},
		{"Tidigt 1100-tal e.Kr.", "1001/1040", RuleCardinalCentury},
		{"tidigt 1000-tal till slutet av 1100-talet e.Kr.", "0901/1100", RuleCardinalCenturyRange},
		{"tidigt 1200-tal till slutet av 1100-tal f.Kr.", "-1199/-1000", RuleCardinalCenturyRange},
		{"tidigt tolfte till sena elfte århundradet f.Kr.", "-1199/-1000", RuleOrdinalCenturyRange},
		{"slutet av 1: a millenniet e.Kr.", "0600/1000", RuleOrdinalMillennium},
		{"sent 1: a till början av 2: a millenniet e.Kr.", "0600/1400", RuleMillenniumRange},
		{"tidigt 1950 f.Kr.", "-1949/-1949", RuleYearPrefix},
		{"1950-talet", "1950/1959", RuleDecade},
		{"1950- till 1960-talet", "1950/1969", RuleDecadeRange},
		{"Vikingatid till medeltid", "0800/1520", RuleNamedPeriodRange},
	})
}

func TestEngine_RuleNamesSkipMissingForms(t *testing.T) {
	e, err := NewForLanguage("cs", WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Contains(t, e.RuleNames(), RuleDecade)

	en := newEnglish(t)
	assert.Equal(t, len(DefaultRules()), len(en.RuleNames()))
}

func TestNew_DuplicateRule(t *testing.T) {
	v, err := ForLanguage("en")
	require.NoError(t, err)
	v.Rules = append(v.Rules, v.Rules[0])

	_, err = New(v)
	require.Error(t, err)
	assert.True(t, IsDuplicateRule(err))
}

func TestNew_BadPattern(t *testing.T) {
	v, err := ForLanguage("en")
	require.NoError(t, err)
	v, err = v.Append(RuleSpec{
		Name: "broken",
		Build: func(env *Env) (Rule, error) {
			return NewPatternRule("broken", env, `(unclosed`, nil)
		},
	})
	require.NoError(t, err)

	_, err = New(v)
	require.Error(t, err)

	var ve *VariantError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ErrCodeBadPattern, ve.Code)
	assert.Equal(t, "broken", ve.Rule)
}

func TestNew_NoVocabulary(t *testing.T) {
	_, err := New(Variant{Language: "xx"})
	assert.True(t, IsUnknownLanguage(err))
}
