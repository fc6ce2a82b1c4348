package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/yearspans/internal/calendar"
)

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"cs", "cy", "de", "en", "es", "fr", "it", "nl", "no", "sv"}, Languages())
}

func TestLoadBuiltins(t *testing.T) {
	for _, lang := range Languages() {
		t.Run(lang, func(t *testing.T) {
			v, err := Load(lang)
			require.NoError(t, err)
			assert.Equal(t, lang, v.Language)
			assert.Equal(t, calendar.DefaultPresent, v.Present)
			assert.Len(t, v.Months, 12)
			assert.Len(t, v.Seasons, 4)
			assert.NotEmpty(t, v.Authority)
		})
	}
}

func TestLoadUnknownLanguage(t *testing.T) {
	_, err := Load("xx")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestEnglishLookups(t *testing.T) {
	v, err := Load("en")
	require.NoError(t, err)

	n, ok := v.Ordinal("Eleventh")
	assert.True(t, ok)
	assert.Equal(t, 11, n)

	n, ok = v.Ordinal("twenty-first")
	assert.True(t, ok)
	assert.Equal(t, 21, n)

	_, ok = v.Ordinal("eleven")
	assert.False(t, ok)

	assert.Equal(t, calendar.PrecisionEarly, v.Precision("Early"))
	assert.Equal(t, calendar.PrecisionEarlyMid, v.Precision("early-mid"))
	assert.Equal(t, calendar.PrecisionMidLate, v.Precision("middle late"))
	assert.Equal(t, calendar.PrecisionQuarter4, v.Precision("last quarter of"))
	assert.Equal(t, calendar.PrecisionCirca, v.Precision("c."))
	assert.Equal(t, calendar.PrecisionNone, v.Precision("in the"))
	assert.Equal(t, calendar.PrecisionNone, v.Precision(""))

	assert.Equal(t, calendar.EraAD, v.Era("A.D."))
	assert.Equal(t, calendar.EraAD, v.Era("CE"))
	assert.Equal(t, calendar.EraBC, v.Era("cal. BC"))
	assert.Equal(t, calendar.EraBC, v.Era("BCE"))
	assert.Equal(t, calendar.EraBP, v.Era("B.P."))
	assert.Equal(t, calendar.EraNone, v.Era(""))

	month, ok := v.Month("Sept.")
	assert.True(t, ok)
	assert.Equal(t, 9, month)

	season, ok := v.Season("fall")
	assert.True(t, ok)
	assert.Equal(t, "autumn", season)

	n, ok = v.Cardinal("12")
	assert.True(t, ok)
	assert.Equal(t, 12, n)
}

func TestRomanOrdinals(t *testing.T) {
	tests := []struct {
		lang     string
		token    string
		expected int
	}{
		{"fr", "XIe", 11},
		{"fr", "1er", 1},
		{"fr", "IIe", 2},
		{"es", "XI", 11},
		{"es", "I", 1},
		{"es", "1 °", 1},
		{"it", "XII", 12},
		{"it", "IV", 4},
		{"de", "11.", 11},
		{"de", "zwölftes", 12},
		{"cs", "jedenáctého", 11},
		{"cy", "unfed ar ddeg", 11},
		{"cy", "ddeuddegfed", 12},
		{"nl", "twaalfde", 12},
		{"no", "12.", 12},
		{"sv", "1: a", 1},
		{"sv", "2:a", 2},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.token, func(t *testing.T) {
			v, err := Load(tt.lang)
			require.NoError(t, err)

			n, ok := v.Ordinal(tt.token)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestLocalizedPrefixes(t *testing.T) {
	tests := []struct {
		lang     string
		token    string
		expected calendar.Precision
	}{
		{"it", "Inizio dell'", calendar.PrecisionEarly},
		{"it", "fine del", calendar.PrecisionLate},
		{"fr", "la fin du", calendar.PrecisionLate},
		{"fr", "Début du", calendar.PrecisionEarly},
		{"de", "Ende des", calendar.PrecisionLate},
		{"es", "principios del", calendar.PrecisionEarly},
		{"cs", "první polovina", calendar.PrecisionHalf1},
		{"cs", "polovina", calendar.PrecisionMid},
		{"cy", "ddiwedd yr", calendar.PrecisionLate},
		{"cy", "Dechrau'r", calendar.PrecisionEarly},
		{"nl", "laat", calendar.PrecisionLate},
		{"no", "Tidlig på", calendar.PrecisionEarly},
		{"no", "slutten av det", calendar.PrecisionLate},
		{"sv", "början av", calendar.PrecisionEarly},
		{"sv", "sena", calendar.PrecisionLate},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.token, func(t *testing.T) {
			v, err := Load(tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v.Precision(tt.token))
		})
	}
}

func TestDecadeGrammar(t *testing.T) {
	en, err := Load("en")
	require.NoError(t, err)
	assert.True(t, en.Decade.Defined())

	cs, err := Load("cs")
	require.NoError(t, err)
	assert.False(t, cs.Decade.Defined())

	es, err := Load("es")
	require.NoError(t, err)
	assert.True(t, es.CenturyFirst)
	assert.Equal(t, "de", es.YearMarker)

	nl, err := Load("nl")
	require.NoError(t, err)
	assert.Equal(t, "jaren", nl.Decade.Before)

	cy, err := Load("cy")
	require.NoError(t, err)
	assert.Equal(t, "au", cy.Decade.After)
}
