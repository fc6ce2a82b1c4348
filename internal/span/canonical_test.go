package span

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalYear(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		expected string
	}{
		{"AD four digits", 1066, "1066"},
		{"AD padded", 50, "0050"},
		{"first year AD", 1, "0001"},
		{"1 BC is year zero", -1, "0000"},
		{"internal zero is not shifted", 0, "0000"},
		{"2 BC", -2, "-0001"},
		{"1066 BC", -1066, "-1065"},
		{"400 BC", -400, "-0399"},
		{"five digits", 12000, "12000"},
		{"five digit BC", -12000, "-11999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalYear(tt.year))
		})
	}
}

func TestFormatYearWithoutShift(t *testing.T) {
	assert.Equal(t, "-1066", FormatYear(-1066, 4, false))
	assert.Equal(t, "007", FormatYear(7, 3, false))
}

func TestParseCanonicalYearInvertsCanonicalYear(t *testing.T) {
	for _, year := range []int{-12000, -1066, -400, -2, -1, 1, 50, 1066, 2000} {
		got, err := ParseCanonicalYear(CanonicalYear(year))
		require.NoError(t, err)
		assert.Equal(t, year, got, "year %d", year)
	}
}

func TestParseCanonicalYear(t *testing.T) {
	got, err := ParseCanonicalYear("+1066")
	require.NoError(t, err)
	assert.Equal(t, 1066, got)

	got, err = ParseCanonicalYear(" -0799 ")
	require.NoError(t, err)
	assert.Equal(t, -800, got)

	_, err = ParseCanonicalYear("")
	assert.Error(t, err)

	_, err = ParseCanonicalYear("MCMX")
	assert.Error(t, err)
}
