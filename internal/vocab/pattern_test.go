package vocab

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupHelpers(t *testing.T) {
	assert.Equal(t, `(?:a|b)`, OneOf("", []string{"a", "b"}))
	assert.Equal(t, `(?P<era>AD|BC)?`, Maybe("era", "AD|BC"))
	assert.Equal(t, `a\s*b`, Join("a", "", "b"))
}

func TestNumericYear(t *testing.T) {
	re := regexp.MustCompile(Anchor(NumericYear))

	for _, ok := range []string{"1066", "-500", "+1950", "10,000", "12 000", "1", "1,000,000", "100000"} {
		assert.True(t, re.MatchString(ok), ok)
	}
	for _, bad := range []string{"0", "01066", "10,00", "1950s", "", "1066 1100", "1066,1100", "1,0000", "1000 000"} {
		assert.False(t, re.MatchString(bad), bad)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		ok       bool
	}{
		{"1066", 1066, true},
		{"+1950", 1950, true},
		{"-500", -500, true},
		{"10,000", 10000, true},
		{"12 000", 12000, true},
		{"99999999999999999999999", 0, false},
		{"", 0, false},
		{"XI", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, ok := ParseNumber(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "early 11th century", Normalize("  early  11th\tcentury "))
	assert.Equal(t, "d\u00e9but", Normalize("de\u0301but"))
	assert.Equal(t, "", Normalize(" \n "))
}
