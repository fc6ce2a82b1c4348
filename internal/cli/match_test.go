package cli

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_Golden(t *testing.T) {
	stdout, _, err := execute(t, "match",
		"early 11th century",
		"1950s",
		"1066 BC",
		"Edwardian",
		"Medieval to Edwardian",
	)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "match", []byte(stdout))
}

func TestMatch_Unresolved(t *testing.T) {
	stdout, _, err := execute(t, "match", "1066", "Atlantis")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 expression(s) unresolved")
	assert.Equal(t, "1066 => 1066/1066 [lone-year]\nAtlantis => unresolved\n", stdout)
}

func TestMatch_MissingArgs(t *testing.T) {
	_, _, err := execute(t, "match")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestMatch_JSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "match", "early 11th century", "Atlantis")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var response struct {
		Status string        `json:"status"`
		Data   []MatchResult `json:"data"`
		Error  *CLIError     `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	assert.Equal(t, "error", response.Status)
	require.NotNil(t, response.Error)
	assert.Equal(t, ErrCodeUnresolved, response.Error.Code)

	require.Len(t, response.Data, 2)
	first := response.Data[0]
	assert.True(t, first.Resolved)
	assert.Equal(t, "ordinal-century", first.Rule)
	assert.Equal(t, "1001/1040", first.Span.SpanString())
	assert.Equal(t, "early 11th century", first.Span.Label())

	assert.False(t, response.Data[1].Resolved)
	assert.False(t, response.Data[1].Span.IsResolved())
}

func TestMatch_Options(t *testing.T) {
	table := writeFile(t, "local.yaml", `periods:
  - {label: Hanoverian, min: 1714, max: 1837}
  - {label: Edwardian, min: 1901, max: 1914}
`)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "language",
			args: []string{"--lang", "de", "match", "Frühes 11. Jahrhundert n. Chr"},
			want: "Frühes 11. Jahrhundert n. Chr => 1001/1040 [ordinal-century]\n",
		},
		{
			name: "present",
			args: []string{"--present", "1950", "match", "1000 BP"},
			want: "1000 BP => 0950/0950 [year-suffix]\n",
		},
		{
			name: "period table",
			args: []string{"--periods", table, "match", "Hanoverian"},
			want: "Hanoverian => 1714/1837 [named-period]\n",
		},
		{
			name: "period table shadows built-in",
			args: []string{"--periods", table, "match", "Edwardian"},
			want: "Edwardian => 1901/1914 [named-period]\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestMatch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"unknown language", []string{"--lang", "pt", "match", "1066"}, "unsupported language"},
		{"missing period table", []string{"--periods", "/nonexistent/periods.yaml", "match", "1066"}, "failed to read period table"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}
