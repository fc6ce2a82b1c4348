package vocab

import (
	"strconv"
	"strings"
)

// Fragments shared by every language.
const (
	// NumericYear is a year of any length with optional sign and
	// thousands separators: "1066", "-500", "10,000", "12 000". Every group
	// after a separator has exactly three digits, so "1066 1100" is not a
	// year.
	NumericYear = `[+-]?(?:[1-9]\d{0,2}(?:[\s,]\d{3})+|[1-9]\d*)`
	// SpaceOrDash matches one whitespace rune or dash.
	SpaceOrDash = `(?:\s|\p{Pd})`
)

// Group wraps expr in a capture group called name, or a non-capturing group
// when name is empty.
func Group(name, expr string) string {
	if name == "" {
		return "(?:" + expr + ")"
	}
	return "(?P<" + name + ">" + expr + ")"
}

// Maybe is an optional Group.
func Maybe(name, expr string) string {
	return Group(name, expr) + "?"
}

// OneOf groups an alternation of alts.
func OneOf(name string, alts []string) string {
	return Group(name, strings.Join(alts, "|"))
}

// Join concatenates parts with optional whitespace between them, skipping
// empty parts.
func Join(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, `\s*`)
}

// Anchor makes expr a whole-string, case-insensitive pattern.
func Anchor(expr string) string {
	return `(?i)^(?:` + expr + `)$`
}

// ParseNumber parses a matched numeric token after removing thousands
// separators. It reports false on overflow or junk.
func ParseNumber(token string) (int, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', '\t':
			return -1
		}
		return r
	}, strings.TrimSpace(token))
	cleaned = strings.TrimPrefix(cleaned, "+")
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return n, true
}
