package vocab

import (
	"fmt"
	"regexp"
	"strings"
)

// Term is one recognizable word or phrase and the value it stands for.
// Pattern is a regular expression fragment; it is matched against whole
// tokens, case-insensitively.
type Term[V any] struct {
	Value   V      `yaml:"value"`
	Pattern string `yaml:"pattern"`

	re *regexp.Regexp
}

// Terms is an ordered term list. Earlier terms win when several match.
type Terms[V any] []Term[V]

func (t Terms[V]) compile(field string) error {
	for i := range t {
		re, err := compileWhole(t[i].Pattern)
		if err != nil {
			return fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		t[i].re = re
	}
	return nil
}

// Patterns returns the raw pattern of every term, in order.
func (t Terms[V]) Patterns() []string {
	out := make([]string, len(t))
	for i, term := range t {
		out[i] = term.Pattern
	}
	return out
}

// Lookup returns the value of the first term whose pattern matches the whole
// token.
func (t Terms[V]) Lookup(token string) (V, bool) {
	var zero V
	token = strings.TrimSpace(token)
	if token == "" {
		return zero, false
	}
	for _, term := range t {
		if term.re != nil && term.re.MatchString(token) {
			return term.Value, true
		}
	}
	return zero, false
}

func compileWhole(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(Anchor(pattern))
}
