package engine

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/roach88/yearspans/internal/calendar"
	"github.com/roach88/yearspans/internal/span"
	"github.com/roach88/yearspans/internal/vocab"
)

// buildNamedPeriod hands the whole input to the gazetteer. If that fails
// and the input starts with a prefix word, the remainder is tried; the
// prefix does not narrow the period.
func buildNamedPeriod(env *Env) (Rule, error) {
	var stripPrefix *regexp.Regexp
	if len(env.Vocab.Prefixes) > 0 {
		re, err := regexp.Compile(`(?i)^` + vocab.OneOf("", env.Vocab.Prefixes.Patterns()) + `\s+(?P<label>.+)$`)
		if err != nil {
			return nil, err
		}
		stripPrefix = re
	}
	return RuleFunc(RuleNamedPeriod, func(ctx context.Context, text string) (span.YearSpan, bool) {
		if s, ok := env.Lookup(ctx, text); ok {
			return s, true
		}
		if stripPrefix == nil {
			return span.Unresolved(), false
		}
		m := stripPrefix.FindStringSubmatch(text)
		if m == nil {
			return span.Unresolved(), false
		}
		return env.Lookup(ctx, m[stripPrefix.SubexpIndex("label")])
	}), nil
}

// buildNamedPeriodRange splits the input at each separator in turn and
// looks up both sides. The first split where both resolve wins.
func buildNamedPeriodRange(env *Env) (Rule, error) {
	sep, err := regexp.Compile(`(?i)` + nameSeparator(env.Vocab.Separators))
	if err != nil {
		return nil, err
	}
	return RuleFunc(RuleNamedPeriodRange, func(ctx context.Context, text string) (span.YearSpan, bool) {
		for _, loc := range sep.FindAllStringIndex(text, -1) {
			if ctx.Err() != nil {
				break
			}
			left := strings.TrimSpace(text[:loc[0]])
			right := strings.TrimSpace(text[loc[1]:])
			if left == "" || right == "" {
				continue
			}
			first, ok := env.Lookup(ctx, left)
			if !ok {
				continue
			}
			second, ok := env.Lookup(ctx, right)
			if !ok {
				continue
			}
			if s := calendar.Compose(first, second); s.IsResolved() {
				return s, true
			}
		}
		return span.Unresolved(), false
	}), nil
}

// nameSeparator matches a separator between two period names. Word
// separators ("to", "bis") must stand apart from the names around them so
// that "Georgian" is never split at "or"; punctuation may touch them
// ("Romano-British").
func nameSeparator(separators []string) string {
	var words, marks []string
	for _, sep := range separators {
		r, _ := utf8.DecodeRuneInString(sep)
		if unicode.IsLetter(r) {
			words = append(words, sep)
		} else {
			marks = append(marks, sep)
		}
	}
	var alts []string
	if len(words) > 0 {
		alts = append(alts, `\s+`+vocab.OneOf("", words)+`\s+`)
	}
	if len(marks) > 0 {
		alts = append(alts, `\s*`+vocab.OneOf("", marks)+`\s*`)
	}
	return vocab.OneOf("", alts)
}
