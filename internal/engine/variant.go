package engine

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/language"

	"github.com/roach88/yearspans/internal/vocab"
)

// Variant is a language's configuration of the engine: its vocabulary, BP
// epoch, named-period authority and ordered rule list.
//
// A Variant is a value. The composition methods return a modified copy and
// never change the receiver, so a variant can be derived from another
// without affecting engines already built from it.
type Variant struct {
	Language   string
	Vocabulary *vocab.Vocabulary
	Present    int
	Authority  string
	Rules      []RuleSpec
}

// NewVariant returns a variant with the default cascade over v.
func NewVariant(v *vocab.Vocabulary) Variant {
	return Variant{
		Language:   v.Language,
		Vocabulary: v,
		Present:    v.Present,
		Authority:  v.Authority,
		Rules:      DefaultRules(),
	}
}

// overrides holds the rule changes individual languages make on top of the
// default cascade.
var overrides = map[string]func(Variant) (Variant, error){
	"cs": czech,
	"cy": welsh,
	"no": norwegian,
	"sv": swedish,
}

// aliases maps base languages that share a built-in vocabulary to it.
var aliases = map[string]string{
	"nb": "no",
	"nn": "no",
}

// ForLanguage returns the built-in variant for a BCP 47 language tag. Only
// the base language is used: "en-GB" selects "en", "nb" selects "no".
func ForLanguage(tag string) (Variant, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return Variant{}, &VariantError{
			Code:    ErrCodeUnknownLanguage,
			Message: fmt.Sprintf("invalid language tag %q", tag),
			Err:     err,
		}
	}
	base, _ := t.Base()
	lang := base.String()
	if alias, ok := aliases[lang]; ok {
		lang = alias
	}
	v, err := vocab.Load(lang)
	if err != nil {
		code := ErrCodeBadPattern
		if errors.Is(err, vocab.ErrUnknownLanguage) {
			code = ErrCodeUnknownLanguage
		}
		return Variant{}, &VariantError{
			Code:    code,
			Message: fmt.Sprintf("load vocabulary for %q", tag),
			Err:     err,
		}
	}
	variant := NewVariant(v)
	if override, ok := overrides[variant.Language]; ok {
		return override(variant)
	}
	return variant, nil
}

// Languages lists the languages ForLanguage accepts.
func Languages() []string {
	return vocab.Languages()
}

// RuleNames returns the rule names in cascade order.
func (v Variant) RuleNames() []string {
	names := make([]string, len(v.Rules))
	for i, r := range v.Rules {
		names[i] = r.Name
	}
	return names
}

func (v Variant) index(name string) int {
	return slices.IndexFunc(v.Rules, func(r RuleSpec) bool { return r.Name == name })
}

func (v Variant) find(name string) (int, error) {
	i := v.index(name)
	if i < 0 {
		return -1, &VariantError{
			Code:    ErrCodeUnknownRule,
			Rule:    name,
			Message: "rule not in variant",
		}
	}
	return i, nil
}

func (v Variant) checkNew(name string) error {
	if v.index(name) >= 0 {
		return &VariantError{
			Code:    ErrCodeDuplicateRule,
			Rule:    name,
			Message: "rule already in variant",
		}
	}
	return nil
}

// Replace swaps the builder of the named rule, keeping its position.
func (v Variant) Replace(name string, build BuildFunc) (Variant, error) {
	i, err := v.find(name)
	if err != nil {
		return v, err
	}
	v.Rules = slices.Clone(v.Rules)
	v.Rules[i] = RuleSpec{Name: name, Build: build}
	return v, nil
}

// Suppress removes the named rules.
func (v Variant) Suppress(names ...string) (Variant, error) {
	rules := slices.Clone(v.Rules)
	for _, name := range names {
		i := slices.IndexFunc(rules, func(r RuleSpec) bool { return r.Name == name })
		if i < 0 {
			return v, &VariantError{
				Code:    ErrCodeUnknownRule,
				Rule:    name,
				Message: "rule not in variant",
			}
		}
		rules = slices.Delete(rules, i, i+1)
	}
	v.Rules = rules
	return v, nil
}

// InsertBefore adds spec immediately ahead of the named rule.
func (v Variant) InsertBefore(anchor string, spec RuleSpec) (Variant, error) {
	return v.insert(anchor, 0, spec)
}

// InsertAfter adds spec immediately behind the named rule.
func (v Variant) InsertAfter(anchor string, spec RuleSpec) (Variant, error) {
	return v.insert(anchor, 1, spec)
}

func (v Variant) insert(anchor string, offset int, spec RuleSpec) (Variant, error) {
	if err := v.checkNew(spec.Name); err != nil {
		return v, err
	}
	i, err := v.find(anchor)
	if err != nil {
		return v, err
	}
	v.Rules = slices.Insert(slices.Clone(v.Rules), i+offset, spec)
	return v, nil
}

// Append adds spec at the end of the cascade.
func (v Variant) Append(spec RuleSpec) (Variant, error) {
	if err := v.checkNew(spec.Name); err != nil {
		return v, err
	}
	v.Rules = append(slices.Clone(v.Rules), spec)
	return v, nil
}
