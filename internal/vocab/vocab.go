package vocab

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/yearspans/internal/calendar"
)

//go:embed data/*.yaml
var builtin embed.FS

// ErrUnknownLanguage is returned by Load for a language with no built-in
// vocabulary.
var ErrUnknownLanguage = errors.New("unknown language")

// Vocabulary is the complete word list for one language.
type Vocabulary struct {
	Language  string `yaml:"language"`
	Name      string `yaml:"name"`
	Authority string `yaml:"authority"`
	Present   int    `yaml:"present"`

	Century      string        `yaml:"century"`
	CenturyFirst bool          `yaml:"century_first"`
	Millennium   string        `yaml:"millennium"`
	YearMarker   string        `yaml:"year_marker"`
	Decade       DecadeGrammar `yaml:"decade"`

	Months     Terms[int]                `yaml:"months"`
	Seasons    Terms[string]             `yaml:"seasons"`
	Ordinals   Terms[int]                `yaml:"ordinals"`
	Cardinals  Terms[int]                `yaml:"cardinals"`
	Prefixes   Terms[calendar.Precision] `yaml:"prefixes"`
	Suffixes   Terms[calendar.Era]       `yaml:"suffixes"`
	Separators []string                  `yaml:"separators"`
}

// DecadeGrammar is the text around a decade number: "the 1950s" has an
// "after" of "s", "les années 1950" a "before" of "les années".
type DecadeGrammar struct {
	Before string `yaml:"before"`
	After  string `yaml:"after"`
}

// Defined reports whether the language has a decade form at all.
func (d DecadeGrammar) Defined() bool {
	return d.Before != "" || d.After != ""
}

// Languages lists the built-in vocabulary languages in sorted order.
func Languages() []string {
	entries, err := builtin.ReadDir("data")
	if err != nil {
		return nil
	}
	var langs []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			langs = append(langs, name)
		}
	}
	sort.Strings(langs)
	return langs
}

// Load returns the built-in vocabulary for language.
func Load(language string) (*Vocabulary, error) {
	name := path.Join("data", strings.ToLower(language)+".yaml")
	data, err := builtin.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
	return Parse(name, data)
}

// LoadFile reads, validates and compiles a vocabulary file.
func LoadFile(filename string) (*Vocabulary, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	return Parse(filename, data)
}

// Parse validates data against the vocabulary schema, decodes it and
// compiles every pattern. The first schema violation is returned as a
// *SchemaError.
func Parse(filename string, data []byte) (*Vocabulary, error) {
	v, errs := validate(filename, data)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return v, nil
}

func decode(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if v.Present <= 0 {
		v.Present = calendar.DefaultPresent
	}
	return &v, nil
}

// compile builds the matcher of every term. It reports all bad patterns.
func (v *Vocabulary) compile(filename string) []*SchemaError {
	var errs []*SchemaError
	add := func(field string, err error) {
		if err != nil {
			errs = append(errs, &SchemaError{
				File:     filename,
				Language: v.Language,
				Path:     field,
				Message:  err.Error(),
			})
		}
	}

	add("months", v.Months.compile("months"))
	add("seasons", v.Seasons.compile("seasons"))
	add("ordinals", v.Ordinals.compile("ordinals"))
	add("cardinals", v.Cardinals.compile("cardinals"))
	add("prefixes", v.Prefixes.compile("prefixes"))
	add("suffixes", v.Suffixes.compile("suffixes"))

	singles := map[string]string{
		"century":       v.Century,
		"millennium":    v.Millennium,
		"year_marker":   v.YearMarker,
		"decade.before": v.Decade.Before,
		"decade.after":  v.Decade.After,
	}
	for i, sep := range v.Separators {
		singles[fmt.Sprintf("separators[%d]", i)] = sep
	}
	keys := make([]string, 0, len(singles))
	for k := range singles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if singles[k] == "" {
			continue
		}
		_, err := compileWhole(singles[k])
		add(k, err)
	}
	return errs
}

// Era resolves an era suffix token. Absent or unrecognized tokens are EraNone.
func (v *Vocabulary) Era(token string) calendar.Era {
	e, _ := v.Suffixes.Lookup(token)
	return e
}

// Precision resolves a prefix token. Absent, unrecognized and value-less
// prefixes ("in the", "from") are PrecisionNone.
func (v *Vocabulary) Precision(token string) calendar.Precision {
	p, _ := v.Prefixes.Lookup(token)
	return p
}

// Ordinal resolves an ordinal token such as "11th", "XI" or "eleventh".
func (v *Vocabulary) Ordinal(token string) (int, bool) {
	return v.Ordinals.Lookup(token)
}

// Cardinal resolves a plain number or a cardinal word.
func (v *Vocabulary) Cardinal(token string) (int, bool) {
	if n, ok := ParseNumber(token); ok {
		return n, true
	}
	return v.Cardinals.Lookup(token)
}

// Month resolves a month name to 1..12.
func (v *Vocabulary) Month(token string) (int, bool) {
	return v.Months.Lookup(token)
}

// Season resolves a season name.
func (v *Vocabulary) Season(token string) (string, bool) {
	return v.Seasons.Lookup(token)
}
