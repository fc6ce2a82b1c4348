package gazetteer

import (
	"bytes"
	"context"
	"embed"
	"os"
	"path"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/yearspans/internal/span"
)

//go:embed data/*.yaml
var builtin embed.FS

// Period is one named period. Years use the internal model, where a BC year
// n is -n.
type Period struct {
	Label string `yaml:"label" json:"label"`
	Min   int    `yaml:"min" json:"min"`
	Max   int    `yaml:"max" json:"max"`
	URI   string `yaml:"uri,omitempty" json:"uri,omitempty"`
}

// Span returns the period's years.
func (p Period) Span() span.YearSpan {
	return span.New(p.Min, p.Max)
}

// TableFile is the YAML form of a period table. An empty authority makes
// the periods answer for every authority.
type TableFile struct {
	Authority string   `yaml:"authority"`
	Language  string   `yaml:"language"`
	Periods   []Period `yaml:"periods"`
}

// ParseTable decodes a period table. Unknown fields are rejected.
func ParseTable(filename string, data []byte) (*TableFile, error) {
	var f TableFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrapf(err, "decode period table %s", filename)
	}
	for i, p := range f.Periods {
		if Key(p.Label) == "" {
			return nil, errors.Errorf("period table %s: periods[%d] has no label", filename, i)
		}
	}
	return &f, nil
}

// ReadTable reads and decodes a period table file.
func ReadTable(filename string) (*TableFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "read period table")
	}
	return ParseTable(filename, data)
}

// BuiltinTables returns the embedded default table of every language.
func BuiltinTables() ([]*TableFile, error) {
	entries, err := builtin.ReadDir("data")
	if err != nil {
		return nil, errors.Wrap(err, "list builtin period tables")
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	files := make([]*TableFile, 0, len(names))
	for _, name := range names {
		p := path.Join("data", name)
		data, err := builtin.ReadFile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", p)
		}
		f, err := ParseTable(p, data)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// Table is an in-memory gazetteer. It is immutable once built.
type Table struct {
	// authority -> label key -> span; "" holds authority-independent periods
	periods map[string]map[string]span.YearSpan
	count   int
}

// NewTable indexes the periods of files. When a label occurs twice under
// one authority, the first definition is kept.
func NewTable(files ...*TableFile) *Table {
	t := &Table{periods: make(map[string]map[string]span.YearSpan)}
	for _, f := range files {
		byKey, ok := t.periods[f.Authority]
		if !ok {
			byKey = make(map[string]span.YearSpan)
			t.periods[f.Authority] = byKey
		}
		for _, p := range f.Periods {
			k := Key(p.Label)
			if _, dup := byKey[k]; dup {
				continue
			}
			byKey[k] = p.Span()
			t.count++
		}
	}
	return t
}

// DefaultTable is a Table over BuiltinTables.
func DefaultTable() (*Table, error) {
	files, err := BuiltinTables()
	if err != nil {
		return nil, err
	}
	return NewTable(files...), nil
}

// Len returns the number of periods in the table.
func (t *Table) Len() int {
	return t.count
}

// Lookup finds label under authority, then among the authority-independent
// periods.
func (t *Table) Lookup(_ context.Context, label, authority string) (span.YearSpan, error) {
	k := Key(label)
	if s, ok := t.periods[authority][k]; ok {
		return s, nil
	}
	if s, ok := t.periods[""][k]; ok {
		return s, nil
	}
	return span.Unresolved(), notFound(label, authority)
}
