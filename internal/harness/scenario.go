package harness

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/yearspans/internal/gazetteer"
	"github.com/roach88/yearspans/internal/span"
)

// Scenario is a set of expressions resolved under one language.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario covers.
	Description string `yaml:"description"`

	// Language is the BCP 47 tag of the variant to resolve with.
	Language string `yaml:"language"`

	// Present overrides the BP epoch when non-zero.
	Present int `yaml:"present,omitempty"`

	// Authority overrides the variant's gazetteer authority.
	Authority string `yaml:"authority,omitempty"`

	// Periods are named periods available to this scenario only. They
	// answer for every authority and shadow the embedded tables.
	Periods []gazetteer.Period `yaml:"periods,omitempty"`

	// Cases are checked in order.
	Cases []Case `yaml:"cases"`
}

// Case is one expression and what it must resolve to.
type Case struct {
	Input string `yaml:"input"`

	// Expect is the canonical span, e.g. "1001/1040".
	Expect string `yaml:"expect,omitempty"`

	// Rule, when set, must name the rule that matched.
	Rule string `yaml:"rule,omitempty"`

	// Unresolved asserts that no rule matches.
	Unresolved bool `yaml:"unresolved,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Language == "" {
		return fmt.Errorf("language is required")
	}
	if s.Present < 0 {
		return fmt.Errorf("present must not be negative")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	for i, p := range s.Periods {
		if strings.TrimSpace(p.Label) == "" {
			return fmt.Errorf("periods[%d]: label is required", i)
		}
		if p.Min > p.Max {
			return fmt.Errorf("periods[%d]: min %d is after max %d", i, p.Min, p.Max)
		}
	}

	for i, c := range s.Cases {
		if strings.TrimSpace(c.Input) == "" {
			return fmt.Errorf("cases[%d]: input is required", i)
		}
		switch {
		case c.Unresolved && c.Expect != "":
			return fmt.Errorf("cases[%d]: expect and unresolved are exclusive", i)
		case c.Unresolved && c.Rule != "":
			return fmt.Errorf("cases[%d]: an unresolved case has no rule", i)
		case !c.Unresolved && c.Expect == "":
			return fmt.Errorf("cases[%d]: expect or unresolved is required", i)
		}
		if c.Expect != "" {
			if _, err := ParseSpan(c.Expect); err != nil {
				return fmt.Errorf("cases[%d]: %w", i, err)
			}
		}
	}
	return nil
}

// ParseSpan reads a canonical "min/max" span string.
func ParseSpan(s string) (span.YearSpan, error) {
	first, second, ok := strings.Cut(s, "/")
	if !ok {
		return span.Unresolved(), fmt.Errorf("span %q: want min/max", s)
	}
	lo, err := span.ParseCanonicalYear(first)
	if err != nil {
		return span.Unresolved(), fmt.Errorf("span %q: %w", s, err)
	}
	hi, err := span.ParseCanonicalYear(second)
	if err != nil {
		return span.Unresolved(), fmt.Errorf("span %q: %w", s, err)
	}
	return span.New(lo, hi), nil
}

// FindScenarios returns the .yaml and .yml files under dir, in lexical
// order. filter, when set, is a glob matched against the file name without
// its extension.
func FindScenarios(dir, filter string) ([]string, error) {
	if filter != "" {
		if _, err := filepath.Match(filter, ""); err != nil {
			return nil, fmt.Errorf("invalid filter pattern: %w", err)
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			if matched, _ := filepath.Match(filter, name); !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	return files, err
}
