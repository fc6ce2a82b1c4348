package harness

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Report renders a result as text, one line per case.
func Report(r *Result) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "scenario %s (%s)\n", r.Scenario, r.Language)
	for _, c := range r.Cases {
		status := "ok  "
		if !c.Pass {
			status = "FAIL"
		}
		got := c.Got
		if got == "" {
			got = "unresolved"
		}
		fmt.Fprintf(&b, "%s %s => %s", status, c.Input, got)
		if c.Rule != "" {
			fmt.Fprintf(&b, " [%s]", c.Rule)
		}
		if c.Message != "" {
			fmt.Fprintf(&b, ": %s", c.Message)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%d passed, %d failed\n", r.Passed, r.Failed)
	return b.Bytes()
}

// RunWithGolden runs a scenario and compares its report against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...Option) error {
	t.Helper()

	result, err := Run(context.Background(), scenario, opts...)
	if err != nil {
		return err
	}
	AssertGolden(t, scenario.Name, result)
	return nil
}

// AssertGolden compares a result's report against a golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Report(result))
}
