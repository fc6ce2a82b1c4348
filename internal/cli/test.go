package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/yearspans/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	File   string   `json:"file"`
	Pass   bool     `json:"pass"`
	Passed int      `json:"passed"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run scenario files",
		Long: `Run YAML scenario files: each lists expressions in one language and
the span (and optionally the rule) each must resolve to.

When golden/<scenario>.golden exists next to a scenario file, the run's
report must also match it byte for byte. --update rewrites the golden files.

Scenarios use the built-in period tables unless --periods, --db or
--periodo name other sources.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  yearspans test ./scenarios
  yearspans test ./scenarios --filter "fr*"
  yearspans test ./scenarios --update
  yearspans test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir)).WithCode(ErrCodeInput)
	}

	scenarioFiles, err := harness.FindScenarios(scenariosDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find scenarios", err).WithCode(ErrCodeInput)
	}

	if len(scenarioFiles) == 0 {
		if opts.Format == "json" {
			return outputTestJSON(cmd, TestResult{Scenarios: []ScenarioResult{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	runOpts := []harness.Option{harness.WithLogger(opts.Logger)}
	cfg := opts.Config
	if len(cfg.Periods) > 0 || cfg.DB != "" || cfg.PeriodO.Enabled {
		r := &resolver{}
		defer r.Close()
		g, err := r.openGazetteer(cfg, "", opts.Logger)
		if err != nil {
			return err
		}
		runOpts = append(runOpts, harness.WithGazetteer(g))
	}

	result := TestResult{
		Scenarios: make([]ScenarioResult, 0, len(scenarioFiles)),
		Total:     len(scenarioFiles),
	}
	for _, scenarioFile := range scenarioFiles {
		scenResult := runScenario(scenarioFile, opts, runOpts, cmd)
		result.Scenarios = append(result.Scenarios, scenResult)

		if scenResult.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		return outputTestJSON(cmd, result)
	}
	return outputTestText(cmd, result)
}

// runScenario executes a single scenario and returns the result.
func runScenario(scenarioFile string, opts *TestOptions, runOpts []harness.Option, cmd *cobra.Command) ScenarioResult {
	w := cmd.OutOrStdout()
	text := opts.Format != "json"
	sr := ScenarioResult{Name: filepath.Base(scenarioFile), File: scenarioFile}

	fail := func(msg string) ScenarioResult {
		if text {
			fmt.Fprintf(w, "✗ %s\n", sr.Name)
			fmt.Fprintf(w, "  %s\n", msg)
		}
		sr.Errors = append(sr.Errors, msg)
		return sr
	}

	scenario, err := harness.LoadScenario(scenarioFile)
	if err != nil {
		return fail(fmt.Sprintf("load error: %v", err))
	}
	sr.Name = scenario.Name

	result, err := harness.Run(cmd.Context(), scenario, runOpts...)
	if err != nil {
		return fail(fmt.Sprintf("execution error: %v", err))
	}
	sr.Passed = result.Passed
	sr.Failed = result.Failed
	for _, c := range result.Failures() {
		sr.Errors = append(sr.Errors, fmt.Sprintf("%s: %s", c.Input, c.Message))
	}

	report := harness.Report(result)
	goldenPath := goldenFilePath(scenarioFile)
	golden := ""
	switch {
	case opts.Update:
		if err := writeGoldenFile(goldenPath, report); err != nil {
			return fail(fmt.Sprintf("golden update error: %v", err))
		}
		golden = " (golden updated)"
	default:
		want, err := os.ReadFile(goldenPath)
		if err == nil && !bytes.Equal(want, report) {
			sr.Errors = append(sr.Errors, "report does not match golden file (run with --update to regenerate)")
		} else if err != nil && !os.IsNotExist(err) {
			return fail(fmt.Sprintf("golden comparison error: %v", err))
		}
	}

	sr.Pass = len(sr.Errors) == 0
	if text {
		if sr.Pass {
			fmt.Fprintf(w, "✓ %s (%d cases)%s\n", sr.Name, sr.Passed, golden)
		} else {
			fmt.Fprintf(w, "✗ %s (%d passed, %d failed)\n", sr.Name, sr.Passed, sr.Failed)
			for _, e := range sr.Errors {
				fmt.Fprintf(w, "  %s\n", e)
			}
		}
	}
	return sr
}

// goldenFilePath returns the path to the golden file for a scenario.
func goldenFilePath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

// writeGoldenFile writes a scenario report as its golden file.
func writeGoldenFile(goldenPath string, report []byte) error {
	if err := os.MkdirAll(filepath.Dir(goldenPath), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(goldenPath, report, 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(cmd *cobra.Command, result TestResult) error {
	status := "ok"
	if result.Failed > 0 {
		status = "error"
	}

	response := CLIResponse{
		Status: status,
		Data:   result,
	}

	if result.Failed > 0 {
		response.Error = &CLIError{
			Code:    "E_TEST_FAILED",
			Message: fmt.Sprintf("%d scenario(s) failed", result.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		// Test failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}

// outputTestText outputs the test result as text.
func outputTestText(cmd *cobra.Command, result TestResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		// Test failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}
