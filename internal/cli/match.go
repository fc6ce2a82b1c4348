package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/yearspans/internal/span"
)

// MatchResult is the outcome of resolving one expression.
type MatchResult struct {
	Input    string        `json:"input"`
	Resolved bool          `json:"resolved"`
	Rule     string        `json:"rule,omitempty"`
	Span     span.YearSpan `json:"span"`
}

// NewMatchCommand creates the match command.
func NewMatchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <expression>...",
		Short: "Resolve expressions to year spans",
		Long: `Resolve each argument to a year span and print it with the rule that
matched. Spans are printed as canonical min/max years, where 0000 is 1 BC.

Exit codes:
  0 - Every expression resolved
  1 - One or more expressions matched no rule
  2 - Command error (unknown language, unreadable period tables, etc.)

Examples:
  yearspans match "early 11th century" "1950s"
  yearspans match --lang fr "début du XIe siècle"
  yearspans match --format json "Bronze Age"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runMatch(opts *RootOptions, inputs []string, cmd *cobra.Command) error {
	r, err := newResolver(opts.Config, opts.Logger)
	if err != nil {
		return err
	}
	defer r.Close()

	results := make([]MatchResult, 0, len(inputs))
	unresolved := 0
	for _, input := range inputs {
		res := r.engine.Explain(cmd.Context(), input)
		if !res.Resolved() {
			unresolved++
		}
		results = append(results, MatchResult{
			Input:    input,
			Resolved: res.Resolved(),
			Rule:     res.Rule,
			Span:     res.Span,
		})
	}

	if opts.Format == "json" {
		return outputMatchJSON(cmd, results, unresolved)
	}

	w := cmd.OutOrStdout()
	for _, m := range results {
		if !m.Resolved {
			fmt.Fprintf(w, "%s => unresolved\n", m.Input)
			continue
		}
		fmt.Fprintf(w, "%s => %s [%s]\n", m.Input, m.Span.SpanString(), m.Rule)
	}
	if unresolved > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d expression(s) unresolved", unresolved)).WithCode(ErrCodeUnresolved)
	}
	return nil
}

// outputMatchJSON writes every result; unresolved inputs also set the
// response error.
func outputMatchJSON(cmd *cobra.Command, results []MatchResult, unresolved int) error {
	response := CLIResponse{
		Status: "ok",
		Data:   results,
	}
	if unresolved > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeUnresolved,
			Message: fmt.Sprintf("%d expression(s) unresolved", unresolved),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if unresolved > 0 {
		return NewExitError(ExitFailure, response.Error.Message).WithCode(ErrCodeUnresolved)
	}
	return nil
}
