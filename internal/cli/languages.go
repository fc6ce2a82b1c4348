package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/yearspans/internal/engine"
)

// LanguageInfo describes one built-in language variant.
type LanguageInfo struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Authority string   `json:"authority"`
	Present   int      `json:"present"`
	Rules     []string `json:"rules"`
}

// NewLanguagesCommand creates the languages command.
func NewLanguagesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the supported languages",
		Long: `List the built-in language variants with their default named-period
authority, BP epoch and rule cascade. --verbose prints the rule names.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLanguages(rootOpts, cmd)
		},
	}

	return cmd
}

func runLanguages(opts *RootOptions, cmd *cobra.Command) error {
	langs := engine.Languages()
	infos := make([]LanguageInfo, 0, len(langs))
	for _, code := range langs {
		v, err := engine.ForLanguage(code)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load language %s", code), err).WithCode(ErrCodeLanguage)
		}
		infos = append(infos, LanguageInfo{
			Code:      v.Language,
			Name:      v.Vocabulary.Name,
			Authority: v.Authority,
			Present:   v.Present,
			Rules:     v.RuleNames(),
		})
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(infos)
	}

	w := cmd.OutOrStdout()
	for _, info := range infos {
		fmt.Fprintf(w, "%-3s %-10s authority=%s present=%d rules=%d\n",
			info.Code, info.Name, info.Authority, info.Present, len(info.Rules))
		if opts.Verbose {
			for i, name := range info.Rules {
				fmt.Fprintf(w, "    %2d. %s\n", i+1, name)
			}
		}
	}
	return nil
}
