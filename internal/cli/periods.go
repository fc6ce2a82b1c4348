package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/yearspans/internal/gazetteer"
	"github.com/roach88/yearspans/internal/store"
)

// ImportResult describes one import batch.
type ImportResult struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Authority string `json:"authority,omitempty"`
	Periods   int    `json:"periods"`
	Skipped   int    `json:"skipped"`
}

// LookupResult is the answer to a period lookup.
type LookupResult struct {
	Label     string `json:"label"`
	Authority string `json:"authority"`
	Found     bool   `json:"found"`
	Span      string `json:"isoSpan,omitempty"`
}

// NewPeriodsCommand creates the periods command group.
func NewPeriodsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "periods",
		Short: "Manage the named-period index",
		Long: `Import named periods into the SQLite index given by --db, and look
period names up through the same sources match uses.`,
	}

	cmd.AddCommand(newPeriodsImportCommand(rootOpts))
	cmd.AddCommand(newPeriodsLookupCommand(rootOpts))
	return cmd
}

// PeriodsImportOptions holds flags for periods import.
type PeriodsImportOptions struct {
	*RootOptions
	OnlyLanguage string
}

func newPeriodsImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PeriodsImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a PeriodO authority or a YAML period table",
		Long: `Import named periods into the index given by --db. The index is
created if it does not exist.

A .json file is read as a PeriodO authority (or a PeriodO dataset of
several authorities); anything else as a YAML period table. --authority
overrides a YAML table's authority and fills PeriodO periods that lack one.
Labels already indexed under the same authority are skipped.

Examples:
  yearspans periods import --db periods.db p0kh9ds.json
  yearspans periods import --db periods.db --only-language fr p02chr4.json
  yearspans periods import --db periods.db --authority local sites.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeriodsImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.OnlyLanguage, "only-language", "", "import only PeriodO labels in this language")

	return cmd
}

func runPeriodsImport(opts *PeriodsImportOptions, path string, cmd *cobra.Command) error {
	cfg := opts.Config
	if cfg.DB == "" {
		return NewExitError(ExitCommandError, "--db is required for periods import")
	}
	formatter := opts.formatter(cmd)

	st, err := store.Open(cfg.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open periods index", err).WithCode(ErrCodeStore)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			opts.Logger.Error("error closing periods index", "error", closeErr)
		}
	}()

	source := filepath.Base(path)
	var imp store.Import
	if strings.EqualFold(filepath.Ext(path), ".json") {
		entries, err := readPeriodO(path, opts.OnlyLanguage)
		if err != nil {
			return err
		}
		formatter.VerboseLog("Read %d PeriodO label(s) from %s", len(entries), path)
		imp, err = gazetteer.ImportEntries(cmd.Context(), st, source, cfg.Authority, entries)
		if err != nil {
			return WrapExitError(ExitCommandError, "import failed", err).WithCode(ErrCodeStore)
		}
	} else {
		table, err := gazetteer.ReadTable(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read period table", err).WithCode(ErrCodeInput)
		}
		formatter.VerboseLog("Read %d period(s) from %s", len(table.Periods), path)
		imp, err = gazetteer.ImportTable(cmd.Context(), st, source, cfg.Authority, table)
		if err != nil {
			return WrapExitError(ExitCommandError, "import failed", err).WithCode(ErrCodeStore)
		}
	}

	opts.Logger.Info("periods imported",
		"id", imp.ID,
		"source", imp.Source,
		"periods", imp.PeriodCount,
		"skipped", imp.Skipped,
	)

	result := ImportResult{
		ID:        imp.ID,
		Source:    imp.Source,
		Authority: imp.AuthorityID,
		Periods:   imp.PeriodCount,
		Skipped:   imp.Skipped,
	}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d period(s) from %s (%d skipped)\n",
		result.Periods, result.Source, result.Skipped)
	return nil
}

// readPeriodO parses a PeriodO file, keeping only labels in language when
// it is set.
func readPeriodO(path, language string) ([]gazetteer.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open PeriodO file", err).WithCode(ErrCodeInput)
	}
	defer f.Close()

	entries, err := gazetteer.ParsePeriodO(f)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to parse PeriodO file", err).WithCode(ErrCodeInput)
	}
	if language == "" {
		return entries, nil
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.Language == language {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

func newPeriodsLookupCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <label>",
		Short: "Look a period name up",
		Long: `Look a period name up in --periods tables, the --db index, PeriodO
(with --periodo) and the built-in tables, under --authority or the
language's default authority.

Exit codes:
  0 - The period was found
  1 - No source knows the period
  2 - Command error (lookup failed, unreadable tables, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeriodsLookup(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runPeriodsLookup(opts *RootOptions, label string, cmd *cobra.Command) error {
	r, err := newResolver(opts.Config, opts.Logger)
	if err != nil {
		return err
	}
	defer r.Close()

	authority := r.engine.Authority()
	result := LookupResult{Label: label, Authority: authority}

	s, err := r.gazetteer.Lookup(cmd.Context(), label, authority)
	switch {
	case gazetteer.IsNotFound(err):
	case err != nil:
		return WrapExitError(ExitCommandError, "lookup failed", err).WithCode(ErrCodeStore)
	default:
		result.Found = true
		result.Span = s.SpanString()
	}

	if opts.Format == "json" {
		if err := opts.formatter(cmd).Success(result); err != nil {
			return err
		}
	} else if result.Found {
		fmt.Fprintf(cmd.OutOrStdout(), "%s => %s [%s]\n", label, result.Span, authority)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s => not found [%s]\n", label, authority)
	}

	if !result.Found {
		return NewExitError(ExitFailure, fmt.Sprintf("period %q not found", label))
	}
	return nil
}
