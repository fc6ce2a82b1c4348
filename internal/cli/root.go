package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/yearspans/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string

	// Config and Logger are set before any subcommand runs.
	Config *config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the yearspans CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "yearspans",
		Short: "Resolve historical date expressions to year spans",
		Long: `Resolve free-text temporal expressions such as "early 11th century",
"1950s", "1066 BC" or "Bronze Age" to the span of years they denote.

Settings are read from flags, YEARSPANS_* environment variables and an
optional yearspans.yaml, in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			cfg, err := config.Load(opts.ConfigFile, cmd.Flags())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load configuration", err).WithCode(ErrCodeConfig)
			}
			opts.Config = cfg

			opts.Logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			slog.SetDefault(opts.Logger)
			if cfg.File != "" {
				opts.Logger.Debug("config loaded", "file", cfg.File)
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	// Global flags
	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVar(&opts.ConfigFile, "config", "", "config file (default ./yearspans.yaml)")
	flags.String("lang", config.DefaultLanguage, "language of the expressions")
	flags.Int("present", 0, "BP epoch year (0 keeps the language default)")
	flags.String("authority", "", "named-period authority id (default per language)")
	flags.String("db", "", "path to the SQLite periods index")
	flags.StringSlice("periods", nil, "extra YAML period table (repeatable)")
	flags.Bool("periodo", false, "look up unknown period names in PeriodO")
	flags.Duration("lookup-timeout", config.DefaultLookupTimeout, "timeout for one named-period lookup")

	// Add subcommands
	cmd.AddCommand(NewMatchCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewPeriodsCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewLanguagesCommand(opts))

	return cmd
}

// Execute runs cmd and reports the error it returns, if any, as
// "Error [code]: message" on stderr. Under --format json the error is also
// written to stdout as an error response, unless the command already
// reported the failure in its own response. It returns the exit code.
func Execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	errCode := GetErrCode(err)
	stderr := &OutputFormatter{Format: "text", Writer: cmd.ErrOrStderr()}
	_ = stderr.Error(errCode, err.Error(), nil)

	var exitErr *ExitError
	reported := errors.As(err, &exitErr) && exitErr.Code == ExitFailure
	if format, _ := cmd.PersistentFlags().GetString("format"); format == "json" && !reported {
		stdout := &OutputFormatter{Format: "json", Writer: cmd.OutOrStdout()}
		_ = stdout.Error(errCode, err.Error(), nil)
	}
	return GetExitCode(err)
}

// newLogger builds the per-invocation logger. Logs always go to stderr so
// they never mix with command output.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	return slog.New(handler)
}

// formatter returns an output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
