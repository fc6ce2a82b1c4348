package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/yearspans/internal/vocab"
)

// ValidationIssue is one schema or pattern problem.
type ValidationIssue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// FileValidation holds the validation outcome of one vocabulary file.
type FileValidation struct {
	File     string            `json:"file"`
	Language string            `json:"language,omitempty"`
	Valid    bool              `json:"valid"`
	Errors   []ValidationIssue `json:"errors,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <vocabulary.yaml>...",
		Short: "Validate vocabulary files",
		Long: `Validate language vocabulary files against the vocabulary schema and
compile every pattern they define. All problems in a file are reported,
not just the first.

Exit codes:
  0 - Every file is valid
  1 - One or more files are invalid
  2 - Command error (unreadable file)`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, files []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(files))}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read vocabulary file", err).WithCode(ErrCodeInput)
		}
		formatter.VerboseLog("Validating %s", file)

		fv := validateVocabulary(file, data)
		if !fv.Valid {
			result.Valid = false
		}
		result.Files = append(result.Files, fv)
	}

	if opts.Format == "json" {
		return outputValidateJSON(cmd, result)
	}
	return outputValidateText(cmd, result)
}

func validateVocabulary(file string, data []byte) FileValidation {
	fv := FileValidation{File: file, Valid: true}

	errs := vocab.Validate(file, data)
	for _, e := range errs {
		fv.Valid = false
		if fv.Language == "" {
			fv.Language = e.Language
		}
		issue := ValidationIssue{Path: e.Path, Message: e.Message}
		if e.Pos.IsValid() {
			issue.Line = e.Pos.Line()
			issue.Column = e.Pos.Column()
		}
		fv.Errors = append(fv.Errors, issue)
	}
	if fv.Valid {
		if v, err := vocab.Parse(file, data); err == nil {
			fv.Language = v.Language
		}
	}
	return fv
}

func outputValidateJSON(cmd *cobra.Command, result ValidationResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}
	if !result.Valid {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeSchema,
			Message: "vocabulary validation failed",
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}
	if !result.Valid {
		return NewExitError(ExitFailure, "vocabulary validation failed").WithCode(ErrCodeSchema)
	}
	return nil
}

func outputValidateText(cmd *cobra.Command, result ValidationResult) error {
	w := cmd.OutOrStdout()
	invalid := 0
	for _, fv := range result.Files {
		if fv.Valid {
			fmt.Fprintf(w, "✓ %s (%s)\n", fv.File, fv.Language)
			continue
		}
		invalid++
		fmt.Fprintf(w, "✗ %s\n", fv.File)
		for _, issue := range fv.Errors {
			switch {
			case issue.Line > 0:
				fmt.Fprintf(w, "  line %d: %s\n", issue.Line, issue.Message)
			case issue.Path != "":
				fmt.Fprintf(w, "  %s: %s\n", issue.Path, issue.Message)
			default:
				fmt.Fprintf(w, "  %s\n", issue.Message)
			}
		}
	}
	if invalid > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d vocabulary file(s) invalid", invalid, len(result.Files))).WithCode(ErrCodeSchema)
	}
	return nil
}
