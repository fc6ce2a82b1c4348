package cli

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/yearspans/internal/span"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Input  string
	Output string
	Column string
}

// ConvertSummary describes a finished batch.
type ConvertSummary struct {
	Output     string `json:"output"`
	Rows       int    `json:"rows"`
	Resolved   int    `json:"resolved"`
	Unresolved int    `json:"unresolved"`
}

// convertHeader is the output CSV header.
var convertHeader = []string{"value", "minYear", "maxYear", "isoSpan", "duration"}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert -i FILE [-o FILE]",
		Short: "Resolve a file of expressions to CSV",
		Long: `Resolve every expression in a file and write a CSV of spans.

The input holds one expression per line, or is a CSV file when --column
names the column to read. Rows are resolved concurrently (--workers) and
written in input order with the header:

  value,minYear,maxYear,isoSpan,duration

Unresolved rows keep their value and leave the other fields empty, with
a duration of 0.

Examples:
  yearspans convert -i dates.txt -o spans.csv
  yearspans convert -i finds.csv --column period --lang de
  cat dates.txt | yearspans convert -i - --workers 8`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "input file, or - for stdin (required)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output CSV file (default stdout)")
	cmd.Flags().StringVar(&opts.Column, "column", "", "read expressions from this CSV column")
	cmd.Flags().Int("workers", 0, "number of concurrent resolvers (default from config)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runConvert(opts *ConvertOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	values, err := readInputs(opts, cmd)
	if err != nil {
		return err
	}
	formatter.VerboseLog("Read %d row(s) from %s", len(values), opts.Input)

	r, err := newResolver(opts.Config, opts.Logger)
	if err != nil {
		return err
	}
	defer r.Close()

	spans, err := resolveAll(cmd.Context(), values, opts.Config.Workers, r.engine.Resolve)
	if err != nil {
		return WrapExitError(ExitCommandError, "conversion interrupted", err)
	}

	var summary ConvertSummary
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create output file", err)
		}
		summary, err = writeSpansAndClose(f, values, spans)
		if err != nil {
			return err
		}
	} else {
		summary, err = writeSpans(cmd.OutOrStdout(), values, spans)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
	}
	summary.Output = opts.Output

	opts.Logger.Info("conversion finished",
		"rows", summary.Rows,
		"resolved", summary.Resolved,
		"unresolved", summary.Unresolved,
		"workers", opts.Config.Workers,
	)
	if opts.Format == "json" && opts.Output != "" {
		return formatter.Success(summary)
	}
	return nil
}

// readInputs returns the expressions to convert, in input order.
func readInputs(opts *ConvertOptions, cmd *cobra.Command) ([]string, error) {
	var in io.Reader
	if opts.Input == "-" {
		in = cmd.InOrStdin()
	} else {
		f, err := os.Open(opts.Input)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open input file", err).WithCode(ErrCodeInput)
		}
		defer f.Close()
		in = f
	}

	if opts.Column != "" {
		values, err := readColumn(in, opts.Column)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to read input CSV", err).WithCode(ErrCodeInput)
		}
		return values, nil
	}

	var values []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		values = append(values, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read input file", err).WithCode(ErrCodeInput)
	}
	return values, nil
}

// readColumn reads one named column of a CSV document with a header row.
// Short rows yield an empty value.
func readColumn(in io.Reader, column string) ([]string, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV, expected a header row")
	}
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, name := range header {
		if name == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found in header %v", column, header)
	}

	var values []string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return values, nil
		}
		if err != nil {
			return nil, err
		}
		value := ""
		if idx < len(record) {
			value = record[idx]
		}
		values = append(values, value)
	}
}

// resolveAll resolves values with at most workers concurrent calls. The
// result at index i belongs to values[i].
func resolveAll(ctx context.Context, values []string, workers int,
	resolve func(context.Context, string) (span.YearSpan, bool)) ([]span.YearSpan, error) {
	spans := make([]span.YearSpan, len(values))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, value := range values {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			spans[i], _ = resolve(ctx, value)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return spans, nil
}

// writeSpansAndClose writes the rows to wc and closes it. A failed close is
// a failed write.
func writeSpansAndClose(wc io.WriteCloser, values []string, spans []span.YearSpan) (ConvertSummary, error) {
	summary, err := writeSpans(wc, values, spans)
	closeErr := wc.Close()
	if err != nil {
		return summary, WrapExitError(ExitCommandError, "failed to write output", err)
	}
	if closeErr != nil {
		return summary, WrapExitError(ExitCommandError, "failed to close output file", closeErr)
	}
	return summary, nil
}

// writeSpans writes the CSV output. Years are canonical year strings.
func writeSpans(w io.Writer, values []string, spans []span.YearSpan) (ConvertSummary, error) {
	summary := ConvertSummary{Rows: len(values)}

	cw := csv.NewWriter(w)
	if err := cw.Write(convertHeader); err != nil {
		return summary, err
	}
	for i, value := range values {
		record := []string{value, "", "", "", "0"}
		s := spans[i]
		if lo, ok := s.Min(); ok {
			hi, _ := s.Max()
			record[1] = span.CanonicalYear(lo)
			record[2] = span.CanonicalYear(hi)
			record[3] = s.SpanString()
			record[4] = strconv.Itoa(s.Duration())
			summary.Resolved++
		} else {
			summary.Unresolved++
		}
		if err := cw.Write(record); err != nil {
			return summary, err
		}
	}
	cw.Flush()
	return summary, cw.Error()
}
