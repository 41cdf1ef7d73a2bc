package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/roach88/wotd/internal/dataset"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Strict bool
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <data-file>",
		Short: "Validate a word data file",
		Long: `Validate a word data file against the data schema and the integrity rules.

Errors: malformed JSON, schema violations (missing or empty fields, bad
dates, unknown difficulty), duplicate words, dates or ids.
Warnings: ids out of position, words without synonyms, dates out of
order, a stale metadata.totalWords, and a count other than 365.

Warnings do not fail validation unless --strict is set.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat warnings as failures")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	data, err := readDataFile(formatter, path)
	if err != nil {
		return err
	}

	report := dataset.Validate(filepath.Base(path), data)
	formatter.VerboseLog("Checked %d word(s) in %s", report.Words, path)

	failed := !report.OK() || (opts.Strict && report.Warnings > 0)
	if failed {
		return outputValidationErrors(formatter, report)
	}
	return outputValidateSuccess(formatter, report)
}

// readDataFile reads path, reporting a missing or unreadable file.
func readDataFile(formatter *OutputFormatter, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("file not found: %s", path), nil)
	}
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("failed to read %s", path), err)
	}
	return data, nil
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, report *dataset.Report) error {
	if formatter.Format == "json" {
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "✓ %s: %d words, %s\n", report.File, report.Words, plural(report.Warnings, "warning"))
	writeIssues(formatter, report)
	return nil
}

// outputValidationErrors outputs a failed report.
func outputValidationErrors(formatter *OutputFormatter, report *dataset.Report) error {
	failure := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %s and %s",
		plural(report.Errors, "error"), plural(report.Warnings, "warning")))

	if formatter.Format == "json" {
		first := report.Issues[0]
		if err := formatter.encode(CLIResponse{
			Status: "error",
			Data:   report,
			Error: &CLIError{
				Code:    ErrCodeInvalidData,
				Message: first.Error(),
			},
		}); err != nil {
			return err
		}
		// Validation failures = exit code 1
		return failure
	}

	fmt.Fprintf(formatter.Writer, "✗ %s: %s, %s\n", report.File,
		plural(report.Errors, "error"), plural(report.Warnings, "warning"))
	writeIssues(formatter, report)

	// Validation failures = exit code 1
	return failure
}

func writeIssues(formatter *OutputFormatter, report *dataset.Report) {
	for _, issue := range report.Issues {
		fmt.Fprintf(formatter.Writer, "  %s %s\n", issue.Severity, issue.Error())
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
