package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ndtool/internal/harness"
)

// SuiteResult holds the result of a single case file.
type SuiteResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Cases  int      `json:"cases"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}

// CheckResult holds the overall check result.
type CheckResult struct {
	Suites []SuiteResult `json:"suites"`
	Passed int           `json:"passed"`
	Failed int           `json:"failed"`
	Total  int           `json:"total"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <cases.yaml|dir>",
		Short: "Run YAML case files against the array operations",
		Long: `Run case files: each case names an op (intersect or add), two
operands and the expected result, dtype, shape or error code.

Exit codes:
  0 - All cases passed
  1 - One or more cases failed
  2 - Command error (missing or malformed case file)

Examples:
  ndtool check testdata/cases
  ndtool check testdata/cases/scenarios.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	suites, err := harness.LoadSuites(path)
	if err != nil {
		_ = formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: ErrCodeLoadFailed, Err: err, Reported: true}
	}

	h := harness.New(opts.log())
	result := CheckResult{
		Suites: make([]SuiteResult, 0, len(suites)),
		Total:  len(suites),
	}

	for _, suite := range suites {
		formatter.VerboseLog("Running %s (%d cases)", suite.Name, len(suite.Cases))

		run, err := h.Run(cmd.Context(), suite)
		if err != nil {
			return WrapExitError(ExitFailure, "check interrupted", err)
		}

		sr := SuiteResult{
			Name:   suite.Name,
			Pass:   run.Pass(),
			Cases:  len(run.Cases),
			Failed: run.Failed(),
		}
		for _, c := range run.Cases {
			sr.Errors = append(sr.Errors, c.Failures...)
		}
		result.Suites = append(result.Suites, sr)

		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		outputCheckText(formatter, result)
	}

	if result.Failed > 0 {
		return &ExitError{
			Code:     ExitFailure,
			Message:  fmt.Sprintf("%d of %d case file(s) failed", result.Failed, result.Total),
			Reported: true,
		}
	}
	return nil
}

func outputCheckText(f *OutputFormatter, result CheckResult) {
	w := f.Writer
	for _, s := range result.Suites {
		if s.Pass {
			fmt.Fprintf(w, "✓ %s (%d cases)\n", s.Name, s.Cases)
			continue
		}
		fmt.Fprintf(w, "✗ %s (%d of %d cases failed)\n", s.Name, s.Failed, s.Cases)
		for _, e := range s.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
	fmt.Fprintf(w, "\n%d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
}
