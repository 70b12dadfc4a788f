package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clickforge/chquery"
	"github.com/clickforge/chquery/internal/harness"
)

// ScenarioIssue is one validation failure.
type ScenarioIssue struct {
	Scenario string `json:"scenario"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// ValidateResult holds the validate command output.
type ValidateResult struct {
	Valid  bool            `json:"valid"`
	Issues []ScenarioIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario-dir>",
		Short: "Validate query scenarios without emitting SQL",
		Long: `Validate CUE query scenarios.

Every scenario is compiled through the builder pipeline; failures are
collected rather than aborting, so one run reports all broken scenarios.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Output:    opts.Output,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scenarios, err := harness.LoadScenarios(dir)
	if err != nil {
		_ = formatter.Error("LOAD_FAILED", err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}
	formatter.VerboseLog("Loaded %d scenario(s) from %s", len(scenarios), dir)

	var issues []ScenarioIssue
	for _, s := range scenarios {
		formatter.VerboseLog("Validating scenario: %s", s.Name)
		if _, err := harness.Build(s); err != nil {
			code := "COMPILE_FAILED"
			var ve *chquery.ValidationError
			if errors.As(err, &ve) {
				code = string(ve.Code)
			}
			issues = append(issues, ScenarioIssue{
				Scenario: s.Name,
				Code:     code,
				Message:  err.Error(),
			})
		}
	}

	if len(issues) > 0 {
		return outputIssues(formatter, issues)
	}
	if formatter.Output == "json" {
		return formatter.Success(ValidateResult{Valid: true})
	}
	fmt.Fprintln(formatter.Writer, "✓ All scenarios valid")
	return nil
}

func outputIssues(formatter *OutputFormatter, issues []ScenarioIssue) error {
	if formatter.Output == "json" {
		_ = formatter.Error(issues[0].Code, issues[0].Message, ValidateResult{Valid: false, Issues: issues})
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d issue(s)", len(issues)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, issue := range issues {
		fmt.Fprintf(formatter.Writer, "%s\n  %s: %s\n\n", issue.Scenario, issue.Code, issue.Message)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d issue(s)", len(issues)))
}
