package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clickforge/chquery"
	"github.com/clickforge/chquery/internal/harness"
)

// CompiledScenario is one scenario's compilation output.
type CompiledScenario struct {
	Name     string         `json:"name"`
	SQL      string         `json:"sql"`
	Format   string         `json:"format,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
}

// CompileResult holds the full compile command output.
type CompileResult struct {
	Scenarios []CompiledScenario `json:"scenarios"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <scenario-dir>",
		Short: "Compile query scenarios to SQL text",
		Long: `Compile CUE query scenarios into final SQL text.

Every scenario in the directory is lowered through the builder pipeline;
the first failing scenario aborts compilation.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCompile(opts *RootOptions, dir string, cmd *cobra.Command) error {
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

	result := CompileResult{}
	for _, s := range scenarios {
		q, err := harness.Build(s)
		if err != nil {
			code := "COMPILE_FAILED"
			var ve *chquery.ValidationError
			if errors.As(err, &ve) {
				code = string(ve.Code)
			}
			_ = formatter.Error(code, fmt.Sprintf("scenario %s: %v", s.Name, err), nil)
			return NewExitError(ExitFailure, fmt.Sprintf("compiling scenario %s", s.Name))
		}
		result.Scenarios = append(result.Scenarios, CompiledScenario{
			Name:     s.Name,
			SQL:      q.SQL,
			Format:   q.Format,
			Settings: q.Settings,
		})
	}

	if formatter.Output == "json" {
		return formatter.Success(result)
	}
	for _, cs := range result.Scenarios {
		fmt.Fprintf(formatter.Writer, "-- %s\n%s\n", cs.Name, cs.SQL)
	}
	return nil
}
