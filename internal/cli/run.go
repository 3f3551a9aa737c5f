package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sems/internal/machine"
	"github.com/roach88/sems/internal/manifest"
)

// RunResult is the outcome of executing one pipeline: the facts that
// survive in the store after the composite transition ran.
type RunResult struct {
	Pipeline string       `json:"pipeline"`
	Facts    []FactReport `json:"facts"`
}

// FactReport is one surviving fact, rendered for display.
type FactReport struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewRunCommand creates the run command: seed a machine from a fact file,
// resolve the named pipeline, and execute it.
func NewRunCommand(app *App, opts *RootOptions) *cobra.Command {
	var factsFile string

	cmd := &cobra.Command{
		Use:   "run <pipeline>",
		Short: "Execute a pipeline against a freshly seeded machine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

			m, errs := loadManifest(opts)
			if m == nil {
				reportErrors(out, "E_RUN", errs)
				return NewExitError(ExitCommandError, "manifest load failed")
			}

			p, ok := m.Pipeline(args[0])
			if !ok {
				_ = out.Error("E_RUN", fmt.Sprintf("no pipeline named %q", args[0]), nil)
				return NewExitError(ExitFailure, "unknown pipeline")
			}

			t, err := manifest.ResolvePipeline(p, app.Transitions)
			if err != nil {
				_ = out.Error("E_RUN", err.Error(), nil)
				return NewExitError(ExitFailure, "pipeline resolution failed")
			}

			mach, err := seededMachine(app, factsFile)
			if err != nil {
				_ = out.Error("E_RUN", err.Error(), nil)
				return WrapExitError(ExitCommandError, "seeding machine failed", err)
			}

			if err := mach.Run(t); err != nil {
				var missing *machine.MissingRequirementError
				if errors.As(err, &missing) {
					_ = out.Error("E_RUN", err.Error(), factNames(app.Facts, missing.Missing))
				} else {
					_ = out.Error("E_RUN", err.Error(), nil)
				}
				return WrapExitError(ExitFailure, "pipeline execution failed", err)
			}

			result := RunResult{Pipeline: p.Name}
			for _, id := range mach.FactIDs() {
				v, _ := mach.PeekFact(id)
				result.Facts = append(result.Facts, FactReport{
					Name:  app.Facts.Name(id),
					Value: fmt.Sprintf("%+v", v),
				})
			}

			if opts.Format == "json" {
				return out.Success(result)
			}
			fmt.Fprintf(out.Writer, "pipeline %s ran\n", result.Pipeline)
			if len(result.Facts) == 0 {
				fmt.Fprintln(out.Writer, "no facts remain")
				return nil
			}
			for _, f := range result.Facts {
				fmt.Fprintf(out.Writer, "  %s = %s\n", f.Name, f.Value)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&factsFile, "facts", "", "YAML fact file used to seed the machine")

	return cmd
}
