package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sems/internal/fact"
	"github.com/roach88/sems/internal/manifest"
)

// PipelinePlan is the resolved shape of one pipeline: its steps and the
// merged requirement/production sets of the whole composition.
type PipelinePlan struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Steps       []string `json:"steps"`
	Requires    []string `json:"requires"`
	Produces    []string `json:"produces"`
}

// NewPlanCommand creates the plan command: resolve pipelines and show what
// each one consumes and emits, without executing anything.
func NewPlanCommand(app *App, opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plan [pipeline]",
		Short: "Show pipeline steps and their merged requires/produces",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

			m, errs := loadManifest(opts)
			if m == nil {
				reportErrors(out, "E_PLAN", errs)
				return NewExitError(ExitCommandError, "manifest load failed")
			}

			pipelines := m.Pipelines
			if len(args) == 1 {
				p, ok := m.Pipeline(args[0])
				if !ok {
					_ = out.Error("E_PLAN", fmt.Sprintf("no pipeline named %q", args[0]), nil)
					return NewExitError(ExitFailure, "unknown pipeline")
				}
				pipelines = []manifest.Pipeline{*p}
			}

			var plans []PipelinePlan
			for i := range pipelines {
				p := &pipelines[i]
				t, err := manifest.ResolvePipeline(p, app.Transitions)
				if err != nil {
					_ = out.Error("E_PLAN", err.Error(), nil)
					return NewExitError(ExitFailure, "pipeline resolution failed")
				}
				plans = append(plans, PipelinePlan{
					Name:        p.Name,
					Description: p.Description,
					Steps:       p.Steps,
					Requires:    factNames(app.Facts, t.Requires()),
					Produces:    factNames(app.Facts, t.Produces()),
				})
			}

			if opts.Format == "json" {
				return out.Success(plans)
			}
			renderPlans(out, plans)
			return nil
		},
	}
}

// factNames renders fact identities through the registry, so output shows
// registered names instead of Go type names where possible.
func factNames(reg *manifest.FactRegistry, ids []fact.ID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = reg.Name(id)
	}
	return names
}

func renderPlans(out *OutputFormatter, plans []PipelinePlan) {
	for i, plan := range plans {
		if i > 0 {
			fmt.Fprintln(out.Writer)
		}
		fmt.Fprintf(out.Writer, "pipeline %s\n", plan.Name)
		if plan.Description != "" {
			fmt.Fprintf(out.Writer, "  %s\n", plan.Description)
		}
		for _, step := range plan.Steps {
			fmt.Fprintf(out.Writer, "  step %s\n", step)
		}
		fmt.Fprintf(out.Writer, "  requires: %s\n", renderSet(plan.Requires))
		fmt.Fprintf(out.Writer, "  produces: %s\n", renderSet(plan.Produces))
	}
}

func renderSet(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
