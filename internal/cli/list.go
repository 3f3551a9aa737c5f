package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/sems/internal/dictionary"
	"github.com/roach88/sems/internal/machine"
	"github.com/roach88/sems/internal/transition"
)

// ListedTransition is one dictionary entry in list output.
type ListedTransition struct {
	Path     string   `json:"path"`
	Requires []string `json:"requires"`
	Produces []string `json:"produces"`
}

// NewListCommand creates the list command: show the registered transition
// tree, or with --runnable only the subset runnable against a machine
// seeded from a fact file.
func NewListCommand(app *App, opts *RootOptions) *cobra.Command {
	var runnable bool
	var factsFile string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered transitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

			tree := app.Transitions.Tree()
			if runnable {
				m, err := seededMachine(app, factsFile)
				if err != nil {
					_ = out.Error("E_LIST", err.Error(), nil)
					return WrapExitError(ExitCommandError, "seeding machine failed", err)
				}
				tree = app.Transitions.Runnable(m)
			}

			var listed []ListedTransition
			dictionary.WalkTransitions(tree, func(path string, t *transition.TransitionMut) {
				listed = append(listed, ListedTransition{
					Path:     path,
					Requires: factNames(app.Facts, t.Requires()),
					Produces: factNames(app.Facts, t.Produces()),
				})
			})

			if opts.Format == "json" {
				if listed == nil {
					listed = []ListedTransition{}
				}
				return out.Success(listed)
			}
			for _, entry := range listed {
				fmt.Fprintf(out.Writer, "%s: %s -> %s\n", entry.Path, renderSet(entry.Requires), renderSet(entry.Produces))
			}
			if len(listed) == 0 {
				fmt.Fprintln(out.Writer, "(no transitions)")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&runnable, "runnable", false, "only list transitions runnable with the given facts")
	cmd.Flags().StringVar(&factsFile, "facts", "", "YAML fact file used to seed the machine")

	return cmd
}

// seededMachine builds a machine and seeds it from the optional fact file.
func seededMachine(app *App, factsFile string) (*machine.Machine, error) {
	m := machine.New()
	if factsFile == "" {
		return m, nil
	}
	data, err := os.ReadFile(factsFile)
	if err != nil {
		return nil, fmt.Errorf("read fact file: %w", err)
	}
	if err := app.Facts.Seed(m, data); err != nil {
		return nil, err
	}
	return m, nil
}
