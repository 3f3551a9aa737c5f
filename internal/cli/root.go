// Package cli provides the embeddable command line interface for a fact
// machine application.
//
// The CLI is a library, not a binary: transitions are Go functions, so an
// application registers its transition dictionary and fact registry in an
// App and mounts the resulting root command in its own main. Commands:
//
//	validate  load pipeline manifests and resolve every pipeline
//	plan      show a pipeline's steps and merged requires/produces
//	list      show the transition tree, optionally only what is runnable
//	run       seed facts, compose a pipeline, and execute it
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sems/internal/dictionary"
	"github.com/roach88/sems/internal/manifest"
)

// App bundles everything a CLI invocation operates on.
type App struct {
	// Name is the binary name shown in help output.
	Name string

	// Short and Long describe the application.
	Short string
	Long  string

	// Transitions is the application's named transition dictionary.
	Transitions *dictionary.TransitionDictionary

	// Facts maps stable names to the application's fact types.
	Facts *manifest.FactRegistry
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	ManifestDir string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for an application's CLI.
func NewRootCommand(app *App) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   app.Name,
		Short: app.Short,
		Long:  app.Long,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ManifestDir, "manifest", "pipelines", "directory of pipeline manifest CUE files")

	cmd.AddCommand(NewValidateCommand(app, opts))
	cmd.AddCommand(NewPlanCommand(app, opts))
	cmd.AddCommand(NewListCommand(app, opts))
	cmd.AddCommand(NewRunCommand(app, opts))

	return cmd
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
