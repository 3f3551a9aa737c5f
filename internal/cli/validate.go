package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sems/internal/manifest"
)

// NewValidateCommand creates the validate command: load every pipeline
// manifest and resolve every pipeline against the dictionary, reporting all
// problems at once.
func NewValidateCommand(app *App, opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate pipeline manifests against the registered transitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

			m, errs := loadManifest(opts)
			if m == nil {
				reportErrors(out, "E_VALIDATE", errs)
				return NewExitError(ExitCommandError, "manifest load failed")
			}

			_, resolveErrs := m.Resolve(app.Transitions)
			errs = append(errs, resolveErrs...)

			if len(errs) > 0 {
				reportErrors(out, "E_VALIDATE", errs)
				return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(errs)))
			}

			return out.Success(fmt.Sprintf("ok: %d pipeline(s) valid", len(m.Pipelines)))
		},
	}
}

// loadManifest loads the manifest directory in collect-all mode.
// A nil manifest means the directory itself could not be loaded.
func loadManifest(opts *RootOptions) (*manifest.Manifest, []error) {
	return manifest.Load(opts.ManifestDir, manifest.LoadModeCollectAll)
}

// reportErrors renders a list of errors in the configured format.
func reportErrors(out *OutputFormatter, code string, errs []error) {
	if out.Format == "json" {
		messages := make([]string, len(errs))
		for i, err := range errs {
			messages[i] = err.Error()
		}
		_ = out.Error(code, fmt.Sprintf("%d error(s)", len(errs)), messages)
		return
	}
	for _, err := range errs {
		_ = out.Error(code, err.Error(), nil)
	}
}
