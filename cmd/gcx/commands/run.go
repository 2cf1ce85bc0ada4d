package commands

import (
	"github.com/spf13/cobra"

	"github.com/skeinlabs/gcx/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the configured pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobs, _ := cmd.Flags().GetInt("jobs")
			stages, _ := cmd.Flags().GetStringSlice("stages")
			outputMode, _ := cmd.Flags().GetString("output-mode")
			ci, _ := cmd.Flags().GetBool("ci")

			// If --ci is set, override output-mode to "plain"
			if ci {
				outputMode = "plain"
			}

			return c.app.Run(cmd.Context(), app.RunOptions{
				Jobs:       jobs,
				Stages:     stages,
				OutputMode: outputMode,
			})
		},
	}
	cmd.Flags().IntP("jobs", "j", 0, "Number of cells to compute in parallel (0 = all CPUs)")
	cmd.Flags().StringSliceP("stages", "s", nil, "Pipeline stages to run (basis, operator, rank, validate, cohomology)")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, pretty, or plain")
	cmd.Flags().Bool("ci", false, "Use plain output mode (shorthand for --output-mode=plain)")
	return cmd
}
