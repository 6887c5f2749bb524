package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/redo/internal/app"
	"go.trai.ch/redo/internal/ui/output"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [dirs...]",
		Short: "Remove scratch files left behind by interrupted builds",
		Long: "Remove scratch files left behind by interrupted builds.\n" +
			"Do not run it while builds are in progress.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd)
			if err != nil {
				return err
			}
			state, _ := cmd.Flags().GetBool("state")

			removed, err := c.app.Clean(cmd.Context(), args, app.CleanOptions{Options: opts, State: state})
			printer := output.NewPrinter(cmd.OutOrStdout())
			for _, path := range removed {
				if rel, relErr := filepath.Rel(opts.WorkDir, path); relErr == nil {
					path = rel
				}
				_ = printer.Removed(path)
			}
			return err
		},
	}

	cmd.Flags().Bool("state", false, "Also remove build records and lock files")

	return cmd
}
