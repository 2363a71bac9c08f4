package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rcpack/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the build info store and, with --all, generated files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, err := c.config()
			if err != nil {
				return err
			}
			all, _ := cmd.Flags().GetBool("all")
			return c.app.Clean(cmd.Context(), configPath, app.CleanOptions{Outputs: all})
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Also remove manifest caches, sources, depfiles and headers")

	return cmd
}
