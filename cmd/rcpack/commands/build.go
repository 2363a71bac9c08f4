package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rcpack/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [archives...]",
		Short: "Sync manifests and emit sources for the given archives (default: all)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := c.config()
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")
			_, err = c.app.Build(cmd.Context(), configPath, args, app.BuildOptions{Force: force})
			return err
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Re-emit even when sources are up to date")
	return cmd
}

func (c *CLI) newManifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest [archives...]",
		Short: "Sync the manifest cache of the given archives without emitting",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := c.config()
			if err != nil {
				return err
			}
			_, err = c.app.Manifest(cmd.Context(), configPath, args)
			return err
		},
	}
}

func (c *CLI) newEmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emit [archives...]",
		Short: "Emit sources from the existing manifest caches",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := c.config()
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")
			_, err = c.app.Emit(cmd.Context(), configPath, args, app.BuildOptions{Force: force})
			return err
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Re-emit even when sources are up to date")
	return cmd
}
