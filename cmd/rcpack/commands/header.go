package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newHeaderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "header <archive>",
		Short: "Write the support header declaring an archive's tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := c.config()
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("output")
			_, err = c.app.Header(cmd.Context(), configPath, args[0], out)
			return err
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write the header to this path instead of the configured one")
	return cmd
}

func (c *CLI) newDepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deps <archive>",
		Short: "Print the files an archive's generated source depends on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := c.config()
			if err != nil {
				return err
			}
			deps, err := c.app.Deps(cmd.Context(), configPath, args[0])
			if err != nil {
				return err
			}
			for _, dep := range deps {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), dep)
			}
			return nil
		},
	}
}
