package commands

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.trai.ch/rcpack/internal/app"
	"go.trai.ch/rcpack/internal/tui"
	"go.trai.ch/rcpack/internal/ui/output"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [archives...]",
		Short: "Build, then rebuild archives whenever their resources change",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := c.config()
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")
			window, _ := cmd.Flags().GetDuration("debounce")
			dashboard, _ := cmd.Flags().GetBool("tui")
			opts := app.WatchOptions{
				Force:  force,
				Window: window,
			}
			if dashboard && c.progress != nil && isTerminal(cmd) {
				return c.watchWithDashboard(cmd, configPath, args, opts)
			}
			return c.app.Watch(cmd.Context(), configPath, args, opts)
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Re-emit every archive on the initial build")
	cmd.Flags().Duration("debounce", 0, "Quiet period before a batch of changes triggers a rebuild (default 50ms)")
	cmd.Flags().Bool("tui", false, "Show live stage progress (ignored when stdout is not a terminal)")
	return cmd
}

// watchWithDashboard runs Watch while a Bubble Tea program renders its stages.
// Log output is printed above the dashboard until the program exits.
func (c *CLI) watchWithDashboard(cmd *cobra.Command, configPath string, names []string, opts app.WatchOptions) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	c.progress.Open()
	program := tea.NewProgram(
		tui.NewModel(c.progress, "rcpack watch"),
		tea.WithContext(ctx),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithoutSignalHandler(),
	)

	if r, ok := c.output.(outputRedirector); ok {
		r.SetOutput(tui.NewLogWriter(program))
		defer r.SetOutput(cmd.ErrOrStderr())
	}

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- c.app.Watch(ctx, configPath, names, opts)
		c.progress.Stop()
	}()

	_, runErr := program.Run()
	cancel()
	if err := <-watchErr; err != nil {
		return err
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return runErr
	}
	return nil
}

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(interface{ Fd() uintptr })
	return ok && output.IsTerminal(f.Fd())
}
