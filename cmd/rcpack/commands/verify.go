package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.trai.ch/rcpack/internal/core/domain"
	"go.trai.ch/rcpack/internal/ui/style"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <archive>",
		Short: "Decode the generated source and compare it with the resource tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := c.config()
			if err != nil {
				return err
			}
			report, err := c.app.Verify(cmd.Context(), configPath, args[0])
			if report != nil {
				renderReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}
}

func renderReport(w io.Writer, report *domain.VerifyReport) {
	if report.OK() {
		_, _ = fmt.Fprintf(w, "%s %s: %d files match\n", style.Success.Render(style.Check), report.Archive, report.Files)
		return
	}

	_, _ = fmt.Fprintf(w, "%s %s: %d of %d files out of date\n",
		style.Failure.Render(style.Cross), report.Archive, len(report.Mismatches), report.Files)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Path", "Problem"})
	for _, m := range report.Mismatches {
		tw.AppendRow(table.Row{m.Path, string(m.Reason)})
	}
	tw.Render()
}
