package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"go.trai.ch/rcpack/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <archive>",
		Short: "List the files an archive embeds with their symbols and sizes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := c.config()
			if err != nil {
				return err
			}
			entries, err := c.app.List(cmd.Context(), configPath, args[0])
			if err != nil {
				return err
			}
			renderList(cmd.OutOrStdout(), entries)
			return nil
		},
	}
}

func renderList(w io.Writer, entries []app.ListEntry) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Path", "Size", "Symbol"})

	var total uint64
	for _, entry := range entries {
		size := uint64(max(entry.Size, 0))
		total += size
		tw.AppendRow(table.Row{entry.Path, humanize.IBytes(size), entry.Symbol})
	}
	tw.AppendFooter(table.Row{fmt.Sprintf("%d files", len(entries)), humanize.IBytes(total), ""})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	tw.Render()
}
