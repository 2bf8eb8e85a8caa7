package main

import (
	"fmt"

	"github.com/carbocation/assayplot/chartconfig"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newParamsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "List every charting parameter with its default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"Parameter", "Type", "Default", "Description"})
			for _, p := range chartconfig.Describe() {
				tw.AppendRow(table.Row{p.Key, p.Type, p.Default, p.Description})
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
			return err
		},
	}
}
