package main

import (
	"github.com/carbocation/assayplot/compileinfo"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			compileinfo.Fprint(cmd.OutOrStdout())
		},
	}
}
