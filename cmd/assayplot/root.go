package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "assayplot",
		Short:         "Chart censored assay tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newPlotCommand())
	rootCmd.AddCommand(newSummarizeCommand())
	rootCmd.AddCommand(newParamsCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
