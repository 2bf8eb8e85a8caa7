package main

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/carbocation/assayplot"
	"github.com/carbocation/assayplot/assayinput"
	"github.com/carbocation/assayplot/assaysummary"
	"github.com/carbocation/assayplot/assaytable"
	"github.com/spf13/cobra"
)

func newSummarizeCommand() *cobra.Command {
	var (
		normalizationRow string
		header           string
		asCSV            bool
	)

	cmd := &cobra.Command{
		Use:   "summarize <file>",
		Short: "Print per-item censoring and expression counts for one table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := assayinput.ParseHeaderMode(header)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var client *storage.Client
			if assayplot.IsGoogleStoragePath(args[0]) {
				if client, err = storage.NewClient(ctx); err != nil {
					return err
				}
				defer client.Close()
			}

			doc, err := assayinput.Load(ctx, args[0], client, mode)
			if err != nil {
				return err
			}

			table, err := doc.Table()
			if err != nil {
				return err
			}

			var normalized *assaytable.Table
			if normalizationRow != "" {
				normalized = assaytable.Normalize(table, normalizationRow, false)
			}

			rows := assaysummary.Summarize(table, normalized)
			if asCSV {
				return assaysummary.WriteCSV(cmd.OutOrStdout(), rows)
			}
			return assaysummary.Print(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().StringVar(&normalizationRow, "normalization-row", "", "Sample used to decide which items are normalizable")
	cmd.Flags().StringVar(&header, "header", assayinput.HeaderAuto.String(), "Option line handling: auto, options or plain")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Write CSV instead of a table")

	return cmd
}
