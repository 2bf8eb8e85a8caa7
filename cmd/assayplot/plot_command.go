package main

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/storage"
	"github.com/carbocation/assayplot"
	"github.com/carbocation/assayplot/assayinput"
	"github.com/carbocation/assayplot/compileinfo"
	"github.com/carbocation/assayplot/render"
	"github.com/carbocation/assayplot/runner"
	"github.com/spf13/cobra"
)

func newPlotCommand() *cobra.Command {
	var (
		settings   string
		pattern    string
		types      []string
		normalized bool
		split      bool
		header     string
		sets       []string
		output     string
		file       string
	)

	cmd := &cobra.Command{
		Use:   "plot [dir]",
		Short: "Chart every matching assay table in a directory",
		Long: `Chart every assay table in dir (default: the current directory) that
matches --pattern. Parameters come from the defaults, the --settings file,
the directory's Settings.txt, each file's option line and finally --set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compileinfo.Fprint(cmd.ErrOrStderr())

			kinds, err := parseKinds(types)
			if err != nil {
				return err
			}

			mode, err := assayinput.ParseHeaderMode(header)
			if err != nil {
				return err
			}

			overrides, err := parseOverrides(sets)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			opts := runner.Options{
				SettingsPath: settings,
				Pattern:      pattern,
				Kinds:        kinds,
				Normalized:   normalized,
				Split:        split,
				HeaderMode:   mode,
				Overrides:    overrides,
				OutputDir:    output,
			}

			if assayplot.IsGoogleStoragePath(file) {
				client, err := storage.NewClient(ctx)
				if err != nil {
					return err
				}
				defer client.Close()
				opts.Client = client
			}

			r, err := runner.New(opts)
			if err != nil {
				return err
			}

			if file != "" {
				outputs, err := r.RunFile(ctx, file)
				if err != nil {
					return err
				}
				log.Printf("Wrote %d file(s)\n", len(outputs))
				return nil
			}

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if dir, err = assayplot.ExpandHome(dir); err != nil {
				return err
			}

			result, err := r.RunDirectory(ctx, dir)
			if err != nil {
				return err
			}

			log.Printf("Plotted %d file(s), wrote %d output(s), %d file(s) failed\n", result.Processed, len(result.Outputs), result.Failed)
			if result.Failed > 0 {
				return fmt.Errorf("%d of %d files could not be plotted", result.Failed, result.Failed+result.Processed)
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&settings, "settings", runner.DefaultSettingsFile, "Shared settings file applied to every input")
	flags.StringVar(&pattern, "pattern", runner.DefaultPattern, "Glob (doublestar syntax) selecting the input files")
	flags.StringSliceVar(&types, "type", []string{render.BarChart.String()}, "Chart type(s): barchart, heatmap")
	flags.BoolVar(&normalized, "normalized", false, "Also chart each table normalized by normalization_row")
	flags.BoolVar(&split, "split", false, "Split each table into charts of at most max_columns_per_plot items")
	flags.StringVar(&header, "header", assayinput.HeaderAuto.String(), "Option line handling: auto, options or plain")
	flags.StringArrayVar(&sets, "set", nil, "Override a parameter, as key=value (repeatable)")
	flags.StringVar(&output, "output", "", "Output directory, replacing savedir")
	flags.StringVar(&file, "file", "", "Chart a single local or gs:// file instead of a directory")

	return cmd
}
