// Package runner charts every assay table of a directory, one file at a time.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/carbocation/assayplot"
	"github.com/carbocation/assayplot/assayinput"
	"github.com/carbocation/assayplot/chartconfig"
	"github.com/carbocation/assayplot/render"
	"github.com/carbocation/pfx"
)

const (
	DefaultPattern      = "*.csv"
	DefaultSettingsFile = "defaultSettings.txt"
	DirectorySettings   = "Settings.txt"
	DefaultOutputDir    = "Charts"
)

// Options selects what a Runner reads and draws.
type Options struct {
	// SettingsPath is the shared settings file applied to every input. Empty
	// means no shared settings.
	SettingsPath string

	// Pattern is a doublestar glob, relative to the input directory.
	Pattern string

	Kinds      []render.Kind
	Normalized bool
	Split      bool
	HeaderMode assayinput.HeaderMode

	// Overrides are applied last, through the strict setter.
	Overrides chartconfig.Set

	// OutputDir replaces the savedir parameter when set.
	OutputDir string

	// Client reads gs:// inputs. It may be nil for local-only runs.
	Client *storage.Client

	// Now stamps output names. Defaults to time.Now.
	Now func() time.Time
}

// Runner holds the parameters shared by every file of a run.
type Runner struct {
	opts Options
	base chartconfig.Params
}

// Result counts the files of a directory run.
type Result struct {
	Processed int
	Failed    int
	Outputs   []string
}

// New loads the shared settings on top of the defaults. A malformed shared
// settings file is an error for the whole run.
func New(opts Options) (*Runner, error) {
	if opts.Pattern == "" {
		opts.Pattern = DefaultPattern
	}
	if len(opts.Kinds) == 0 {
		opts.Kinds = []render.Kind{render.BarChart}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	// Reject a bad --set before any file is touched.
	probe := chartconfig.Defaults()
	for _, key := range opts.Overrides.Keys() {
		if err := probe.Set(key, opts.Overrides[key]); err != nil {
			return nil, err
		}
	}

	base := chartconfig.Defaults()
	if opts.SettingsPath != "" {
		path, err := assayplot.ExpandHome(opts.SettingsPath)
		if err != nil {
			return nil, pfx.Err(err)
		}

		shared, err := chartconfig.LoadSettingsFile(path)
		if err != nil {
			return nil, pfx.Err(err)
		}

		var report chartconfig.Report
		base, report, err = chartconfig.Merge(base, shared, path)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}
		report.Log()
	}

	return &Runner{opts: opts, base: base}, nil
}

// Base returns the parameters every file starts from.
func (r *Runner) Base() chartconfig.Params {
	return r.base
}

// RunDirectory charts every file of dir matching the pattern, in sorted
// order. A file that fails is logged and counted; the others still run. Only
// problems with dir itself are returned as errors.
func (r *Runner) RunDirectory(ctx context.Context, dir string) (Result, error) {
	var result Result

	info, err := os.Stat(dir)
	if err != nil {
		return result, pfx.Err(fmt.Errorf("Can't locate input directory %s: %w", dir, err))
	}
	if !info.IsDir() {
		return result, pfx.Err(fmt.Errorf("%s is not a directory", dir))
	}

	matches, err := doublestar.Glob(os.DirFS(dir), r.opts.Pattern)
	if err != nil {
		return result, pfx.Err(fmt.Errorf("pattern %q: %w", r.opts.Pattern, err))
	}
	sort.Strings(matches)

	outDir, err := r.resolveOutputDir(dir, r.base)
	if err != nil {
		return result, err
	}

	for _, match := range matches {
		path := filepath.Join(dir, filepath.FromSlash(match))
		if fi, err := os.Stat(path); err != nil || fi.IsDir() {
			continue
		}
		if isOwnOutput(dir, outDir, path) {
			continue
		}

		log.Println("Plotting file", match)
		outputs, err := r.RunFile(ctx, path)
		if err != nil {
			log.Printf("Failed to plot %s: %v\n", path, err)
			result.Failed++
			continue
		}

		result.Processed++
		result.Outputs = append(result.Outputs, outputs...)
	}

	if len(matches) == 0 {
		log.Printf("No files in %s match %s\n", dir, r.opts.Pattern)
	}

	return result, nil
}

// RunFile charts one local or gs:// file and returns the paths it wrote.
func (r *Runner) RunFile(ctx context.Context, path string) ([]string, error) {
	params, err := r.fileParams(path)
	if err != nil {
		return nil, err
	}

	doc, err := assayinput.Load(ctx, path, r.opts.Client, r.opts.HeaderMode)
	if err != nil {
		return nil, err
	}

	if doc.Options != nil {
		var report chartconfig.Report
		params, report, err = chartconfig.Merge(params, doc.Options, "the option line of "+filepath.Base(path))
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: option line: %w", path, err))
		}
		report.Log()
	}

	for _, key := range r.opts.Overrides.Keys() {
		if err := params.Set(key, r.opts.Overrides[key]); err != nil {
			return nil, pfx.Err(err)
		}
	}

	table, err := doc.Table()
	if err != nil {
		return nil, err
	}

	outDir, err := r.outputDir(path, params)
	if err != nil {
		return nil, err
	}

	job := &fileJob{
		runner: r,
		params: params,
		stem:   doc.Stem,
		outDir: outDir,
		date:   r.opts.Now(),
	}

	if err := job.run(table); err != nil {
		return job.outputs, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return job.outputs, nil
}

// fileParams layers the settings file of path's directory onto the shared
// parameters. Google Storage inputs have no directory settings.
func (r *Runner) fileParams(path string) (chartconfig.Params, error) {
	if assayplot.IsGoogleStoragePath(path) {
		return r.base, nil
	}

	settingsPath := filepath.Join(filepath.Dir(path), DirectorySettings)
	specific, err := chartconfig.LoadSettingsFile(settingsPath)
	if err != nil {
		return r.base, err
	}
	if specific == nil {
		return r.base, nil
	}

	params, report, err := chartconfig.Merge(r.base, specific, DirectorySettings)
	if err != nil {
		return r.base, pfx.Err(fmt.Errorf("%s: %w", settingsPath, err))
	}
	report.Log()

	return params, nil
}

// outputDir resolves, and creates if needed, where the charts of path go.
func (r *Runner) outputDir(path string, params chartconfig.Params) (string, error) {
	inputDir := "."
	if !assayplot.IsGoogleStoragePath(path) {
		inputDir = filepath.Dir(path)
	}

	dir, err := r.resolveOutputDir(inputDir, params)
	if err != nil {
		return "", err
	}

	_, err = os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Creating output directory\n\t%s\n", dir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", pfx.Err(err)
		}
	} else if err != nil {
		return "", pfx.Err(err)
	}

	return dir, nil
}

// resolveOutputDir is the OutputDir option, else savedir relative to
// inputDir, else Charts beside the input.
func (r *Runner) resolveOutputDir(inputDir string, params chartconfig.Params) (string, error) {
	if r.opts.OutputDir != "" {
		return r.opts.OutputDir, nil
	}

	saveDir := params.SaveDir
	if saveDir == "" {
		saveDir = DefaultOutputDir
	}

	dir, err := assayplot.ExpandHome(saveDir)
	if err != nil {
		return "", pfx.Err(err)
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(inputDir, dir)
	}

	return dir, nil
}

// ownOutputSuffixes end the names of the non-image files a run writes.
var ownOutputSuffixes = []string{"-summary.csv", "-params.txt"}

// isOwnOutput reports whether path was written by an earlier run: it sits
// inside outDir (when that is not the input directory itself) or carries the
// name of a summary or params file.
func isOwnOutput(inputDir, outDir, path string) bool {
	name := filepath.Base(path)
	for _, suffix := range ownOutputSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}

	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return false
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil || absOut == absInput {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(absOut, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
