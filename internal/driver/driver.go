// Package driver wires parser, validator, and formatter into small
// convenience entry points for callers (the CLI, tests, or an embedder)
// that just want "parse this file and tell me what's wrong with it"
// without assembling a FileSet and a Table by hand every time.
package driver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"zplforge/internal/ast"
	"zplforge/internal/diag"
	"zplforge/internal/format"
	"zplforge/internal/observ"
	"zplforge/internal/parser"
	"zplforge/internal/profile"
	"zplforge/internal/source"
	"zplforge/internal/specdata"
	"zplforge/internal/validator"
)

// DiagnoseStage picks how far a Diagnose run goes: parsing only, or parsing
// followed by the full three-pass validator.
type DiagnoseStage uint8

const (
	// DiagnoseStageParse runs only the lexer/parser, reporting parse errors
	// (unknown opcodes, missing terminators, stray content).
	DiagnoseStageParse DiagnoseStage = iota
	// DiagnoseStageValidate runs parsing plus Pass A/B/C validation.
	DiagnoseStageValidate
)

// DiagnoseOptions configures a single-file or multi-file diagnose run.
type DiagnoseOptions struct {
	Stage          DiagnoseStage
	Table          *specdata.Table
	Profile        *profile.Profile
	MaxDiagnostics int
}

// DiagnoseResult is the outcome of diagnosing one file.
type DiagnoseResult struct {
	Path    string
	FileID  source.FileID
	Doc     *ast.Document
	Bag     *diag.Bag
	Err     error
	Timings observ.Report
}

// Diagnose parses (and optionally validates) a single file already loaded
// into fs, returning the document and every diagnostic collected. Timings
// records the parse and (if run) validate phase durations for --timings.
func Diagnose(fs *source.FileSet, fileID source.FileID, opts DiagnoseOptions) DiagnoseResult {
	table := opts.Table
	if table == nil {
		table = specdata.Default()
	}
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 200
	}
	bag := diag.NewBag(maxDiag)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	file := fs.Get(fileID)
	timer := observ.NewTimer()

	parseIdx := timer.Begin("parse")
	doc := parser.Parse(file, table, rep)
	timer.End(parseIdx, "")

	if opts.Stage == DiagnoseStageValidate {
		validateIdx := timer.Begin("validate")
		validator.Validate(doc, validator.Options{Table: table, Profile: opts.Profile}, rep)
		timer.End(validateIdx, "")
	}

	bag.Sort()
	return DiagnoseResult{Path: file.Path, FileID: fileID, Doc: doc, Bag: bag, Timings: timer.Report()}
}

// DiagnoseFile loads path into a fresh FileSet and diagnoses it. Use
// Diagnose directly when the caller already manages a shared FileSet (e.g.
// a directory walk that wants consistent relative paths across files).
func DiagnoseFile(path string, opts DiagnoseOptions) (*source.FileSet, DiagnoseResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, DiagnoseResult{}, fmt.Errorf("driver: load %s: %w", path, err)
	}
	return fs, Diagnose(fs, id, opts), nil
}

// DiagnoseFiles runs Diagnose over every path concurrently, sharing one
// FileSet so relative-path rendering stays consistent across results. Order
// of the returned slice matches the order of paths.
func DiagnoseFiles(ctx context.Context, paths []string, opts DiagnoseOptions) (*source.FileSet, []DiagnoseResult, error) {
	fs := source.NewFileSet()
	ids := make([]source.FileID, len(paths))
	for i, p := range paths {
		id, err := fs.Load(p)
		if err != nil {
			return nil, nil, fmt.Errorf("driver: load %s: %w", p, err)
		}
		ids[i] = id
	}

	results := make([]DiagnoseResult, len(paths))
	g, _ := errgroup.WithContext(ctx)
	for i := range paths {
		i := i
		g.Go(func() error {
			results[i] = Diagnose(fs, ids[i], opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fs, results, err
	}
	return fs, results, nil
}

// FormatOptions configures a Format run over one or more files. The caller
// decides what to do with FormatResult.Changed (rewrite, report, or print to
// stdout) -- Format itself never touches the filesystem beyond reading.
type FormatOptions struct {
	Table  *specdata.Table
	Format format.Options
}

// FormatResult is the outcome of formatting one file.
type FormatResult struct {
	Path      string
	Formatted []byte
	Changed   bool
	Err       error
	Timings   observ.Report
}

// FormatPaths parses and re-serializes every path under opts.Format, one at
// a time (formatting is synchronous and cheap enough that it doesn't need
// the DiagnoseFiles concurrency treatment). Errors are per-file and never
// abort the rest of the batch.
func FormatPaths(_ context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	table := opts.Table
	if table == nil {
		table = specdata.Default()
	}
	results := make([]FormatResult, 0, len(paths))
	for _, p := range paths {
		fs := source.NewFileSet()
		id, err := fs.Load(p)
		if err != nil {
			results = append(results, FormatResult{Path: p, Err: fmt.Errorf("load: %w", err)})
			continue
		}
		file := fs.Get(id)
		timer := observ.NewTimer()

		parseIdx := timer.Begin("parse")
		doc := parser.Parse(file, table, diag.NopReporter{})
		timer.End(parseIdx, "")

		formatIdx := timer.Begin("format")
		out := []byte(format.Format(doc, opts.Format))
		timer.End(formatIdx, "")

		results = append(results, FormatResult{
			Path:      p,
			Formatted: out,
			Changed:   string(out) != string(file.Content),
			Timings:   timer.Report(),
		})
	}
	return results, nil
}
