package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/takoeight0821/glint/diag"
	"github.com/takoeight0821/glint/lexer"
	"github.com/takoeight0821/glint/macro"
	"github.com/takoeight0821/glint/postproc"
	"github.com/takoeight0821/glint/rules"
	"github.com/takoeight0821/glint/token"
	"github.com/takoeight0821/glint/utils"
	"golang.org/x/sync/errgroup"
)

// Pass rewrites a post-processed token sequence before macros are parsed.
// Problems go to diags; a pass never aborts the file.
type Pass interface {
	Run(tokens token.Sequence, diags *diag.Diagnostics) token.Sequence
}

type PassFunc func(token.Sequence, *diag.Diagnostics) token.Sequence

func (f PassFunc) Run(tokens token.Sequence, diags *diag.Diagnostics) token.Sequence {
	return f(tokens, diags)
}

// DropComments removes COMMENT tokens.
var DropComments = PassFunc(func(tokens token.Sequence, _ *diag.Diagnostics) token.Sequence {
	kept := make(token.Sequence, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != token.COMMENT {
			kept = append(kept, t)
		}
	}
	return kept
})

type Source struct {
	Name string
	Text string
}

// FileResult is everything produced for one source file.
type FileResult struct {
	Name        string
	Tokens      token.Sequence
	Macros      []*macro.Macro
	Diagnostics *diag.Diagnostics
}

// Result holds the per-file results in input order and every macro
// defined across them.
type Result struct {
	Files  []*FileResult
	Macros []*macro.Macro
}

func (r *Result) HasErrors() bool {
	for _, f := range r.Files {
		if f.Diagnostics.HasErrors() {
			return true
		}
	}
	return false
}

// Err joins the diagnostics of every file, or returns nil.
func (r *Result) Err() error {
	var errs []error
	for _, f := range r.Files {
		errs = append(errs, f.Diagnostics.Err())
	}
	return errors.Join(errs...)
}

// Render writes the diagnostics of every file in input order.
func (r *Result) Render(w io.Writer, color bool) error {
	for _, f := range r.Files {
		render := f.Diagnostics.RenderPlain
		if color {
			render = f.Diagnostics.Render
		}
		if err := render(w); err != nil {
			return fmt.Errorf("render %s: %w", f.Name, err)
		}
	}
	return nil
}

// Driver runs the front end over source files. The rule set and pipeline
// are shared read-only by every file.
type Driver struct {
	rules    *rules.Set
	pipeline *postproc.Pipeline
	passes   []Pass

	// Jobs bounds how many files are processed at once. Zero or less means
	// no bound.
	Jobs int
}

func New(set *rules.Set, pipeline *postproc.Pipeline) *Driver {
	return &Driver{rules: set, pipeline: pipeline}
}

// NewDefault uses the glint rule set and its post-processing pipeline.
func NewDefault() *Driver {
	return New(rules.Default(), postproc.Default())
}

// AddPass adds a pass to the end of the pass list.
func (d *Driver) AddPass(pass Pass) {
	d.passes = append(d.passes, pass)
}

// RunSource lexes, post-processes and parses the macros of one source.
// Diagnostics are collected, never returned as an error.
func (d *Driver) RunSource(name, text string) *FileResult {
	diags := diag.New(name, text)

	tokens := lexer.Lex(text, d.rules, diags)
	tokens = d.pipeline.Run(tokens)
	for _, pass := range d.passes {
		tokens = pass.Run(tokens, diags)
	}

	return &FileResult{
		Name:        name,
		Tokens:      tokens,
		Macros:      macro.Parse(tokens, diags),
		Diagnostics: diags,
	}
}

// Compile processes every source, concurrently up to Jobs at a time.
// A file with errors never stops the others; the only error returned is
// the cancellation of ctx.
func (d *Driver) Compile(ctx context.Context, sources []Source) (*Result, error) {
	files := make([]*FileResult, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	if d.Jobs > 0 {
		g.SetLimit(d.Jobs)
	}
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files[i] = d.RunSource(src.Name, src.Text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	result := &Result{Files: files}
	for _, f := range files {
		result.Macros = append(result.Macros, f.Macros...)
	}

	return result, nil
}

// ReadSources loads every glint source under the given paths. Directories
// are searched recursively; files are taken as they are.
func ReadSources(paths ...string) ([]Source, error) {
	var sources []Source
	for _, path := range paths {
		files, err := utils.FindSourceFiles(path)
		if err != nil {
			return nil, fmt.Errorf("find sources: %w", err)
		}
		for _, file := range files {
			bytes, err := os.ReadFile(file)
			if err != nil {
				return nil, err
			}
			sources = append(sources, Source{Name: file, Text: string(bytes)})
		}
	}

	return sources, nil
}
