package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/peterh/liner"
	"github.com/takoeight0821/glint/driver"
	"github.com/takoeight0821/glint/postproc"
	"github.com/takoeight0821/glint/rules"
)

type options struct {
	input      string
	rules      string
	whitespace string
	tokens     bool
	comments   bool
	jobs       int
	color      bool
}

func main() {
	const (
		inputUsage = "input file or directory"
	)
	var opts options
	flag.StringVar(&opts.input, "input", "", inputUsage)
	flag.StringVar(&opts.input, "i", "", inputUsage+" (shorthand)")
	flag.StringVar(&opts.rules, "rules", "", "YAML rule set to lex with instead of the glint rules")
	flag.StringVar(&opts.whitespace, "whitespace", "", "override the whitespace mode: ignore, significant or indentation")
	flag.BoolVar(&opts.tokens, "tokens", false, "print the token sequence of every file")
	flag.BoolVar(&opts.comments, "comments", true, "keep comments in the token sequence")
	flag.IntVar(&opts.jobs, "j", 0, "number of files processed at once (0 for no limit)")
	flag.BoolVar(&opts.color, "color", true, "color diagnostics")

	flag.Parse()

	d, err := newDriver(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	paths := flag.Args()
	if opts.input != "" {
		paths = append([]string{opts.input}, paths...)
	}

	if len(paths) == 0 {
		err := RunPrompt(d, opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	failed, err := RunFiles(d, opts, paths)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if failed {
		os.Exit(1)
	}
}

func newDriver(opts options) (*driver.Driver, error) {
	set := rules.Default()
	if opts.rules != "" {
		loaded, err := rules.LoadFile(opts.rules)
		if err != nil {
			return nil, err
		}
		set = loaded
	}

	if opts.whitespace != "" {
		mode, err := rules.ParseWhitespace(opts.whitespace)
		if err != nil {
			return nil, err
		}
		set, err = set.Builder().Whitespace(mode).Build()
		if err != nil {
			return nil, err
		}
	}

	d := driver.New(set, postproc.Default())
	d.Jobs = opts.jobs
	if !opts.comments {
		d.AddPass(driver.DropComments)
	}

	return d, nil
}

var history = filepath.Join(xdg.DataHome, "glint", ".glint_history")

func RunPrompt(d *driver.Driver, opts options) error {
	line := liner.NewLiner()
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if f, err := os.Create(history); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(history); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	for {
		input, err := line.Prompt("> ")
		if err != nil {
			return err
		}
		line.AppendHistory(input)

		file := d.RunSource("<stdin>", input)
		fmt.Print(file.Tokens.Content())
		for _, m := range file.Macros {
			fmt.Println(m)
		}
		if err := (&driver.Result{Files: []*driver.FileResult{file}}).Render(os.Stderr, opts.color); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// RunFiles compiles every source under paths and reports whether any of
// them had errors. All diagnostics are rendered before returning.
func RunFiles(d *driver.Driver, opts options, paths []string) (bool, error) {
	sources, err := driver.ReadSources(paths...)
	if err != nil {
		return false, err
	}

	result, err := d.Compile(context.Background(), sources)
	if err != nil {
		return false, err
	}

	if opts.tokens {
		for _, f := range result.Files {
			fmt.Printf("# %s\n%s", f.Name, f.Tokens)
		}
	}
	for _, m := range result.Macros {
		fmt.Println(m)
	}

	if err := result.Render(os.Stderr, opts.color); err != nil {
		return false, err
	}

	return result.HasErrors(), nil
}
