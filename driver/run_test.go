package driver_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takoeight0821/glint/diag"
	"github.com/takoeight0821/glint/driver"
	"github.com/takoeight0821/glint/token"
)

func TestRunSourcePostProcesses(t *testing.T) {
	d := driver.NewDefault()

	file := d.RunSource("demo.gl", "let x = 0x1F; @inline \"a\\tb\"")
	require.False(t, file.Diagnostics.HasErrors())

	assert.Equal(t, []string{"", "let", "x", "=", "31", ";", "inline", "a\tb", ""}, file.Tokens.Texts())
	assert.Equal(t, token.START, file.Tokens[0].Kind)
	assert.Equal(t, token.END, file.Tokens[len(file.Tokens)-1].Kind)
}

func TestRunSourceKeepsGoingAfterErrors(t *testing.T) {
	d := driver.NewDefault()

	file := d.RunSource("bad.gl", "package demo\nlet s = \"open\n# #\nmacro ok { () -> { 1 } }\n")

	kinds := []diag.Kind{}
	for _, x := range file.Diagnostics.All() {
		kinds = append(kinds, x.Kind)
	}
	assert.Equal(t, []diag.Kind{diag.UnclosedString, diag.InvalidToken, diag.InvalidToken}, kinds)
	require.Len(t, file.Macros, 1)
	assert.Equal(t, "demo::ok", file.Macros[0].Name)
}

func TestAddPass(t *testing.T) {
	d := driver.NewDefault()
	d.AddPass(driver.DropComments)
	d.AddPass(driver.PassFunc(func(tokens token.Sequence, diags *diag.Diagnostics) token.Sequence {
		for _, t := range tokens {
			if t.Is(token.KEYWORD, "let") {
				diags.Report(diag.ExpectedFound, "let is not allowed here", t.Pos.Line, t.Pos.Column, t.Text, "")
			}
		}
		return tokens
	}))

	file := d.RunSource("pass.gl", "// note\nlet a = 1")

	assert.Equal(t, []string{"", "let", "a", "=", "1", ""}, file.Tokens.Texts())
	assert.Equal(t, 1, file.Diagnostics.Len())
}

func TestCompileKeepsInputOrder(t *testing.T) {
	var sources []driver.Source
	for i := range 8 {
		sources = append(sources, driver.Source{
			Name: fmt.Sprintf("m%d.gl", i),
			Text: fmt.Sprintf("package m%d\nmacro f { () -> { %d } }\n", i, i),
		})
	}
	sources[3].Text = "package m3\nmacro { }\n"

	d := driver.NewDefault()
	d.Jobs = 3
	result, err := d.Compile(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, result.Files, len(sources))

	for i, f := range result.Files {
		assert.Equal(t, sources[i].Name, f.Name)
	}

	var names []string
	for _, m := range result.Macros {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"m0::f", "m1::f", "m2::f", "m4::f", "m5::f", "m6::f", "m7::f"}, names)

	assert.True(t, result.HasErrors())
	assert.ErrorContains(t, result.Err(), "m3.gl:2:7: EXPECTED_FOUND")

	var out bytes.Buffer
	require.NoError(t, result.Render(&out, false))
	assert.Contains(t, out.String(), "m3.gl: error[EXPECTED_FOUND]: expected macro name found `{`")
}

func TestCompileWithoutErrors(t *testing.T) {
	result, err := driver.NewDefault().Compile(context.Background(), []driver.Source{{Name: "a.gl", Text: "let a = 1"}})
	require.NoError(t, err)

	assert.False(t, result.HasErrors())
	assert.NoError(t, result.Err())

	var out bytes.Buffer
	require.NoError(t, result.Render(&out, true))
	assert.Empty(t, out.String())
}

func TestCompileCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := driver.NewDefault().Compile(ctx, []driver.Source{{Name: "a.gl", Text: "let a = 1"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.gl"), []byte("b"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "a.gl"), []byte("a"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	single := filepath.Join(t.TempDir(), "single.src")
	require.NoError(t, os.WriteFile(single, []byte("s"), 0o600))

	sources, err := driver.ReadSources(dir, single)
	require.NoError(t, err)

	assert.Equal(t, []driver.Source{
		{Name: filepath.Join(dir, "b.gl"), Text: "b"},
		{Name: filepath.Join(dir, "sub", "a.gl"), Text: "a"},
		{Name: single, Text: "s"},
	}, sources)

	_, err = driver.ReadSources(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
