package macro_test

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/takoeight0821/glint/diag"
	"github.com/takoeight0821/glint/lexer"
	"github.com/takoeight0821/glint/macro"
	"github.com/takoeight0821/glint/rules"
	"github.com/takoeight0821/glint/token"
	"github.com/takoeight0821/glint/utils"
)

func parse(file, source string) ([]*macro.Macro, *diag.Diagnostics) {
	diags := diag.New(file, source)
	tokens := lexer.Lex(source, rules.Default(), diags)

	return macro.Parse(tokens, diags), diags
}

func summary(diags *diag.Diagnostics) string {
	var b strings.Builder
	for _, d := range diags.All() {
		fmt.Fprintf(&b, "%s %d:%d\n", d.Kind, d.Line, d.Column)
	}

	return b.String()
}

func render(macros []*macro.Macro) string {
	var b strings.Builder
	for _, m := range macros {
		b.WriteString(m.String())
		b.WriteString("\n")
	}

	return b.String()
}

func TestParseTestData(t *testing.T) {
	t.Parallel()

	s, err := os.ReadFile("../testdata/macros.yaml")
	if err != nil {
		t.Fatalf("failed to read test data: %v", err)
	}

	for _, testcase := range utils.ReadTestData(s) {
		testcase := testcase
		t.Run(testcase.Label, func(t *testing.T) {
			t.Parallel()

			macros, diags := parse("test.gl", testcase.Input)

			if diff := cmp.Diff(testcase.Expected["macro"], render(macros)); diff != "" {
				t.Errorf("macros mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(testcase.Expected["diagnostics"], summary(diags)); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseStructure(t *testing.T) {
	t.Parallel()

	macros, diags := parse("demo.gl", "package demo\nmacro sum { (type $a, $($b)+) -> { $a + sum!($($b),+) } }\n")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Err())
	}

	want := macro.Pattern{
		macro.Variable{Name: "$a", Kind: macro.Type},
		macro.Literal{Text: ","},
		macro.Repetition{
			Pattern:    macro.Pattern{macro.Variable{Name: "$b", Kind: macro.Expression}},
			Quantifier: macro.OneOrMore,
			Separator:  ",",
		},
	}

	if len(macros) != 1 || len(macros[0].Arms) != 1 {
		t.Fatalf("expected one macro with one arm, got %v", macros)
	}
	if macros[0].Name != "demo::sum" {
		t.Errorf("expected name demo::sum, got %s", macros[0].Name)
	}
	if diff := cmp.Diff(want, macros[0].Arms[0].Pattern); diff != "" {
		t.Errorf("pattern mismatch (-want +got):\n%s", diff)
	}
}

func TestArmTokens(t *testing.T) {
	t.Parallel()

	macros, diags := parse("demo.gl", "package demo\nmacro id {\n  ($x) -> { $x }\n}\n")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Err())
	}

	arm := macros[0].Arms[0]
	want := token.Sequence{
		{Kind: token.START, Pos: token.Pos{Offset: 34, Line: 3, Column: 11}},
		{Kind: token.IDENTIFIER, Sub: token.Variable, Text: "$x", Pos: token.Pos{Offset: 36, Line: 3, Column: 13}},
		{Kind: token.END, Pos: token.Pos{Offset: 39, Line: 3, Column: 16}},
	}

	if diff := cmp.Diff(want, arm.Tokens()); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}

	// The framed body is itself parseable as a file.
	if got := macro.Parse(arm.Tokens(), diag.New("body.gl", "")); len(got) != 0 {
		t.Errorf("expected no macros in a plain body, got %v", got)
	}
}

func TestBodyKeepsNewlines(t *testing.T) {
	t.Parallel()

	significant := rules.Default().Builder().Whitespace(rules.Significant).MustBuild()

	source := "package demo\n\nmacro lines {\n  ($a)\n  ->\n  {\n    $a\n    $a\n  }\n}\n"
	diags := diag.New("lines.gl", source)
	macros := macro.Parse(lexer.Lex(source, significant, diags), diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Err())
	}

	want := []string{"\n", "$a", "\n", "$a", "\n"}
	if diff := cmp.Diff(want, macros[0].Arms[0].Body.Texts()); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAll(t *testing.T) {
	t.Parallel()

	sources := []struct{ file, source string }{
		{"a.gl", "package a\nmacro one { () -> { 1 } }\n"},
		{"b.gl", "package b\nmacro { broken\n"},
		{"c.gl", "macro three { () -> { 3 } }\n"},
	}

	units := make([]macro.Unit, len(sources))
	for i, s := range sources {
		diags := diag.New(s.file, s.source)
		units[i] = macro.Unit{Tokens: lexer.Lex(s.source, rules.Default(), diags), Diagnostics: diags}
	}

	macros := macro.ParseAll(units)

	var names []string
	for _, m := range macros {
		names = append(names, m.Name)
	}
	if diff := cmp.Diff([]string{"a::one", "c::three"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	if units[0].Diagnostics.HasErrors() {
		t.Errorf("a.gl: unexpected diagnostics: %v", units[0].Diagnostics.Err())
	}
	if got := summary(units[1].Diagnostics); got != "EXPECTED_FOUND 2:7\n" {
		t.Errorf("b.gl: unexpected diagnostics %q", got)
	}
	if got := summary(units[2].Diagnostics); got != "MISSING_PACKAGE 1:1\n" {
		t.Errorf("c.gl: unexpected diagnostics %q", got)
	}
}

func TestParseWithoutSentinels(t *testing.T) {
	t.Parallel()

	source := "package demo\nmacro m { ($($a)- $b) -> { $b } }\n"
	diags := diag.New("demo.gl", source)
	tokens := lexer.Lex(source, rules.Default(), diags).Content()

	macros := macro.Parse(tokens, diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Err())
	}

	want := macro.Pattern{
		macro.Repetition{
			Pattern:    macro.Pattern{macro.Variable{Name: "$a", Kind: macro.Expression}},
			Quantifier: macro.ZeroOrMore,
			Separator:  ",",
		},
		macro.Literal{Text: "-"},
		macro.Variable{Name: "$b", Kind: macro.Expression},
	}
	if len(macros) != 1 {
		t.Fatalf("expected one macro, got %v", macros)
	}
	if diff := cmp.Diff(want, macros[0].Arms[0].Pattern); diff != "" {
		t.Errorf("pattern mismatch (-want +got):\n%s", diff)
	}
}
