// Package diag accumulates compiler diagnostics for one source file and
// renders them against that file's text.
package diag

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	InvalidToken         Kind = "INVALID_TOKEN"
	UnclosedString       Kind = "UNCLOSED_STRING"
	InvalidCharLiteral   Kind = "INVALID_CHAR_LITERAL"
	UnbalancedInvocation Kind = "UNBALANCED_INVOCATION"
	MissingPackage       Kind = "MISSING_PACKAGE"
	ExpectedFound        Kind = "EXPECTED_FOUND"
)

// Diagnostic is one reported defect. It implements error.
type Diagnostic struct {
	File    string
	Kind    Kind
	Message string
	Line    int
	Column  int
	Text    string // offending source text
	Hint    string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.File, d.Line, d.Column, d.Kind, d.Message)
}

// Diagnostics is owned by exactly one source file.
type Diagnostics struct {
	file  string
	lines []string
	list  []Diagnostic
}

func New(file, source string) *Diagnostics {
	return &Diagnostics{file: file, lines: splitLines(source)}
}

func splitLines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	return strings.Split(source, "\n")
}

func (d *Diagnostics) File() string {
	return d.file
}

// Report appends one diagnostic. An empty hint means none.
func (d *Diagnostics) Report(kind Kind, message string, line, column int, text, hint string) {
	d.list = append(d.list, Diagnostic{
		File:    d.file,
		Kind:    kind,
		Message: message,
		Line:    line,
		Column:  column,
		Text:    text,
		Hint:    hint,
	})
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.list) > 0
}

func (d *Diagnostics) Len() int {
	return len(d.list)
}

// All returns the diagnostics in report order.
func (d *Diagnostics) All() []Diagnostic {
	return append([]Diagnostic(nil), d.list...)
}

// Err joins every diagnostic into one error, or returns nil.
func (d *Diagnostics) Err() error {
	errs := make([]error, len(d.list))
	for i, diagnostic := range d.list {
		errs[i] = diagnostic
	}
	return errors.Join(errs...)
}

// line returns the 1-based source line n, or "" if out of range.
func (d *Diagnostics) line(n int) string {
	if n < 1 || n > len(d.lines) {
		return ""
	}
	return d.lines[n-1]
}

// ExpectedFoundMessage builds the templated message for ExpectedFound.
func ExpectedFoundMessage(expected, found string) string {
	return fmt.Sprintf("expected %s found %s", expected, found)
}
