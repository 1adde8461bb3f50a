package diag

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

type palette struct {
	header    func(a ...interface{}) string
	underline func(a ...interface{}) string
	hint      func(a ...interface{}) string
}

func colored() palette {
	header := color.New(color.FgRed, color.Bold)
	underline := color.New(color.FgGreen, color.Bold)
	hint := color.New(color.FgYellow)
	// The sink decides whether it wants escapes; do not sniff the terminal.
	for _, c := range []*color.Color{header, underline, hint} {
		c.EnableColor()
	}
	return palette{
		header:    header.SprintFunc(),
		underline: underline.SprintFunc(),
		hint:      hint.SprintFunc(),
	}
}

func plain() palette {
	return palette{header: fmt.Sprint, underline: fmt.Sprint, hint: fmt.Sprint}
}

// Render writes every diagnostic in report order with ANSI colors.
func (d *Diagnostics) Render(w io.Writer) error {
	return d.render(w, colored())
}

// RenderPlain is Render without color escapes.
func (d *Diagnostics) RenderPlain(w io.Writer) error {
	return d.render(w, plain())
}

func (d *Diagnostics) render(w io.Writer, p palette) error {
	for _, diagnostic := range d.list {
		if _, err := io.WriteString(w, d.format(diagnostic, p)); err != nil {
			return err
		}
	}
	return nil
}

func (d *Diagnostics) format(diagnostic Diagnostic, p palette) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %s: %s\n", d.file, p.header("error["+string(diagnostic.Kind)+"]"), diagnostic.Message)
	fmt.Fprintf(&b, "  --> line %d:%d\n", diagnostic.Line, diagnostic.Column)

	for n := diagnostic.Line - 1; n >= 1; n-- {
		if above := d.line(n); strings.TrimSpace(above) != "" {
			b.WriteString(above)
			b.WriteString("\n")
			break
		}
	}

	current := d.line(diagnostic.Line)
	b.WriteString(current)
	b.WriteString("\n")

	b.WriteString(strings.Repeat(" ", max(0, diagnostic.Column-1)))
	b.WriteString(p.underline(strings.Repeat("^", caretWidth(diagnostic.Text))))
	b.WriteString("\n")

	if diagnostic.Hint != "" {
		b.WriteString(p.hint("= help: " + diagnostic.Hint))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	return b.String()
}

// caretWidth underlines only the first line of a multi-line span.
func caretWidth(text string) int {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return max(1, utf8.RuneCountInString(text))
}
