package token

import "fmt"

//go:generate go run golang.org/x/tools/cmd/stringer@v0.13.0 -type=Kind
type Kind int

const (
	// Sentinels.
	START Kind = iota
	END
	NEWLINE

	// Fixed vocabulary.
	KEYWORD
	DELIMITER
	OPERATOR

	// Pattern based.
	LITERAL
	IDENTIFIER
	COMMENT

	// Unrecognized span.
	INVALID
)

// Subtypes of LITERAL tokens.
const (
	Integer = "integer"
	Float   = "float"
	Char    = "char"
	Rune    = "rune"
	String  = "string"
	Boolean = "boolean"
	Null    = "null"
)

// Subtypes of IDENTIFIER tokens.
const (
	Ident      = "identifier"
	Variable   = "variable"
	Annotation = "annotation"
	MacroName  = "macro"
	MacroCall  = "macro_call"
)

type Pos struct {
	Offset int // byte offset into the normalized source
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Kind Kind
	Sub  string
	Text string
	Pos  Pos
}

// IsSentinel reports whether t carries no source text by construction.
func (t Token) IsSentinel() bool {
	return t.Kind == START || t.Kind == END
}

// Is reports whether t has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// WithText returns a copy of t with its text replaced.
func (t Token) WithText(text string) Token {
	t.Text = text
	return t
}

// Pretty renders t the way it should appear in a diagnostic message.
func (t Token) Pretty() string {
	switch t.Kind {
	case START:
		return "start of input"
	case END:
		return "end of input"
	case NEWLINE:
		return "newline"
	default:
		return "`" + t.Text + "`"
	}
}

func (t Token) String() string {
	if t.Sub != "" {
		return fmt.Sprintf("{%v(%s), %q, %v}", t.Kind, t.Sub, t.Text, t.Pos)
	}
	return fmt.Sprintf("{%v, %q, %v}", t.Kind, t.Text, t.Pos)
}
