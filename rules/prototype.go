// Package rules declares the token categories a lexer recognizes and the
// policy it uses to choose between competing matches.
package rules

import (
	"regexp"

	"github.com/takoeight0821/glint/token"
)

// Prototype is one declarable rule. The set of implementations is closed.
type Prototype interface {
	// Kind is the kind of token the rule produces.
	Kind() token.Kind
	prototype()
}

type Keyword struct{ Text string }

type Delimiter struct{ Text string }

type Operator struct{ Text string }

// Literal matches Pattern at the cursor and produces a LITERAL of subtype Sub.
type Literal struct {
	Sub     string
	Pattern *regexp.Regexp
}

// Identifier matches Pattern at the cursor and produces an IDENTIFIER of subtype Sub.
type Identifier struct {
	Sub     string
	Pattern *regexp.Regexp
}

type Comment struct {
	Pattern *regexp.Regexp
}

// Sentinel declares that START, END or NEWLINE tokens should be emitted.
type Sentinel struct {
	Marker token.Kind
}

// Scanner is a hand-written recognizer for lexemes a regular expression
// cannot describe, such as bracket-balanced spans.
type Scanner struct {
	Produces token.Kind
	Sub      string
	Name     string
	Scan     ScanFunc
}

func (Keyword) Kind() token.Kind    { return token.KEYWORD }
func (Delimiter) Kind() token.Kind  { return token.DELIMITER }
func (Operator) Kind() token.Kind   { return token.OPERATOR }
func (Literal) Kind() token.Kind    { return token.LITERAL }
func (Identifier) Kind() token.Kind { return token.IDENTIFIER }
func (Comment) Kind() token.Kind    { return token.COMMENT }
func (s Sentinel) Kind() token.Kind { return s.Marker }
func (s Scanner) Kind() token.Kind  { return s.Produces }

func (Keyword) prototype()    {}
func (Delimiter) prototype()  {}
func (Operator) prototype()   {}
func (Literal) prototype()    {}
func (Identifier) prototype() {}
func (Comment) prototype()    {}
func (Sentinel) prototype()   {}
func (Scanner) prototype()    {}

// Fixed returns the text of a fixed-string prototype.
func Fixed(p Prototype) (string, bool) {
	switch p := p.(type) {
	case Keyword:
		return p.Text, true
	case Delimiter:
		return p.Text, true
	case Operator:
		return p.Text, true
	default:
		return "", false
	}
}

// Sub returns the subtype a prototype attaches to its tokens, if any.
func Sub(p Prototype) string {
	switch p := p.(type) {
	case Literal:
		return p.Sub
	case Identifier:
		return p.Sub
	case Scanner:
		return p.Sub
	default:
		return ""
	}
}
