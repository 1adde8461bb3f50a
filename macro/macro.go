// Package macro recognizes pattern-matching macro definitions in a token
// sequence. Arm bodies are captured verbatim and never expanded here.
package macro

import (
	"fmt"
	"strings"

	"github.com/takoeight0821/glint/token"
)

type VarKind int

const (
	Expression VarKind = iota
	Type
	Identifier
)

func (k VarKind) String() string {
	switch k {
	case Expression:
		return "Expression"
	case Type:
		return "Type"
	case Identifier:
		return "Identifier"
	default:
		return fmt.Sprintf("VarKind(%d)", int(k))
	}
}

type Quantifier int

const (
	ZeroOrMore Quantifier = iota
	OneOrMore
	ZeroOrOne
)

func (q Quantifier) String() string {
	switch q {
	case ZeroOrMore:
		return "ZeroOrMore"
	case OneOrMore:
		return "OneOrMore"
	case ZeroOrOne:
		return "ZeroOrOne"
	default:
		return fmt.Sprintf("Quantifier(%d)", int(q))
	}
}

// Element is one unit of a pattern: Literal, Variable or Repetition.
type Element interface {
	element()
	String() string
}

type Literal struct {
	Text string
}

type Variable struct {
	Name string
	Kind VarKind
}

type Repetition struct {
	Pattern    Pattern
	Quantifier Quantifier
	Separator  string
}

func (Literal) element()    {}
func (Variable) element()   {}
func (Repetition) element() {}

func (l Literal) String() string {
	return fmt.Sprintf("Literal(%q)", l.Text)
}

func (v Variable) String() string {
	return fmt.Sprintf("Variable(%s, %v)", v.Name, v.Kind)
}

func (r Repetition) String() string {
	return fmt.Sprintf("Repetition(%v, %v, %q)", r.Pattern, r.Quantifier, r.Separator)
}

type Pattern []Element

func (p Pattern) String() string {
	elems := make([]string, len(p))
	for i, e := range p {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// Arm is one `(pattern) -> { body }` clause. Open and Close are the
// positions of the braces around the body.
type Arm struct {
	Pattern Pattern
	Body    token.Sequence
	Open    token.Pos
	Close   token.Pos
}

// Tokens returns the body framed by START and END, shaped like the
// sequence of a whole file so it can be parsed on its own.
func (a Arm) Tokens() token.Sequence {
	return a.Body.Framed(a.Open, a.Close)
}

func (a Arm) String() string {
	return fmt.Sprintf("%v -> {%s}", a.Pattern, strings.Join(a.Body.Texts(), " "))
}

type Macro struct {
	Name   string // qualified by the package, e.g. `demo::sum`
	Public bool
	Arms   []Arm
}

func (m *Macro) String() string {
	var b strings.Builder
	if m.Public {
		b.WriteString("pub ")
	}
	b.WriteString("macro ")
	b.WriteString(m.Name)
	for _, arm := range m.Arms {
		b.WriteString("\n  ")
		b.WriteString(arm.String())
	}
	return b.String()
}
