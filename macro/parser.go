package macro

import (
	"path/filepath"
	"strings"

	"github.com/takoeight0821/glint/diag"
	"github.com/takoeight0821/glint/token"
)

// Unit is one file's token sequence and the diagnostics it reports into.
type Unit struct {
	Tokens      token.Sequence
	Diagnostics *diag.Diagnostics
}

// ParseAll parses every unit in order. Errors in one unit are recorded in
// its own Diagnostics and never stop the others.
func ParseAll(units []Unit) []*Macro {
	var macros []*Macro
	for _, unit := range units {
		macros = append(macros, Parse(unit.Tokens, unit.Diagnostics)...)
	}

	return macros
}

// Parse collects the macro definitions of one file.
func Parse(tokens token.Sequence, diags *diag.Diagnostics) []*Macro {
	p := &Parser{tokens: token.NewStream(tokens), diags: diags}

	return p.parseFile()
}

type Parser struct {
	tokens *token.Stream
	diags  *diag.Diagnostics

	module        string
	reportedNoPkg bool
}

func (p *Parser) skippable(t token.Token, newlines bool) bool {
	return t.Kind == token.COMMENT || newlines && t.Kind == token.NEWLINE
}

// peek returns the next significant token. Comments and newlines in front
// of it are dropped.
func (p *Parser) peek() token.Token {
	for p.skippable(p.tokens.Peek(), true) {
		p.tokens.Next()
	}

	return p.tokens.Peek()
}

func (p *Parser) atEnd() bool {
	p.peek()

	return p.tokens.AtEnd()
}

func (p *Parser) next() token.Token {
	p.peek()

	return p.tokens.Next()
}

// nextRaw keeps newlines, for copying arm bodies as written.
func (p *Parser) nextRaw() token.Token {
	t := p.tokens.Next()
	for p.skippable(t, false) {
		t = p.tokens.Next()
	}

	return t
}

func (p *Parser) expected(what string, found token.Token, hint string) {
	p.diags.Report(diag.ExpectedFound, diag.ExpectedFoundMessage(what, found.Pretty()),
		found.Pos.Line, found.Pos.Column, found.Text, hint)
}

func isDelimiter(t token.Token, text string) bool {
	return t.Is(token.DELIMITER, text)
}

func isArrow(t token.Token) bool {
	return t.Text == "->" && (t.Kind == token.OPERATOR || t.Kind == token.DELIMITER)
}

func isName(t token.Token) bool {
	return t.Kind == token.IDENTIFIER && t.Sub == token.Ident
}

func isVariable(t token.Token) bool {
	return t.Kind == token.IDENTIFIER && t.Sub == token.Variable
}

// file = { "pub" | packageDecl | macroDef | any } ;
func (p *Parser) parseFile() []*Macro {
	var macros []*Macro
	public := false

	for !p.atEnd() {
		t := p.next()
		switch {
		case t.Is(token.KEYWORD, "pub"):
			public = true
		case t.Is(token.KEYWORD, "package"):
			p.packageDecl()
			public = false
		case t.Is(token.KEYWORD, "macro"):
			if m := p.macroDefinition(t, public); m != nil {
				macros = append(macros, m)
			}
			public = false
		case t.Kind == token.KEYWORD:
			public = false
		}
	}

	return macros
}

// packageDecl = "package" IDENT { "::" IDENT } ;
func (p *Parser) packageDecl() {
	name := p.peek()
	if !isName(name) {
		p.expected("package name", name, "write `package <name>`")
		return
	}
	p.next()

	parts := []string{name.Text}
	for isDelimiter(p.peek(), "::") {
		p.next()
		part := p.peek()
		if !isName(part) {
			p.expected("package name", part, "write `package <name>::<name>`")
			break
		}
		parts = append(parts, p.next().Text)
	}
	p.module = strings.Join(parts, "::")
}

// qualify prefixes name with the current package. Without a package
// declaration the file stem stands in and MISSING_PACKAGE is reported once.
func (p *Parser) qualify(at, name token.Token) string {
	module := p.module
	if module == "" {
		if !p.reportedNoPkg {
			p.diags.Report(diag.MissingPackage, "macro `"+name.Text+"` is defined outside of a package",
				at.Pos.Line, at.Pos.Column, at.Text, "declare `package <name>` at the top of the file")
			p.reportedNoPkg = true
		}
		base := filepath.Base(p.diags.File())
		module = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return module + "::" + name.Text
}

// macroDef = "macro" IDENT "{" { arm [ ";" | "," ] } "}" ;
func (p *Parser) macroDefinition(keyword token.Token, public bool) *Macro {
	name := p.peek()
	if !isName(name) {
		p.expected("macro name", name, "name the macro: `macro name { ... }`")
		return nil
	}
	p.next()

	if open := p.peek(); !isDelimiter(open, "{") {
		p.expected("`{`", open, "open the macro body with `{` after its name")
		return nil
	}
	p.next()

	m := &Macro{Name: p.qualify(keyword, name), Public: public}
	for {
		t := p.peek()
		switch {
		case isDelimiter(t, "}"):
			p.next()
			return m
		case t.Kind == token.END:
			p.expected("`}`", t, "close the definition of `"+name.Text+"` with `}`")
			return m
		case isDelimiter(t, ";"), isDelimiter(t, ","):
			p.next()
		default:
			if arm, ok := p.arm(); ok {
				m.Arms = append(m.Arms, arm)
			}
		}
	}
}

// arm = "(" pattern "->" "{" body ;
func (p *Parser) arm() (Arm, bool) {
	if open := p.peek(); !isDelimiter(open, "(") {
		p.expected("`(`", open, "start each arm with a parenthesized pattern")
		p.synchronize()
		return Arm{}, false
	}
	p.next()

	pattern, ok := p.pattern()
	if !ok {
		return Arm{}, false
	}

	if arrow := p.peek(); !isArrow(arrow) {
		p.expected("`->`", arrow, "separate the pattern from the body with `->`")
		p.synchronize()
		return Arm{}, false
	}
	p.next()

	open := p.peek()
	if !isDelimiter(open, "{") {
		p.expected("`{`", open, "wrap the arm body in `{ }`")
		p.synchronize()
		return Arm{}, false
	}
	p.next()

	body, closing, ok := p.body()
	if !ok {
		return Arm{}, false
	}

	return Arm{Pattern: pattern, Body: body, Open: open.Pos, Close: closing.Pos}, true
}

// synchronize skips to the next arm boundary: a `(` or the `}` closing
// the macro, outside any braces skipped on the way.
func (p *Parser) synchronize() {
	depth := 0
	for !p.atEnd() {
		t := p.peek()
		switch {
		case depth == 0 && (isDelimiter(t, "(") || isDelimiter(t, "}")):
			return
		case isDelimiter(t, "{"):
			depth++
		case isDelimiter(t, "}"):
			depth--
		}
		p.next()
	}
}

// pattern = { "(" | ")" | "," | repetition | typedVar | VAR | any } ")" ;
// The opening parenthesis has already been consumed.
func (p *Parser) pattern() (Pattern, bool) {
	pattern := Pattern{}
	depth := 1

	for {
		t := p.next()
		switch {
		case t.Kind == token.END:
			p.expected("`)`", t, "close the pattern with `)`")
			return pattern, false
		case isDelimiter(t, "("):
			depth++
			pattern = append(pattern, Literal{Text: t.Text})
		case isDelimiter(t, ")"):
			depth--
			if depth == 0 {
				return pattern, true
			}
			pattern = append(pattern, Literal{Text: t.Text})
		case isDelimiter(t, ","):
			pattern = append(pattern, Literal{Text: t.Text})
		case isDelimiter(t, "$("):
			rep, ok := p.repetition()
			if !ok {
				return pattern, false
			}
			pattern = append(pattern, rep)
		case t.Kind == token.KEYWORD && isTypeKeyword(t.Text):
			marker := p.peek()
			if !isVariable(marker) {
				p.expected("variable", marker, "follow `"+t.Text+"` with a variable such as `$name`")
				continue
			}
			p.next()
			pattern = append(pattern, Variable{Name: marker.Text, Kind: typeKeywords[t.Text]})
		case isVariable(t):
			pattern = append(pattern, Variable{Name: t.Text, Kind: Expression})
		default:
			pattern = append(pattern, Literal{Text: t.Text})
		}
	}
}

var typeKeywords = map[string]VarKind{
	"expression": Expression,
	"type":       Type,
	"identifier": Identifier,
}

func isTypeKeyword(text string) bool {
	_, ok := typeKeywords[text]
	return ok
}

var quantifiers = map[string]Quantifier{
	"*": ZeroOrMore,
	"+": OneOrMore,
	"?": ZeroOrOne,
}

// repetition = "$(" pattern [ "*" | "+" | "?" ] ;
func (p *Parser) repetition() (Repetition, bool) {
	sub, ok := p.pattern()
	if !ok {
		return Repetition{}, false
	}

	rep := Repetition{Pattern: sub, Quantifier: ZeroOrMore, Separator: ","}
	next := p.next()
	if q, ok := quantifiers[next.Text]; ok && next.Kind == token.OPERATOR {
		rep.Quantifier = q
	} else {
		p.tokens.Unread(next)
	}

	return rep, true
}

// body copies tokens up to the `}` matching the `{` already consumed.
func (p *Parser) body() (token.Sequence, token.Token, bool) {
	body := token.Sequence{}
	depth := 1

	for {
		t := p.nextRaw()
		switch {
		case t.Kind == token.END:
			p.expected("`}`", t, "close the arm body with `}`")
			return body, t, false
		case isDelimiter(t, "{"):
			depth++
		case isDelimiter(t, "}"):
			depth--
			if depth == 0 {
				return body, t, true
			}
		}
		body = append(body, t)
	}
}
