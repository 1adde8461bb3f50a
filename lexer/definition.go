package lexer

import (
	"io"
	"strings"

	plexer "github.com/alecthomas/participle/v2/lexer"
	"github.com/takoeight0821/glint/diag"
	"github.com/takoeight0821/glint/rules"
	"github.com/takoeight0821/glint/token"
)

// Processor rewrites a freshly lexed sequence.
type Processor interface {
	Run(token.Sequence) token.Sequence
}

// Definition exposes a rule set as a participle lexer, so participle
// grammars can be written over glint tokens. Symbol names are the token
// kinds ("Keyword", "Delimiter", ...) and, for literals and identifiers,
// the camel-cased subtype ("Integer", "MacroCall", ...).
type Definition struct {
	set        *rules.Set
	processors []Processor
	symbols    map[string]plexer.TokenType
}

var _ plexer.Definition = (*Definition)(nil)

func NewDefinition(set *rules.Set, processors ...Processor) *Definition {
	d := &Definition{
		set:        set,
		processors: processors,
		symbols:    map[string]plexer.TokenType{"EOF": plexer.EOF},
	}
	for _, kind := range []token.Kind{token.NEWLINE, token.KEYWORD, token.DELIMITER, token.OPERATOR, token.LITERAL, token.IDENTIFIER, token.COMMENT, token.INVALID} {
		d.symbol(kindSymbol(kind))
	}
	for _, kind := range []token.Kind{token.LITERAL, token.IDENTIFIER} {
		for _, sub := range set.Subtypes(kind) {
			d.symbol(camel(sub))
		}
	}

	return d
}

func (d *Definition) symbol(name string) plexer.TokenType {
	if t, ok := d.symbols[name]; ok {
		return t
	}
	t := plexer.TokenType(len(d.symbols))
	d.symbols[name] = t

	return t
}

func kindSymbol(kind token.Kind) string {
	if kind == token.NEWLINE {
		return "NewLine"
	}
	name := strings.ToLower(kind.String())

	return strings.ToUpper(name[:1]) + name[1:]
}

func camel(sub string) string {
	var b strings.Builder
	for _, part := range strings.Split(sub, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}

	return b.String()
}

// TokenType returns the participle type of a glint token.
func (d *Definition) TokenType(t token.Token) plexer.TokenType {
	if t.Kind == token.END {
		return plexer.EOF
	}
	if t.Sub != "" {
		if tt, ok := d.symbols[camel(t.Sub)]; ok {
			return tt
		}
	}

	return d.symbols[kindSymbol(t.Kind)]
}

func (d *Definition) Symbols() map[string]plexer.TokenType {
	symbols := make(map[string]plexer.TokenType, len(d.symbols))
	for name, t := range d.symbols {
		symbols[name] = t
	}

	return symbols
}

func (d *Definition) Lex(filename string, r io.Reader) (plexer.Lexer, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	diags := diag.New(filename, string(src))
	seq := Lex(string(src), d.set, diags)
	for _, p := range d.processors {
		seq = p.Run(seq)
	}

	reports := map[[2]int]diag.Diagnostic{}
	for _, report := range diags.All() {
		reports[[2]int{report.Line, report.Column}] = report
	}

	return &tokenLexer{def: d, filename: filename, tokens: token.NewStream(seq), reports: reports}, nil
}

type tokenLexer struct {
	def      *Definition
	filename string
	tokens   *token.Stream
	reports  map[[2]int]diag.Diagnostic
}

func (l *tokenLexer) position(t token.Token) plexer.Position {
	return plexer.Position{Filename: l.filename, Offset: t.Pos.Offset, Line: t.Pos.Line, Column: t.Pos.Column}
}

func (l *tokenLexer) Next() (plexer.Token, error) {
	t := l.tokens.Next()
	for t.Kind == token.START {
		t = l.tokens.Next()
	}

	if t.Kind == token.INVALID {
		message := "unrecognized input " + t.Pretty()
		if report, ok := l.reports[[2]int{t.Pos.Line, t.Pos.Column}]; ok {
			message = report.Message
		}
		return plexer.Token{}, &plexer.Error{Msg: message, Pos: l.position(t)}
	}

	return plexer.Token{Type: l.def.TokenType(t), Value: t.Text, Pos: l.position(t)}, nil
}
