package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/takoeight0821/glint/diag"
	"github.com/takoeight0821/glint/rules"
	"github.com/takoeight0821/glint/token"
)

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Normalize rewrites every line ending to "\n".
func Normalize(source string) string {
	return newlines.Replace(source)
}

// Lex splits source into tokens according to set. Unrecognized or
// malformed input becomes INVALID tokens and is reported to diags;
// scanning always continues to the end of the input.
func Lex(source string, set *rules.Set, diags *diag.Diagnostics) token.Sequence {
	l := lexer{
		source: Normalize(source),
		set:    set,
		protos: set.Prototypes(),
		diags:  diags,
		line:   1,
		column: 1,
	}

	if set.Declares(token.START) {
		l.tokens = append(l.tokens, token.Token{Kind: token.START})
	}

	for !l.isAtEnd() {
		l.scanToken()
	}

	if set.Declares(token.END) {
		l.tokens = append(l.tokens, token.Token{Kind: token.END, Pos: l.pos()})
	}

	return l.tokens
}

type lexer struct {
	source string
	set    *rules.Set
	protos []rules.Prototype
	diags  *diag.Diagnostics
	tokens token.Sequence

	current int // byte offset of the cursor
	line    int
	column  int
}

func (l lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l lexer) peek() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current:])

	return r
}

func (l lexer) pos() token.Pos {
	return token.Pos{Offset: l.current, Line: l.line, Column: l.column}
}

// advance moves the cursor over n bytes, keeping line and column in step.
func (l *lexer) advance(n int) string {
	text := l.source[l.current : l.current+n]
	for _, r := range text {
		if r == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.current += n

	return text
}

func (l *lexer) addToken(kind token.Kind, sub string, n int) token.Token {
	pos := l.pos()
	tok := token.Token{Kind: kind, Sub: sub, Text: l.advance(n), Pos: pos}
	l.tokens = append(l.tokens, tok)

	return tok
}

func isSpace(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}

func (l *lexer) scanToken() {
	switch r := l.peek(); {
	case r == '\n':
		l.newline()
		return
	case isSpace(r):
		_, width := utf8.DecodeRuneInString(l.source[l.current:])
		l.advance(width)
		return
	}

	m, ok := l.match(l.source[l.current:])
	if !ok {
		_, width := utf8.DecodeRuneInString(l.source[l.current:])
		tok := l.addToken(token.INVALID, "", width)
		l.diags.Report(diag.InvalidToken, fmt.Sprintf("unrecognized character %s", tok.Pretty()),
			tok.Pos.Line, tok.Pos.Column, tok.Text, "remove the character or declare a rule that accepts it")

		return
	}

	if m.failure != nil {
		tok := l.addToken(token.INVALID, "", m.length)
		l.diags.Report(m.failure.Kind, m.failure.Message, tok.Pos.Line, tok.Pos.Column, tok.Text, m.failure.Hint)

		return
	}

	l.addToken(m.proto.Kind(), rules.Sub(m.proto), m.length)
}

// newline consumes one line break. When the set declares NEWLINE it
// becomes a token; in Indentation mode the token also carries the next
// line's leading indentation.
func (l *lexer) newline() {
	if !l.set.Declares(token.NEWLINE) {
		l.advance(1)
		return
	}

	n := 1
	if l.set.Whitespace() == rules.Indentation {
		for l.current+n < len(l.source) {
			if c := l.source[l.current+n]; c != ' ' && c != '\t' {
				break
			}
			n++
		}
	}
	l.addToken(token.NEWLINE, "", n)
}
