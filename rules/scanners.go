package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/takoeight0821/glint/diag"
	"github.com/takoeight0821/glint/token"
)

// ScanFunc reports how many bytes at the start of input form its lexeme,
// or 0 when it does not apply. A non-nil Failure marks the span as
// malformed; the span is still consumed so scanning can continue after it.
type ScanFunc func(input string) (int, *Failure)

type Failure struct {
	Kind    diag.Kind
	Message string
	Hint    string
}

func IsIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func IsIdentChar(r rune) bool {
	return IsIdentStart(r) || unicode.IsDigit(r)
}

// identLen is the byte length of the identifier at the start of input.
func identLen(input string) int {
	n := 0
	for n < len(input) {
		r, width := utf8.DecodeRuneInString(input[n:])
		if n == 0 && !IsIdentStart(r) || !IsIdentChar(r) {
			break
		}
		n += width
	}
	return n
}

// TripleQuoted scans from delim to the next occurrence of delim, newlines
// included.
func TripleQuoted(sub, delim string) Scanner {
	return Scanner{Produces: token.LITERAL, Sub: sub, Name: "triple_quoted", Scan: func(input string) (int, *Failure) {
		if !strings.HasPrefix(input, delim) {
			return 0, nil
		}
		end := strings.Index(input[len(delim):], delim)
		if end < 0 {
			return len(input), &Failure{
				Kind:    diag.UnclosedString,
				Message: "unterminated multi-line string literal",
				Hint:    "close the string with `" + delim + "`",
			}
		}
		return len(delim) + end + len(delim), nil
	}}
}

// scanQuoted stops before a raw newline; an unterminated span never
// includes it.
func scanQuoted(input string, quote byte) (int, bool) {
	if len(input) == 0 || input[0] != quote {
		return 0, false
	}
	i := 1
	for i < len(input) {
		switch input[i] {
		case '\n':
			return i, false
		case '\\':
			if i+1 < len(input) && input[i+1] != '\n' {
				i += 2
				continue
			}
			return i + 1, false
		case quote:
			return i + 1, true
		default:
			i++
		}
	}
	return i, false
}

// Quoted scans a single-line string up to its unescaped closing quote.
func Quoted(sub string, quote byte) Scanner {
	q := string(quote)
	return Scanner{Produces: token.LITERAL, Sub: sub, Name: "quoted", Scan: func(input string) (int, *Failure) {
		n, closed := scanQuoted(input, quote)
		if n == 0 {
			return 0, nil
		}
		if !closed {
			return n, &Failure{
				Kind:    diag.UnclosedString,
				Message: "unterminated string literal",
				Hint:    "close the string with `" + q + "` before the end of the line",
			}
		}
		return n, nil
	}}
}

// CharLiteral scans a quoted literal holding exactly one character or one
// escape sequence.
func CharLiteral(sub string, quote byte) Scanner {
	q := string(quote)
	return Scanner{Produces: token.LITERAL, Sub: sub, Name: "char", Scan: func(input string) (int, *Failure) {
		n, closed := scanQuoted(input, quote)
		if n == 0 {
			return 0, nil
		}
		if !closed {
			return n, &Failure{
				Kind:    diag.InvalidCharLiteral,
				Message: "unterminated character literal",
				Hint:    "close the literal with `" + q + "`",
			}
		}
		runes := []rune(input[1 : n-1])
		if len(runes) == 1 || len(runes) == 2 && runes[0] == '\\' {
			return n, nil
		}
		return n, &Failure{
			Kind:    diag.InvalidCharLiteral,
			Message: "character literal must contain exactly one character",
			Hint:    "use a string literal for longer text",
		}
	}}
}

func closerOf(c byte) byte {
	switch c {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	default:
		return 0
	}
}

func isCloser(c byte) bool {
	return c == ')' || c == ']' || c == '}'
}

// Invocation scans `name!(...)`, `name![...]` and `name!{...}` as one
// opaque lexeme. All three bracket kinds nest through one stack; a
// mismatched closer still pops. Brackets inside quoted literals are not
// counted. An unbalanced invocation fails over the rest of the opener's
// line only, so the following lines are still lexed.
func Invocation(sub string) Scanner {
	return Scanner{Produces: token.IDENTIFIER, Sub: sub, Name: "invocation", Scan: func(input string) (int, *Failure) {
		name := identLen(input)
		if name == 0 || !strings.HasPrefix(input[name:], "!") {
			return 0, nil
		}
		open := name + 1
		if open >= len(input) || closerOf(input[open]) == 0 {
			return 0, nil
		}

		var stack []byte
		for i := open; i < len(input); i++ {
			c := input[i]
			if c == '"' || c == '\'' {
				n, _ := scanQuoted(input[i:], c)
				i += n - 1
				continue
			}
			if closer := closerOf(c); closer != 0 {
				stack = append(stack, closer)
				continue
			}
			if isCloser(c) {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					return i + 1, nil
				}
			}
		}

		end := len(input)
		if nl := strings.IndexByte(input[open:], '\n'); nl >= 0 {
			end = open + nl
		}
		return end, &Failure{
			Kind:    diag.UnbalancedInvocation,
			Message: "unbalanced brackets in macro invocation",
			Hint:    "close every bracket opened after `" + input[:open] + "`",
		}
	}}
}

// MacroName scans `name!` where the `!` is not the start of `!=`.
func MacroName(sub string) Scanner {
	return Scanner{Produces: token.IDENTIFIER, Sub: sub, Name: "macro_name", Scan: func(input string) (int, *Failure) {
		name := identLen(input)
		if name == 0 || !strings.HasPrefix(input[name:], "!") || strings.HasPrefix(input[name:], "!=") {
			return 0, nil
		}
		return name + 1, nil
	}}
}

// builtinScanners maps the names used in rule-set files to constructors.
var builtinScanners = map[string]func(sub, delim string) (Scanner, bool){
	"triple_quoted": func(sub, delim string) (Scanner, bool) {
		return TripleQuoted(sub, delim), delim != ""
	},
	"quoted": func(sub, delim string) (Scanner, bool) {
		if len(delim) != 1 {
			return Scanner{}, false
		}
		return Quoted(sub, delim[0]), true
	},
	"char": func(sub, delim string) (Scanner, bool) {
		if len(delim) != 1 {
			return Scanner{}, false
		}
		return CharLiteral(sub, delim[0]), true
	},
	"invocation": func(sub, _ string) (Scanner, bool) {
		return Invocation(sub), true
	},
	"macro_name": func(sub, _ string) (Scanner, bool) {
		return MacroName(sub), true
	},
}
