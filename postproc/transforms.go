package postproc

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/takoeight0821/glint/token"
)

var tripleDelimiters = []string{`"""`, `'''`}

// Unquote strips surrounding quotes. Triple-quoted text is also dedented.
func Unquote(t token.Token) token.Token {
	text := t.Text
	for _, delim := range tripleDelimiters {
		if len(text) >= 2*len(delim) && strings.HasPrefix(text, delim) && strings.HasSuffix(text, delim) {
			return t.WithText(dedent(text[len(delim) : len(text)-len(delim)]))
		}
	}
	if len(text) >= 2 && (text[0] == '"' || text[0] == '\'') && text[len(text)-1] == text[0] {
		return t.WithText(text[1 : len(text)-1])
	}
	return t
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// dedent drops the line break right after the opening delimiter, removes
// the indentation shared by all non-blank lines and trims trailing blank
// lines.
func dedent(s string) string {
	s = strings.TrimPrefix(s, "\n")
	lines := strings.Split(s, "\n")

	common := -1
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		if n := indentOf(line); common < 0 || n < common {
			common = n
		}
	}

	for i, line := range lines {
		if isBlank(line) {
			lines[i] = ""
		} else {
			lines[i] = line[common:]
		}
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}

var escapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
}

// Unescape resolves backslash escapes. Unknown escapes are kept verbatim.
func Unescape(t token.Token) token.Token {
	if !strings.Contains(t.Text, `\`) {
		return t
	}

	var b strings.Builder
	text := t.Text
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' && i+1 < len(text) {
			if c, ok := escapes[text[i+1]]; ok {
				b.WriteByte(c)
				i++
				continue
			}
		}
		b.WriteByte(text[i])
	}

	return t.WithText(b.String())
}

// Quote is the inverse of Unescape followed by Unquote for single-line
// literals delimited by quote.
func Quote(s string, quote byte) string {
	var b strings.Builder
	b.WriteByte(quote)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case 0:
			b.WriteString(`\0`)
		case quote:
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(quote)

	return b.String()
}

// Uncomment strips `//` or `/* */` and the whitespace around the body.
func Uncomment(t token.Token) token.Token {
	text := t.Text
	switch {
	case strings.HasPrefix(text, "//"):
		return t.WithText(strings.TrimSpace(text[2:]))
	case len(text) >= 4 && strings.HasPrefix(text, "/*") && strings.HasSuffix(text, "*/"):
		return t.WithText(strings.TrimSpace(text[2 : len(text)-2]))
	default:
		return t
	}
}

// NormalizeInteger rewrites a hex, binary, octal or decimal literal with
// optional `_` separators as plain base-10 digits.
func NormalizeInteger(t token.Token) token.Token {
	digits := strings.ReplaceAll(t.Text, "_", "")
	base := 10
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 10 {
			digits = digits[2:]
		}
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return t
	}

	return t.WithText(n.String())
}

// NormalizeFloat rewrites a float literal in scientific notation with the
// shortest exact mantissa, e.g. `1_500.0` becomes `1.5e+03`.
func NormalizeFloat(t token.Token) token.Token {
	v, err := strconv.ParseFloat(strings.ReplaceAll(t.Text, "_", ""), 64)
	if err != nil {
		return t
	}

	return t.WithText(strconv.FormatFloat(v, 'e', -1, 64))
}

// StripDecoration removes a leading marker such as `@` from a decorated
// identifier.
func StripDecoration(t token.Token) token.Token {
	r, width := utf8.DecodeRuneInString(t.Text)
	if width == len(t.Text) || unicode.IsLetter(r) || r == '_' {
		return t
	}

	return t.WithText(t.Text[width:])
}

// StripBang removes the trailing `!` of a macro name.
func StripBang(t token.Token) token.Token {
	if len(t.Text) < 2 {
		return t
	}

	return t.WithText(strings.TrimSuffix(t.Text, "!"))
}
