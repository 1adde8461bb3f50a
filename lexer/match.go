package lexer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/takoeight0821/glint/rules"
	"github.com/takoeight0821/glint/token"
)

type match struct {
	proto   rules.Prototype
	length  int
	failure *rules.Failure
}

// match evaluates every prototype at the start of input. With longest
// match on, the longest candidate wins; otherwise the first declared one.
func (l *lexer) match(input string) (match, bool) {
	var best match
	found := false

	for _, proto := range l.protos {
		n, failure := l.try(proto, input)
		if n <= 0 {
			continue
		}
		m := match{proto: proto, length: min(n, len(input)), failure: failure}
		if !l.set.LongestMatch() {
			return m, true
		}
		if !found || beats(m, best) {
			best = m
			found = true
		}
	}

	return best, found
}

// beats reports whether m displaces best. At equal length a delimiter or
// keyword displaces an operator; otherwise the earlier declaration stays.
func beats(m, best match) bool {
	if m.length != best.length {
		return m.length > best.length
	}
	if best.proto.Kind() != token.OPERATOR {
		return false
	}
	kind := m.proto.Kind()

	return kind == token.DELIMITER || kind == token.KEYWORD
}

func (l *lexer) try(proto rules.Prototype, input string) (int, *rules.Failure) {
	switch p := proto.(type) {
	case rules.Keyword:
		return l.fixed(p.Text, input), nil
	case rules.Delimiter:
		return l.fixed(p.Text, input), nil
	case rules.Operator:
		return l.fixed(p.Text, input), nil
	case rules.Literal:
		return prefix(p.Pattern, input), nil
	case rules.Identifier:
		return prefix(p.Pattern, input), nil
	case rules.Comment:
		return prefix(p.Pattern, input), nil
	case rules.Scanner:
		return p.Scan(input)
	case rules.Sentinel:
		return 0, nil
	default:
		return 0, nil
	}
}

// fixed matches text at the start of input. Alphabetic text must not be
// followed by an identifier character, so `or` does not match in `org`.
func (l *lexer) fixed(text, input string) int {
	if len(input) < len(text) {
		return 0
	}
	head := input[:len(text)]
	if l.set.CaseSensitive() && head != text || !l.set.CaseSensitive() && !strings.EqualFold(head, text) {
		return 0
	}
	if isAlphabetic(text) && len(input) > len(text) {
		if next, _ := utf8.DecodeRuneInString(input[len(text):]); rules.IsIdentChar(next) {
			return 0
		}
	}

	return len(text)
}

func isAlphabetic(text string) bool {
	for _, r := range text {
		if !unicode.IsLetter(r) {
			return false
		}
	}

	return text != ""
}

// prefix returns the length of the anchored match of re, 0 for none.
func prefix(re *regexp.Regexp, input string) int {
	loc := re.FindStringIndex(input)
	if loc == nil {
		return 0
	}

	return loc[1]
}
