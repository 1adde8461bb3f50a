package rules

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/takoeight0821/glint/token"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Whitespace int

const (
	Ignore Whitespace = iota
	Significant
	Indentation
)

func (w Whitespace) String() string {
	switch w {
	case Ignore:
		return "ignore"
	case Significant:
		return "significant"
	case Indentation:
		return "indentation"
	default:
		return fmt.Sprintf("Whitespace(%d)", int(w))
	}
}

// ParseWhitespace is the inverse of Whitespace.String.
func ParseWhitespace(s string) (Whitespace, error) {
	for _, w := range []Whitespace{Ignore, Significant, Indentation} {
		if w.String() == s {
			return w, nil
		}
	}
	return Ignore, fmt.Errorf("unknown whitespace mode %q", s)
}

// Set is an immutable, insertion-ordered rule set.
type Set struct {
	prototypes    []Prototype
	whitespace    Whitespace
	longestMatch  bool
	caseSensitive bool
	sentinels     map[token.Kind]bool
	entries       []entry
}

// Builder returns a Builder holding the declarations and policies of s,
// for deriving a variant such as the same rules under another whitespace
// mode.
func (s *Set) Builder() *Builder {
	return &Builder{
		entries:       slices.Clone(s.entries),
		whitespace:    s.whitespace,
		longestMatch:  s.longestMatch,
		caseSensitive: s.caseSensitive,
	}
}

func (s *Set) Prototypes() []Prototype {
	return slices.Clone(s.prototypes)
}

func (s *Set) Whitespace() Whitespace {
	return s.whitespace
}

func (s *Set) LongestMatch() bool {
	return s.longestMatch
}

func (s *Set) CaseSensitive() bool {
	return s.caseSensitive
}

// Declares reports whether the sentinel marker was declared.
func (s *Set) Declares(marker token.Kind) bool {
	return s.sentinels[marker]
}

// Subtypes lists, sorted, every subtype the set can attach to tokens of kind.
func (s *Set) Subtypes(kind token.Kind) []string {
	subs := map[string]struct{}{}
	for _, p := range s.prototypes {
		if p.Kind() == kind && Sub(p) != "" {
			subs[Sub(p)] = struct{}{}
		}
	}
	keys := maps.Keys(subs)
	slices.Sort(keys)
	return keys
}

type PatternError struct {
	Sub     string
	Pattern string
	Err     error
}

func (e PatternError) Error() string {
	return fmt.Sprintf("pattern %q for %q: %v", e.Pattern, e.Sub, e.Err)
}

// Builder collects declarations in order and produces a Set.
type Builder struct {
	entries       []entry
	whitespace    Whitespace
	longestMatch  bool
	caseSensitive bool
}

// entry defers regexp compilation until the case policy is known.
type entry struct {
	kind    token.Kind
	sub     string
	text    string
	pattern string
	scanner *Scanner
}

// NewBuilder starts with whitespace ignored, longest match on and case
// sensitive matching.
func NewBuilder() *Builder {
	return &Builder{whitespace: Ignore, longestMatch: true, caseSensitive: true}
}

func (b *Builder) fixed(kind token.Kind, texts []string) *Builder {
	for _, text := range texts {
		b.entries = append(b.entries, entry{kind: kind, text: text})
	}
	return b
}

func (b *Builder) Keywords(texts ...string) *Builder {
	return b.fixed(token.KEYWORD, texts)
}

func (b *Builder) Delimiters(texts ...string) *Builder {
	return b.fixed(token.DELIMITER, texts)
}

func (b *Builder) Operators(texts ...string) *Builder {
	return b.fixed(token.OPERATOR, texts)
}

func (b *Builder) Literal(sub, pattern string) *Builder {
	b.entries = append(b.entries, entry{kind: token.LITERAL, sub: sub, pattern: pattern})
	return b
}

func (b *Builder) Identifier(sub, pattern string) *Builder {
	b.entries = append(b.entries, entry{kind: token.IDENTIFIER, sub: sub, pattern: pattern})
	return b
}

func (b *Builder) Comment(pattern string) *Builder {
	b.entries = append(b.entries, entry{kind: token.COMMENT, pattern: pattern})
	return b
}

func (b *Builder) Scanner(s Scanner) *Builder {
	b.entries = append(b.entries, entry{kind: s.Produces, sub: s.Sub, scanner: &s})
	return b
}

func (b *Builder) sentinel(marker token.Kind) *Builder {
	b.entries = append(b.entries, entry{kind: marker})
	return b
}

func (b *Builder) Start() *Builder { return b.sentinel(token.START) }
func (b *Builder) End() *Builder   { return b.sentinel(token.END) }

// NewLine makes line breaks tokens. Under Ignore it switches the set to
// Significant.
func (b *Builder) NewLine() *Builder { return b.sentinel(token.NEWLINE) }

func (b *Builder) Whitespace(mode Whitespace) *Builder {
	b.whitespace = mode
	return b
}

func (b *Builder) LongestMatch(on bool) *Builder {
	b.longestMatch = on
	return b
}

func (b *Builder) CaseSensitive(on bool) *Builder {
	b.caseSensitive = on
	return b
}

// Build compiles every declaration. All problems are reported together.
func (b *Builder) Build() (*Set, error) {
	set := &Set{
		whitespace:    b.whitespace,
		longestMatch:  b.longestMatch,
		caseSensitive: b.caseSensitive,
		sentinels:     map[token.Kind]bool{},
		entries:       slices.Clone(b.entries),
	}

	var err error
	for _, e := range b.entries {
		p, perr := b.prototype(e)
		if perr != nil {
			err = errors.Join(err, perr)
			continue
		}
		if s, ok := p.(Sentinel); ok {
			set.sentinels[s.Marker] = true
		}
		set.prototypes = append(set.prototypes, p)
	}
	if err != nil {
		return nil, err
	}

	// Line breaks are tokens exactly when NEWLINE is declared. A significant
	// whitespace mode declares it; declaring it makes whitespace significant.
	switch {
	case set.whitespace != Ignore:
		set.sentinels[token.NEWLINE] = true
	case set.sentinels[token.NEWLINE]:
		set.whitespace = Significant
	}

	return set, nil
}

// MustBuild is Build for rule sets known to be valid at compile time.
func (b *Builder) MustBuild() *Set {
	set, err := b.Build()
	if err != nil {
		panic(err)
	}
	return set
}

func (b *Builder) prototype(e entry) (Prototype, error) {
	if e.scanner != nil {
		if e.scanner.Scan == nil {
			return nil, fmt.Errorf("scanner %q has no scan function", e.scanner.Name)
		}
		return *e.scanner, nil
	}

	//exhaustive:ignore
	switch e.kind {
	case token.START, token.END, token.NEWLINE:
		return Sentinel{Marker: e.kind}, nil
	case token.KEYWORD, token.DELIMITER, token.OPERATOR:
		if e.text == "" {
			return nil, fmt.Errorf("empty %v text", e.kind)
		}
		switch e.kind {
		case token.KEYWORD:
			return Keyword{Text: e.text}, nil
		case token.DELIMITER:
			return Delimiter{Text: e.text}, nil
		default:
			return Operator{Text: e.text}, nil
		}
	}

	re, err := b.compile(e.pattern)
	if err != nil {
		return nil, PatternError{Sub: e.sub, Pattern: e.pattern, Err: err}
	}

	//exhaustive:ignore
	switch e.kind {
	case token.LITERAL:
		return Literal{Sub: e.sub, Pattern: re}, nil
	case token.IDENTIFIER:
		return Identifier{Sub: e.sub, Pattern: re}, nil
	default:
		return Comment{Pattern: re}, nil
	}
}

// compile anchors pattern at the start of the input.
func (b *Builder) compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, errors.New("empty pattern")
	}
	flags := ""
	if !b.caseSensitive {
		flags = "(?i)"
	}
	return regexp.Compile("^" + flags + "(?:" + pattern + ")")
}
