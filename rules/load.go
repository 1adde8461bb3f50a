package rules

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/takoeight0821/glint/token"
	"gopkg.in/yaml.v3"
)

// config is the YAML form of a rule set. Rules keep their file order,
// which is the declaration order used for tie breaking.
type config struct {
	Whitespace    string       `yaml:"whitespace"`
	LongestMatch  *bool        `yaml:"longest_match"`
	CaseSensitive *bool        `yaml:"case_sensitive"`
	Rules         []configRule `yaml:"rules"`
}

type configRule struct {
	Sentinel   string   `yaml:"sentinel"`
	Keyword    string   `yaml:"keyword"`
	Keywords   []string `yaml:"keywords"`
	Delimiter  string   `yaml:"delimiter"`
	Delimiters []string `yaml:"delimiters"`
	Operator   string   `yaml:"operator"`
	Operators  []string `yaml:"operators"`
	Literal    string   `yaml:"literal"`
	Identifier string   `yaml:"identifier"`
	Comment    string   `yaml:"comment"`
	Scanner    string   `yaml:"scanner"`

	Pattern string `yaml:"pattern"`
	Kind    string `yaml:"kind"`
	Sub     string `yaml:"sub"`
	Delim   string `yaml:"delim"`
}

// LoadFile reads a YAML rule set from path.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	set, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Load reads a YAML rule set.
func Load(r io.Reader) (*Set, error) {
	var cfg config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode rule set: %w", err)
	}

	b := NewBuilder()
	if cfg.Whitespace != "" {
		mode, err := ParseWhitespace(cfg.Whitespace)
		if err != nil {
			return nil, err
		}
		b.Whitespace(mode)
	}
	if cfg.LongestMatch != nil {
		b.LongestMatch(*cfg.LongestMatch)
	}
	if cfg.CaseSensitive != nil {
		b.CaseSensitive(*cfg.CaseSensitive)
	}

	var err error
	for i, rule := range cfg.Rules {
		if rerr := rule.declare(b); rerr != nil {
			err = errors.Join(err, fmt.Errorf("rule %d: %w", i+1, rerr))
		}
	}
	if err != nil {
		return nil, err
	}

	return b.Build()
}

func (r configRule) selectors() int {
	n := 0
	for _, set := range []bool{
		r.Sentinel != "", r.Keyword != "", len(r.Keywords) > 0,
		r.Delimiter != "", len(r.Delimiters) > 0, r.Operator != "", len(r.Operators) > 0,
		r.Literal != "", r.Identifier != "", r.Comment != "", r.Scanner != "",
	} {
		if set {
			n++
		}
	}
	return n
}

func (r configRule) declare(b *Builder) error {
	if n := r.selectors(); n != 1 {
		return fmt.Errorf("expected exactly one rule kind, found %d", n)
	}

	switch {
	case r.Sentinel != "":
		switch r.Sentinel {
		case "start":
			b.Start()
		case "end":
			b.End()
		case "newline":
			b.NewLine()
		default:
			return fmt.Errorf("unknown sentinel %q", r.Sentinel)
		}
	case r.Keyword != "":
		b.Keywords(r.Keyword)
	case len(r.Keywords) > 0:
		b.Keywords(r.Keywords...)
	case r.Delimiter != "":
		b.Delimiters(r.Delimiter)
	case len(r.Delimiters) > 0:
		b.Delimiters(r.Delimiters...)
	case r.Operator != "":
		b.Operators(r.Operator)
	case len(r.Operators) > 0:
		b.Operators(r.Operators...)
	case r.Literal != "":
		b.Literal(r.Literal, r.Pattern)
	case r.Identifier != "":
		b.Identifier(r.Identifier, r.Pattern)
	case r.Comment != "":
		b.Comment(r.Comment)
	default:
		return r.declareScanner(b)
	}

	return nil
}

func (r configRule) declareScanner(b *Builder) error {
	build, ok := builtinScanners[r.Scanner]
	if !ok {
		return fmt.Errorf("unknown scanner %q", r.Scanner)
	}
	s, ok := build(r.Sub, r.Delim)
	if !ok {
		return fmt.Errorf("scanner %q: invalid delimiter %q", r.Scanner, r.Delim)
	}

	switch r.Kind {
	case "":
	case "literal":
		s.Produces = token.LITERAL
	case "identifier":
		s.Produces = token.IDENTIFIER
	default:
		return fmt.Errorf("scanner %q: unknown kind %q", r.Scanner, r.Kind)
	}

	b.Scanner(s)

	return nil
}
