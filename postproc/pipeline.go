// Package postproc rewrites the text of freshly lexed tokens, one
// transformation chain per token category.
package postproc

import (
	"github.com/takoeight0821/glint/token"
)

// Transform must be pure and total over the category it is registered for.
type Transform func(token.Token) token.Token

// Pipeline maps a category key to its ordered transformation chain.
type Pipeline struct {
	chains map[string][]Transform
}

func New() *Pipeline {
	return &Pipeline{chains: map[string][]Transform{}}
}

// Register appends transforms to the chain of key.
func (p *Pipeline) Register(key string, transforms ...Transform) *Pipeline {
	p.chains[key] = append(p.chains[key], transforms...)
	return p
}

// Key is the category a token's chain is looked up under: the subtype for
// literals and identifiers, otherwise the lower-case kind.
func Key(t token.Token) string {
	switch t.Kind {
	case token.LITERAL, token.IDENTIFIER:
		return t.Sub
	case token.KEYWORD:
		return "keyword"
	case token.OPERATOR:
		return "operator"
	case token.DELIMITER:
		return "delimiter"
	case token.COMMENT:
		return "comment"
	default:
		return ""
	}
}

// Apply runs the chain registered for t's category, in registration order.
func (p *Pipeline) Apply(t token.Token) token.Token {
	for _, transform := range p.chains[Key(t)] {
		t = transform(t)
	}
	return t
}

// Run applies the pipeline to every token and returns a new sequence.
func (p *Pipeline) Run(seq token.Sequence) token.Sequence {
	out := make(token.Sequence, len(seq))
	for i, t := range seq {
		out[i] = p.Apply(t)
	}
	return out
}

// Default is the pipeline matching rules.Default.
func Default() *Pipeline {
	return New().
		Register(token.String, Unquote, Unescape).
		Register(token.Char, Unquote, Unescape).
		Register(token.Integer, NormalizeInteger).
		Register(token.Float, NormalizeFloat).
		Register(token.Annotation, StripDecoration).
		Register(token.MacroName, StripBang).
		Register("comment", Uncomment)
}
