package rules

import "github.com/takoeight0821/glint/token"

var keywords = []string{
	"package", "import", "pub", "macro",
	"fn", "let", "mut", "const", "return",
	"if", "else", "while", "for", "in", "break", "continue", "match",
	"struct", "enum", "class", "as",
	"type", "identifier", "expression",
	"and", "or", "not",
}

var delimiters = []string{
	"$(", "(", ")", "{", "}", "[", "]", ",", ";", "::", ":", ".",
}

var operators = []string{
	"->", "=>", "==", "!=", "<=", ">=", "&&", "||", "<<", ">>",
	"+=", "-=", "*=", "/=", "%=", "..",
	"+", "-", "*", "/", "%", "=", "<", ">", "!", "&", "|", "^", "?", "~",
}

// Default returns the rule set of the glint language.
func Default() *Set {
	return NewBuilder().
		Start().
		End().
		Keywords(keywords...).
		Scanner(TripleQuoted(token.String, `"""`)).
		Scanner(Quoted(token.String, '"')).
		Scanner(CharLiteral(token.Char, '\'')).
		Literal(token.Float, `[0-9][0-9_]*\.[0-9][0-9_]*(?:[eE][+-]?[0-9_]+)?|[0-9][0-9_]*[eE][+-]?[0-9_]+`).
		Literal(token.Integer, `0[xX][0-9a-fA-F_]+|0[bB][01_]+|0[oO][0-7_]+|[0-9][0-9_]*`).
		Literal(token.Boolean, `(?:true|false)\b`).
		Literal(token.Null, `null\b`).
		Scanner(Invocation(token.MacroCall)).
		Scanner(MacroName(token.MacroName)).
		Identifier(token.Annotation, `@[\p{L}_][\p{L}\p{N}_]*`).
		Identifier(token.Variable, `\$[\p{L}_][\p{L}\p{N}_]*`).
		Identifier(token.Ident, `[\p{L}_][\p{L}\p{N}_]*`).
		Comment(`//[^\n]*`).
		Comment(`/\*(?s:.*?)\*/`).
		Delimiters(delimiters...).
		Operators(operators...).
		MustBuild()
}
