package token

import "strings"

// Sequence is an ordered, randomly indexable run of tokens.
type Sequence []Token

// At returns the token at offset i.
// Offsets past the end yield an END token positioned after the last token.
func (s Sequence) At(i int) Token {
	if i >= 0 && i < len(s) {
		return s[i]
	}
	if len(s) > 0 && s[len(s)-1].Kind == END {
		return s[len(s)-1]
	}
	end := Token{Kind: END}
	if len(s) > 0 {
		end.Pos = s[len(s)-1].Pos
	}
	return end
}

// Content returns s without its START and END sentinels.
func (s Sequence) Content() Sequence {
	content := make(Sequence, 0, len(s))
	for _, t := range s {
		if !t.IsSentinel() {
			content = append(content, t)
		}
	}
	return content
}

// Framed wraps s in START and END sentinels at the given positions.
func (s Sequence) Framed(start, end Pos) Sequence {
	framed := make(Sequence, 0, len(s)+2)
	framed = append(framed, Token{Kind: START, Pos: start})
	framed = append(framed, s...)
	return append(framed, Token{Kind: END, Pos: end})
}

// Texts returns the text of every token in s, sentinels included as "".
func (s Sequence) Texts() []string {
	texts := make([]string, len(s))
	for i, t := range s {
		texts[i] = t.Text
	}
	return texts
}

func (s Sequence) String() string {
	var b strings.Builder
	for _, t := range s {
		b.WriteString(t.String())
		b.WriteString("\n")
	}
	return b.String()
}
