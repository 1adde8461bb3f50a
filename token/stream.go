package token

// Stream reads a Sequence front to back with one token of lookahead.
// A peeked or unread token is held in a single-slot buffer and replayed
// before anything new is pulled from the sequence.
type Stream struct {
	tokens  Sequence
	current int

	held    Token
	holding bool
}

func NewStream(tokens Sequence) *Stream {
	return &Stream{tokens: tokens}
}

func (s *Stream) pull() Token {
	t := s.tokens.At(s.current)
	if s.current < len(s.tokens) {
		s.current++
	}
	return t
}

// Next consumes one token. Past the end it keeps returning END.
func (s *Stream) Next() Token {
	if s.holding {
		s.holding = false
		return s.held
	}
	return s.pull()
}

// Peek returns the next token without consuming it.
func (s *Stream) Peek() Token {
	if !s.holding {
		s.held = s.pull()
		s.holding = true
	}
	return s.held
}

// Unread pushes t back so the following Next returns it.
// Only one token can be pushed back at a time.
func (s *Stream) Unread(t Token) {
	if s.holding {
		panic("token: unread with a token already buffered")
	}
	s.held = t
	s.holding = true
}

// AtEnd reports whether the next token is END.
func (s *Stream) AtEnd() bool {
	return s.Peek().Kind == END
}
