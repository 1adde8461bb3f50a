package token_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/takoeight0821/glint/token"
)

func sample() token.Sequence {
	return token.Sequence{
		{Kind: token.START},
		{Kind: token.KEYWORD, Text: "macro", Pos: token.Pos{Offset: 0, Line: 1, Column: 1}},
		{Kind: token.IDENTIFIER, Sub: token.Ident, Text: "sum", Pos: token.Pos{Offset: 6, Line: 1, Column: 7}},
		{Kind: token.END, Pos: token.Pos{Offset: 9, Line: 1, Column: 10}},
	}
}

func TestStreamPeekDoesNotConsume(t *testing.T) {
	t.Parallel()

	s := token.NewStream(sample())
	first := s.Peek()
	if diff := cmp.Diff(first, s.Peek()); diff != "" {
		t.Errorf("second Peek mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first, s.Next()); diff != "" {
		t.Errorf("Next after Peek mismatch (-want +got):\n%s", diff)
	}
	if got := s.Next().Text; got != "macro" {
		t.Errorf("Next returned %q, expected %q", got, "macro")
	}
}

func TestStreamUnread(t *testing.T) {
	t.Parallel()

	s := token.NewStream(sample())
	s.Next()
	kw := s.Next()
	s.Unread(kw)
	if got := s.Next(); got.Text != "macro" {
		t.Errorf("Next after Unread returned %v", got)
	}
	if got := s.Next(); got.Text != "sum" {
		t.Errorf("Next returned %v, expected sum", got)
	}
}

func TestStreamUnreadTwicePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Errorf("second Unread did not panic")
		}
	}()

	s := token.NewStream(sample())
	tok := s.Next()
	s.Unread(tok)
	s.Unread(tok)
}

func TestStreamEndRepeats(t *testing.T) {
	t.Parallel()

	s := token.NewStream(sample())
	for range 3 {
		s.Next()
	}
	for range 3 {
		if got := s.Next(); got.Kind != token.END {
			t.Fatalf("Next past the end returned %v", got)
		}
	}
	if !s.AtEnd() {
		t.Errorf("AtEnd returned false past the end")
	}
}

func TestSequenceAtWithoutSentinel(t *testing.T) {
	t.Parallel()

	seq := sample().Content()
	want := token.Token{Kind: token.END, Pos: token.Pos{Offset: 6, Line: 1, Column: 7}}
	if diff := cmp.Diff(want, seq.At(10)); diff != "" {
		t.Errorf("At past the end mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenString(t *testing.T) {
	t.Parallel()

	got := sample().String()
	want := `{START, "", 0:0}
{KEYWORD, "macro", 1:1}
{IDENTIFIER(identifier), "sum", 1:7}
{END, "", 1:10}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("String mismatch (-want +got):\n%s", diff)
	}
}
