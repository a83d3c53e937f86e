// Package token implements the colored token stream consumed by the
// renderer. It is deliberately thin: the block engine produces tokens, it
// does not interpret them.
package token

import "github.com/mewmew/blockview/colors"

// Text is a string that is either a compile-time constant or a heap-owned
// string produced at render time. Keeping the two cases distinct avoids
// allocating on the hot rendering path for the (common) static fragments.
type Text struct {
	s      string
	static bool
}

// Static wraps a compile-time string literal.
func Static(s string) Text {
	return Text{s: s, static: true}
}

// Owned wraps a heap-allocated string produced at render time.
func Owned(s string) Text {
	return Text{s: s}
}

// String returns the underlying text, regardless of ownership.
func (t Text) String() string {
	return t.s
}

// IsStatic reports whether t wraps a compile-time literal.
func (t Text) IsStatic() bool {
	return t.static
}

// Token is a single colored text fragment.
type Token struct {
	Text  Text
	Color colors.Color
}

// Stream is an ordered, appendable sequence of tokens.
type Stream struct {
	Inner []Token
}

// Push appends a static string fragment in the given color.
func (s *Stream) Push(text string, c colors.Color) {
	s.Inner = append(s.Inner, Token{Text: Static(text), Color: c})
}

// PushOwned appends a heap-allocated string fragment in the given color.
func (s *Stream) PushOwned(text string, c colors.Color) {
	s.Inner = append(s.Inner, Token{Text: Owned(text), Color: c})
}

// Extend splices a pre-built token list onto the end of the stream, e.g. the
// tokens an instruction decoder produced for its own operands.
func (s *Stream) Extend(toks []Token) {
	s.Inner = append(s.Inner, toks...)
}

// Pop removes the last token pushed onto the stream, used to trim a trailing
// separator.
func (s *Stream) Pop() {
	if n := len(s.Inner); n > 0 {
		s.Inner = s.Inner[:n-1]
	}
}

// String concatenates every fragment's text, ignoring color. Useful for
// tests and for non-colored output sinks.
func (s *Stream) String() string {
	var out string
	for _, tok := range s.Inner {
		out += tok.Text.String()
	}
	return out
}
