// Package block defines the Block aggregate and its tagged-variant content,
// the smallest addressable unit of disassembly display.
package block

import (
	"fmt"

	"github.com/mewmew/blockview/addr"
	"github.com/mewmew/blockview/colors"
	"github.com/mewmew/blockview/decoder"
	"github.com/mewmew/blockview/hexutil"
	"github.com/mewmew/blockview/section"
	"github.com/mewmew/blockview/symbol"
	"github.com/mewmew/blockview/token"
)

// Content is a closed sum type over every kind of block. Implementations
// live in this file only; sealed() prevents external packages from adding
// new variants, the same way the source models BlockContent as a single
// enum rather than a subclass hierarchy.
type Content interface {
	sealed()
	// Len returns the number of lines this content occupies when rendered.
	Len() int
	// Tokenize appends this content's colored token fragments to stream.
	Tokenize(b Block, stream *token.Stream)
}

// Block is a single displayable unit at a given address.
type Block struct {
	Addr    addr.Addr
	Content Content
}

// Len reports how many vertical lines b occupies when tokenized.
func (b Block) Len() int {
	return b.Content.Len()
}

// Tokenize appends b's colored token fragments to stream.
func (b Block) Tokenize(stream *token.Stream) {
	b.Content.Tokenize(b, stream)
}

// SectionStart marks the first address of a section.
type SectionStart struct {
	Section section.Section
}

func (SectionStart) sealed()  {}
func (SectionStart) Len() int { return 2 }

// Tokenize implements Content.
func (c SectionStart) Tokenize(b Block, s *token.Stream) {
	tokenizeSectionMarker(s, "section started", c.Section)
}

// SectionEnd marks the address immediately past the last byte of a section.
type SectionEnd struct {
	Section section.Section
}

func (SectionEnd) sealed()  {}
func (SectionEnd) Len() int { return 2 }

// Tokenize implements Content.
func (c SectionEnd) Tokenize(b Block, s *token.Stream) {
	tokenizeSectionMarker(s, "section ended", c.Section)
}

func tokenizeSectionMarker(s *token.Stream, verb string, sec section.Section) {
	s.Push(verb, colors.White)
	s.PushOwned(fmt.Sprintf(" %s ", sec.Name), colors.Blue)
	s.Push("{", colors.Gray60)
	s.PushOwned(fmt.Sprintf("%v", sec.Kind), colors.Magenta)
	s.Push("} ", colors.Gray60)
	s.PushOwned(fmt.Sprintf("%x", uint64(sec.Start)), colors.Green)
	s.Push("-", colors.Gray60)
	s.PushOwned(fmt.Sprintf("%x", uint64(sec.End)), colors.Green)
}

// Label marks an address for which the symbol index reports a function.
type Label struct {
	Symbol *symbol.Symbol
}

func (Label) sealed()  {}
func (Label) Len() int { return 2 }

// Tokenize implements Content.
func (c Label) Tokenize(b Block, s *token.Stream) {
	s.Push("\n<", colors.Blue)
	s.PushOwned(string(c.Symbol.Name()), colors.Blue)
	s.Push(">", colors.Blue)
}

// DefaultAddrWidth is the hex digit count used for the per-line address
// prefix when a block's AddrWidth is left at its zero value, mirroring
// config.DefaultAddressColumnWidth.
const DefaultAddrWidth = 10

func addrWidth(w int) int {
	if w <= 0 {
		return DefaultAddrWidth
	}
	return w
}

// Instruction is a successfully decoded instruction.
type Instruction struct {
	Inst  decoder.Instruction
	Toks  []token.Token
	Bytes string
	// AddrWidth is the address column width in hex digits; zero selects
	// DefaultAddrWidth.
	AddrWidth int
}

func (Instruction) sealed()  {}
func (Instruction) Len() int { return 1 }

// Tokenize implements Content.
func (c Instruction) Tokenize(b Block, s *token.Stream) {
	tokenizeAddrAndBytes(s, b.Addr, c.Bytes, addrWidth(c.AddrWidth))
	s.Extend(c.Toks)
}

// Error is a decoder error at a given address.
type Error struct {
	Kind      decoder.ErrorKind
	Bytes     string
	AddrWidth int
}

func (Error) sealed()  {}
func (Error) Len() int { return 1 }

// Tokenize implements Content.
func (c Error) Tokenize(b Block, s *token.Stream) {
	tokenizeAddrAndBytes(s, b.Addr, c.Bytes, addrWidth(c.AddrWidth))
	s.Push("<", colors.Gray40)
	s.PushOwned(c.Kind.String(), colors.Red)
	s.Push(">", colors.Gray40)
}

func tokenizeAddrAndBytes(s *token.Stream, a addr.Addr, bytesCol string, width int) {
	s.PushOwned(fmt.Sprintf("%0*X  ", width, uint64(a)), colors.Gray40)
	s.PushOwned(bytesCol, colors.Green)
}

// Bytes is a contiguous undecoded byte run. ChunkWidth, MaxLines and
// AddrWidth each fall back to their config.Default* counterpart when left
// at zero, so a Bytes value built without threading a config through still
// behaves exactly like config.Default().
type Bytes struct {
	Data       []byte
	ChunkWidth int
	MaxLines   int
	AddrWidth  int
}

func (Bytes) sealed() {}

func (c Bytes) chunkWidth() int {
	if c.ChunkWidth <= 0 {
		return 32
	}
	return c.ChunkWidth
}

func (c Bytes) maxLines() int {
	if c.MaxLines <= 0 {
		return 100
	}
	return c.MaxLines
}

// Len implements Content.
func (c Bytes) Len() int {
	chunkWidth, maxLines := c.chunkWidth(), c.maxLines()
	n := (len(c.Data) + chunkWidth - 1) / chunkWidth
	if n < 1 {
		n = 1
	}
	if n > maxLines {
		n = maxLines
	}
	return n
}

// Tokenize implements Content.
func (c Bytes) Tokenize(b Block, s *token.Stream) {
	chunkWidth, maxLines, width := c.chunkWidth(), c.maxLines(), addrWidth(c.AddrWidth)
	off := 0
	lines := 0
	for off < len(c.Data) && lines < maxLines {
		end := off + chunkWidth
		if end > len(c.Data) {
			end = len(c.Data)
		}
		chunk := c.Data[off:end]
		s.PushOwned(fmt.Sprintf("%0*X  ", width, uint64(b.Addr)+uint64(off)), colors.Gray40)
		s.PushOwned(hexutil.EncodeTruncated(chunk, 0, false), colors.Green)
		s.Push("\n", colors.White)
		off = end
		lines++
	}
	// Pop the trailing newline pushed by the last chunk.
	s.Pop()
}
