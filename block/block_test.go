package block_test

import (
	"strings"
	"testing"

	"github.com/mewmew/blockview/block"
	"github.com/mewmew/blockview/decoder"
	"github.com/mewmew/blockview/section"
	"github.com/mewmew/blockview/symbol"
	"github.com/mewmew/blockview/token"
)

func TestSectionMarkersLenAndTokenize(t *testing.T) {
	sec, err := section.Fake("text", section.KindCode, 0x1000, make([]byte, 0x10)).ByAddr(0x1000)
	if err != nil {
		t.Fatalf("ByAddr: %v", err)
	}

	start := block.Block{Addr: 0x1000, Content: block.SectionStart{Section: sec}}
	if got := start.Len(); got != 2 {
		t.Errorf("SectionStart.Len() = %d, want 2", got)
	}
	var s token.Stream
	start.Tokenize(&s)
	if !strings.Contains(s.String(), "text") {
		t.Errorf("SectionStart tokenization %q does not mention the section name", s.String())
	}

	end := block.Block{Addr: 0x1010, Content: block.SectionEnd{Section: sec}}
	if got := end.Len(); got != 2 {
		t.Errorf("SectionEnd.Len() = %d, want 2", got)
	}
}

func TestLabelTokenize(t *testing.T) {
	sym := symbol.NewSymbol(0x1000, "main")
	b := block.Block{Addr: 0x1000, Content: block.Label{Symbol: sym}}
	if got := b.Len(); got != 2 {
		t.Errorf("Label.Len() = %d, want 2", got)
	}
	var s token.Stream
	b.Tokenize(&s)
	if !strings.Contains(s.String(), "main") {
		t.Errorf("Label tokenization %q does not mention the symbol name", s.String())
	}
}

func TestInstructionTokenizeUsesAddrWidth(t *testing.T) {
	c := block.Instruction{Toks: []token.Token{{Text: token.Static("nop"), Color: 0}}, Bytes: "90", AddrWidth: 4}
	b := block.Block{Addr: 0x1000, Content: c}
	if got := b.Len(); got != 1 {
		t.Errorf("Instruction.Len() = %d, want 1", got)
	}
	var s token.Stream
	b.Tokenize(&s)
	want := "1000  90nop"
	if got := s.String(); got != want {
		t.Errorf("Tokenize() = %q, want %q", got, want)
	}
}

func TestInstructionTokenizeDefaultAddrWidth(t *testing.T) {
	c := block.Instruction{Bytes: "90"}
	b := block.Block{Addr: 0x1000, Content: c}
	var s token.Stream
	b.Tokenize(&s)
	want := "0000001000  90"
	if got := s.String(); got != want {
		t.Errorf("Tokenize() with zero AddrWidth = %q, want %q (DefaultAddrWidth=%d)", got, want, block.DefaultAddrWidth)
	}
}

func TestErrorTokenize(t *testing.T) {
	c := block.Error{Kind: decoder.ErrBadInstruction, Bytes: "ff", AddrWidth: 4}
	b := block.Block{Addr: 0x1000, Content: c}
	if got := b.Len(); got != 1 {
		t.Errorf("Error.Len() = %d, want 1", got)
	}
	var s token.Stream
	b.Tokenize(&s)
	want := "1000  ff<BadInstruction>"
	if got := s.String(); got != want {
		t.Errorf("Tokenize() = %q, want %q", got, want)
	}
}

func TestBytesLenRespectsChunkWidthAndMaxLines(t *testing.T) {
	golden := []struct {
		dataLen    int
		chunkWidth int
		maxLines   int
		want       int
	}{
		{dataLen: 0, chunkWidth: 0, maxLines: 0, want: 1},
		{dataLen: 32, chunkWidth: 0, maxLines: 0, want: 1},
		{dataLen: 33, chunkWidth: 0, maxLines: 0, want: 2},
		{dataLen: 4096, chunkWidth: 0, maxLines: 0, want: 100},
		{dataLen: 4096, chunkWidth: 64, maxLines: 0, want: 64},
		{dataLen: 4096, chunkWidth: 64, maxLines: 10, want: 10},
	}
	for _, g := range golden {
		c := block.Bytes{Data: make([]byte, g.dataLen), ChunkWidth: g.chunkWidth, MaxLines: g.maxLines}
		if got := c.Len(); got != g.want {
			t.Errorf("Bytes{len=%d, chunk=%d, maxLines=%d}.Len() = %d, want %d", g.dataLen, g.chunkWidth, g.maxLines, got, g.want)
		}
	}
}

func TestBytesTokenizeChunking(t *testing.T) {
	c := block.Bytes{Data: []byte{0x01, 0x02, 0x03, 0x04, 0x05}, ChunkWidth: 2, AddrWidth: 4}
	b := block.Block{Addr: 0x1000, Content: c}
	var s token.Stream
	b.Tokenize(&s)
	// 5 bytes chunked 2-wide -> 3 lines: [01 02] [03 04] [05].
	got := s.String()
	for _, want := range []string{"0102", "0304", "05"} {
		if !strings.Contains(got, want) {
			t.Errorf("Tokenize() = %q, missing chunk %q", got, want)
		}
	}
}
