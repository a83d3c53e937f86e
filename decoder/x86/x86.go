// Package x86 implements a decoder.View backed by golang.org/x/arch/x86/x86asm,
// grounded on the teacher's own x86 decoding code (disasm/x86, cmd/x).
package x86

import (
	"strings"

	"github.com/mewmew/blockview/addr"
	"github.com/mewmew/blockview/colors"
	"github.com/mewmew/blockview/decoder"
	"github.com/mewmew/blockview/section"
	"github.com/mewmew/blockview/symbol"
	"github.com/mewmew/blockview/token"
	"golang.org/x/arch/x86/x86asm"
)

// Mode selects the processor execution mode (16, 32 or 64-bit).
type Mode int

// Supported processor modes.
const (
	Mode16 Mode = 16
	Mode32 Mode = 32
	Mode64 Mode = 64
)

// maxInstructionWidth is the longest an x86 instruction encoding can be.
const maxInstructionWidth = 15

// Decoder is a decoder.View wrapping x86asm.Decode.
type Decoder struct {
	sections section.Map
	mode     Mode
}

// New returns a Decoder that reads candidate instruction bytes from
// sections, decoding in the given processor mode.
func New(sections section.Map, mode Mode) *Decoder {
	return &Decoder{sections: sections, mode: mode}
}

// inst wraps x86asm.Inst to satisfy decoder.Instruction.
type inst struct {
	x86asm.Inst
	addr addr.Addr
}

// Width implements decoder.Instruction.
func (i inst) Width() int {
	return i.Len
}

// InstructionAt implements decoder.View.
func (d *Decoder) InstructionAt(a addr.Addr) (decoder.Instruction, bool) {
	src, ok := d.candidateBytes(a)
	if !ok {
		return nil, false
	}
	x, err := x86asm.Decode(src, int(d.mode))
	if err != nil || x.Len == 0 {
		return nil, false
	}
	return inst{Inst: x, addr: a}, true
}

// ErrorAt implements decoder.View.
func (d *Decoder) ErrorAt(a addr.Addr) (decoder.DecodeError, bool) {
	src, ok := d.candidateBytes(a)
	if !ok {
		return decoder.DecodeError{}, false
	}
	if _, err := x86asm.Decode(src, int(d.mode)); err != nil {
		return decoder.DecodeError{Kind: decoder.ErrBadInstruction, Size: 1}, true
	}
	return decoder.DecodeError{}, false
}

// MaxInstructionWidth implements decoder.View.
func (d *Decoder) MaxInstructionWidth() int {
	return maxInstructionWidth
}

// InstructionTokens implements decoder.View. Control-flow instructions (the
// teacher's isTerm classification, in disasm/x86/x86.go) are tagged purple
// so a reader can spot branches at a glance; everything else uses the
// default opcode/operand coloring.
func (d *Decoder) InstructionTokens(i decoder.Instruction, index symbol.Index) []token.Token {
	xi, ok := i.(inst)
	if !ok {
		return nil
	}
	text := x86asm.GNUSyntax(xi.Inst, uint64(xi.addr), symLookup(index))
	mnemonic, operands, _ := strings.Cut(text, " ")

	mnemonicColor := colors.White
	if isTerminator(xi.Op) {
		mnemonicColor = colors.Purple
	}

	toks := []token.Token{
		{Text: token.Owned(mnemonic), Color: mnemonicColor},
	}
	if operands != "" {
		toks = append(toks,
			token.Token{Text: token.Static(" "), Color: colors.White},
			token.Token{Text: token.Owned(strings.TrimSpace(operands)), Color: colors.Gray99},
		)
	}
	return toks
}

// symLookup adapts a symbol.Index to x86asm's SymLookup, letting
// x86asm.GNUSyntax render call and jump targets by symbol name instead of
// bare hex addresses. A nil index (e.g. an instruction rendered outside of
// any program context) falls back to x86asm's own hex formatting.
func symLookup(index symbol.Index) x86asm.SymLookup {
	if index == nil {
		return nil
	}
	return func(a uint64) (string, uint64) {
		sym, ok := index.FunctionAt(addr.Addr(a))
		if !ok {
			return "", 0
		}
		return string(sym.Name()), a
	}
}

// candidateBytes returns up to maxInstructionWidth bytes starting at a,
// clamped to the end of the containing section.
func (d *Decoder) candidateBytes(a addr.Addr) ([]byte, bool) {
	sect, err := d.sections.ByAddr(a)
	if err != nil {
		return nil, false
	}
	n := maxInstructionWidth
	if remaining := int(sect.End - a); remaining < n {
		n = remaining
	}
	if n <= 0 {
		return nil, false
	}
	bs, err := sect.Bytes(a, n)
	if err != nil {
		return nil, false
	}
	return bs, true
}

// isTerminator reports whether op is a control-flow instruction, mirroring
// the teacher's isTerm classification in disasm/x86/x86.go.
func isTerminator(op x86asm.Op) bool {
	switch op {
	case x86asm.LOOP, x86asm.LOOPE, x86asm.LOOPNE:
		return true
	case x86asm.JA, x86asm.JAE, x86asm.JB, x86asm.JBE, x86asm.JCXZ, x86asm.JE,
		x86asm.JECXZ, x86asm.JG, x86asm.JGE, x86asm.JL, x86asm.JLE, x86asm.JNE,
		x86asm.JNO, x86asm.JNP, x86asm.JNS, x86asm.JO, x86asm.JP, x86asm.JRCXZ, x86asm.JS:
		return true
	case x86asm.JMP:
		return true
	case x86asm.RET:
		return true
	}
	return false
}
