package engine_test

import (
	"github.com/mewmew/blockview/addr"
	"github.com/mewmew/blockview/decoder"
	"github.com/mewmew/blockview/symbol"
	"github.com/mewmew/blockview/token"
)

// fakeInst is a trivial decoder.Instruction of a fixed width, used so
// engine tests can exercise the boundary computer and materializer without
// a real x86 decoder.
type fakeInst struct {
	width int
}

func (i fakeInst) Width() int { return i.width }

// fakeDecoder is a decoder.View driven entirely by maps keyed by address,
// letting each test lay out exactly the instruction/error landscape a
// scenario needs.
type fakeDecoder struct {
	insts   map[addr.Addr]int // address -> width
	errs    map[addr.Addr]int // address -> width
	maxWide int
}

func newFakeDecoder() *fakeDecoder {
	return &fakeDecoder{
		insts:   make(map[addr.Addr]int),
		errs:    make(map[addr.Addr]int),
		maxWide: 15,
	}
}

func (d *fakeDecoder) withInst(a addr.Addr, width int) *fakeDecoder {
	d.insts[a] = width
	return d
}

func (d *fakeDecoder) withErr(a addr.Addr, width int) *fakeDecoder {
	d.errs[a] = width
	return d
}

func (d *fakeDecoder) InstructionAt(a addr.Addr) (decoder.Instruction, bool) {
	w, ok := d.insts[a]
	if !ok {
		return nil, false
	}
	return fakeInst{width: w}, true
}

func (d *fakeDecoder) ErrorAt(a addr.Addr) (decoder.DecodeError, bool) {
	w, ok := d.errs[a]
	if !ok {
		return decoder.DecodeError{}, false
	}
	return decoder.DecodeError{Kind: decoder.ErrBadInstruction, Size: w}, true
}

func (d *fakeDecoder) InstructionTokens(inst decoder.Instruction, index symbol.Index) []token.Token {
	return []token.Token{{Text: token.Static("nop"), Color: 0}}
}

func (d *fakeDecoder) MaxInstructionWidth() int { return d.maxWide }

// fakeSymbols is a symbol.Index driven by a fixed set of function
// addresses.
type fakeSymbols struct {
	funcs map[addr.Addr]*symbol.Symbol
}

func newFakeSymbols(names map[addr.Addr]string) *fakeSymbols {
	s := &fakeSymbols{funcs: make(map[addr.Addr]*symbol.Symbol)}
	for a, name := range names {
		s.funcs[a] = symbol.NewSymbol(a, name)
	}
	return s
}

func (s *fakeSymbols) FunctionAt(a addr.Addr) (*symbol.Symbol, bool) {
	sym, ok := s.funcs[a]
	return sym, ok
}
