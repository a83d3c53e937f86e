// Package engine implements the disassembly block engine: the Boundary
// Computer and the Block Materializer described in the module's design
// notes. It is the hard part of this repository; every other package
// exists to give the engine something real to read from.
package engine

import (
	"sync"

	"github.com/mewmew/blockview/addr"
	"github.com/mewmew/blockview/block"
	"github.com/mewmew/blockview/config"
	"github.com/mewmew/blockview/decoder"
	"github.com/mewmew/blockview/hexutil"
	"github.com/mewmew/blockview/section"
	"github.com/mewmew/blockview/symbol"
	"github.com/pkg/errors"
)

// Engine ties together the three read-only views the block engine
// consumes. It holds no mutable state of its own and is safe for
// concurrent use by multiple callers, provided none of them mutate the
// underlying section map, decoder or symbol index while a call is in
// flight.
type Engine struct {
	Sections section.Map
	Decoder  decoder.View
	Symbols  symbol.Index
	Config   config.Config
}

// New returns an Engine reading from the given collaborators, rendering
// with config.Default() knobs derived from the decoder's own instruction
// width.
func New(sections section.Map, dec decoder.View, syms symbol.Index) *Engine {
	return &Engine{
		Sections: sections,
		Decoder:  dec,
		Symbols:  syms,
		Config:   config.Default().Derive(dec.MaxInstructionWidth()),
	}
}

// NewWithConfig returns an Engine rendering with cfg instead of the
// defaults, deriving HexTruncateWidth if cfg didn't already set one.
func NewWithConfig(sections section.Map, dec decoder.View, syms symbol.Index, cfg config.Config) *Engine {
	if cfg.HexTruncateWidth <= 0 {
		cfg = cfg.Derive(dec.MaxInstructionWidth())
	}
	return &Engine{Sections: sections, Decoder: dec, Symbols: syms, Config: cfg}
}

// FatalError wraps one of the engine-local fatal error kinds, so callers can
// distinguish "the binary is inconsistent" from an ordinary wrapped error.
type FatalError struct {
	Kind error
	Addr addr.Addr
	// Cause optionally carries the lower-level error (e.g. the short-read
	// reported by section.Section.Bytes) that triggered Kind.
	Cause error
}

func (e *FatalError) Error() string {
	if e.Cause != nil {
		return errors.Wrapf(e.Cause, "%v at address %v", e.Kind, e.Addr).Error()
	}
	return errors.Wrapf(e.Kind, "at address %v", e.Addr).Error()
}

func (e *FatalError) Unwrap() error { return e.Kind }

// Engine-local fatal error kinds. Wrap one of these in a *FatalError to
// report it.
var (
	// ErrOutOfRange: ParseBlocks was called on an address with no
	// containing section and no section boundary at that address.
	ErrOutOfRange = errors.New("address-out-of-range")
	// ErrInvariantViolation: the decoder returned a zero-width item, or
	// reported both an instruction and an error at the same address.
	ErrInvariantViolation = errors.New("decoder-invariant-violation")
	// ErrShortRead: a section failed to return the requested byte count.
	ErrShortRead = errors.New("bytes-short-read")
)

// ComputeBlockBoundaries walks every section in the engine's section map on
// its own goroutine and returns the sorted, deduplicated, merged list of
// addresses at which a block begins.
//
// Concurrency: one goroutine per section (fork-join); the caller blocks
// until every goroutine has finished, then performs a single-threaded sort
// and dedup pass. If any goroutine hits a *FatalError, the whole
// computation fails and partial results are discarded — this is the
// engine's only form of cancellation.
func (e *Engine) ComputeBlockBoundaries() ([]addr.Addr, error) {
	sections := e.Sections.Sections()

	type result struct {
		boundaries []addr.Addr
		err        error
	}
	results := make([]result, len(sections))

	var wg sync.WaitGroup
	wg.Add(len(sections))
	for i, sec := range sections {
		i, sec := i, sec
		go func() {
			defer wg.Done()
			bs, err := e.computeSectionBoundaries(sec)
			results[i] = result{boundaries: bs, err: err}
		}()
	}
	wg.Wait()

	var merged []addr.Addr
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		merged = append(merged, r.boundaries...)
	}
	return addr.SortUnique(merged), nil
}

// computeSectionBoundaries is the per-section boundary walk. It runs on its
// own goroutine and touches only its own local state plus the engine's
// read-only views.
func (e *Engine) computeSectionBoundaries(sec section.Section) ([]addr.Addr, error) {
	var boundaries []addr.Addr
	boundaries = append(boundaries, sec.Start)

	a := sec.Addr
	for {
		if a == sec.End {
			break
		}

		if _, ok := e.Symbols.FunctionAt(a); ok {
			boundaries = append(boundaries, a)
		}

		inst, hasInst := e.Decoder.InstructionAt(a)
		derr, hasErr := e.Decoder.ErrorAt(a)
		if hasInst && hasErr {
			return nil, &FatalError{Kind: ErrInvariantViolation, Addr: a}
		}

		if hasInst {
			w := inst.Width()
			if w <= 0 {
				return nil, &FatalError{Kind: ErrInvariantViolation, Addr: a}
			}
			boundaries = append(boundaries, a)
			a += addr.Addr(w)
			continue
		}

		if hasErr {
			if derr.Size <= 0 {
				return nil, &FatalError{Kind: ErrInvariantViolation, Addr: a}
			}
			boundaries = append(boundaries, a)
			a += addr.Addr(derr.Size)
			continue
		}

		baddr := scanByteRun(e.Decoder, e.Symbols, sec, a)
		if baddr > a {
			boundaries = append(boundaries, a)
		}
		a = baddr
	}

	boundaries = append(boundaries, sec.End)
	return boundaries, nil
}

// scanByteRun advances from start toward sec.End, stopping at the first of:
// the section end, an instruction start, an error start, or a labelled
// address other than start itself. It is shared by the Boundary Computer
// and the Block Materializer, per the design notes' "factor it into a
// shared helper" guidance.
func scanByteRun(dec decoder.View, syms symbol.Index, sec section.Section, start addr.Addr) addr.Addr {
	baddr := start
	for {
		if baddr == sec.End {
			break
		}
		if _, ok := dec.InstructionAt(baddr); ok {
			break
		}
		if _, ok := dec.ErrorAt(baddr); ok {
			break
		}
		if baddr != start {
			if _, ok := syms.FunctionAt(baddr); ok {
				break
			}
		}
		baddr++
	}
	return baddr
}

// ParseBlocks produces the ordered list of blocks to display at addr. addr
// is expected to be a boundary produced by ComputeBlockBoundaries, though
// ParseBlocks is total on any address that either lies within a section or
// marks a section's start or end.
func (e *Engine) ParseBlocks(a addr.Addr) ([]block.Block, error) {
	var blocks []block.Block

	var startSection, endSection *section.Section
	for _, sec := range e.Sections.Sections() {
		sec := sec
		if sec.Start == a {
			startSection = &sec
		}
		if sec.End == a {
			endSection = &sec
		}
	}

	switch {
	case startSection != nil && endSection != nil:
		blocks = append(blocks,
			block.Block{Addr: a, Content: block.SectionEnd{Section: *endSection}},
			block.Block{Addr: a, Content: block.SectionStart{Section: *startSection}},
		)
	case startSection != nil:
		blocks = append(blocks, block.Block{Addr: a, Content: block.SectionStart{Section: *startSection}})
	case endSection != nil:
		blocks = append(blocks, block.Block{Addr: a, Content: block.SectionEnd{Section: *endSection}})
	}

	sec, err := e.Sections.ByAddr(a)
	if err != nil {
		if len(blocks) == 0 {
			return nil, &FatalError{Kind: ErrOutOfRange, Addr: a}
		}
		// a is exactly the trailing edge of the address space: only the
		// section marker(s) above apply, there is no real content here.
		return blocks, nil
	}

	real, err := e.parseRealBlock(sec, a)
	if err != nil {
		return nil, err
	}
	if real != nil {
		if sym, ok := e.Symbols.FunctionAt(a); ok {
			blocks = append(blocks, block.Block{Addr: a, Content: block.Label{Symbol: sym}})
		}
		blocks = append(blocks, *real)
	}

	return blocks, nil
}

// parseRealBlock classifies the address within its containing section as an
// Instruction, Error or Bytes block.
func (e *Engine) parseRealBlock(sec section.Section, a addr.Addr) (*block.Block, error) {
	cfg := e.Config
	hexWidth := cfg.HexTruncateWidth
	if hexWidth <= 0 {
		hexWidth = e.Decoder.MaxInstructionWidth()*3 + 1
	}

	if inst, ok := e.Decoder.InstructionAt(a); ok {
		if _, hasErr := e.Decoder.ErrorAt(a); hasErr {
			return nil, &FatalError{Kind: ErrInvariantViolation, Addr: a}
		}
		w := inst.Width()
		if w <= 0 {
			return nil, &FatalError{Kind: ErrInvariantViolation, Addr: a}
		}
		bs, err := sec.Bytes(a, w)
		if err != nil {
			return nil, &FatalError{Kind: ErrShortRead, Addr: a, Cause: err}
		}
		toks := e.Decoder.InstructionTokens(inst, e.Symbols)
		hexStr := hexutil.EncodeTruncated(bs, hexWidth, true)
		b := block.Block{Addr: a, Content: block.Instruction{Inst: inst, Toks: toks, Bytes: hexStr, AddrWidth: cfg.AddressColumnWidth}}
		return &b, nil
	}

	if derr, ok := e.Decoder.ErrorAt(a); ok {
		bs, err := sec.Bytes(a, derr.Size)
		if err != nil {
			return nil, &FatalError{Kind: ErrShortRead, Addr: a, Cause: err}
		}
		hexStr := hexutil.EncodeTruncated(bs, hexWidth, true)
		b := block.Block{Addr: a, Content: block.Error{Kind: derr.Kind, Bytes: hexStr, AddrWidth: cfg.AddressColumnWidth}}
		return &b, nil
	}

	baddr := scanByteRun(e.Decoder, e.Symbols, sec, a)
	if baddr <= a {
		return nil, nil
	}
	bs, err := sec.Bytes(a, int(baddr-a))
	if err != nil {
		return nil, &FatalError{Kind: ErrShortRead, Addr: a, Cause: err}
	}
	b := block.Block{Addr: a, Content: block.Bytes{
		Data:       bs,
		ChunkWidth: cfg.BytesChunkWidth,
		MaxLines:   cfg.BytesMaxLines,
		AddrWidth:  cfg.AddressColumnWidth,
	}}
	return &b, nil
}
