package main

import (
	"debug/elf"
	"debug/macho"
	"debug/pe"
	"strings"

	"github.com/mewmew/blockview/addr"
	"github.com/mewmew/blockview/decoder"
	decoderx86 "github.com/mewmew/blockview/decoder/x86"
	"github.com/mewmew/blockview/engine"
	"github.com/mewmew/blockview/section"
	"github.com/mewmew/blockview/symbol"
	"github.com/pkg/errors"
)

// program is a binary executable opened for block viewing: the section
// map, decoder and symbol index the engine reads from, wired together the
// same way the teacher's lifter wires a pe.File into a decodeCodeSection
// pass.
type program struct {
	sections section.Map
	decoder  decoder.View
	symbols  symbol.Index
	engine   *engine.Engine
}

// newProgram opens path, sniffing the object-file format, and builds the
// engine's three collaborators.
func newProgram(path string) (*program, error) {
	dbg.Printf("newProgram(path = %q)", path)

	if f, err := pe.Open(path); err == nil {
		return newPEProgram(f)
	}
	if f, err := elf.Open(path); err == nil {
		return newELFProgram(f)
	}
	if f, err := macho.Open(path); err == nil {
		return newMachOProgram(f)
	}
	return nil, errors.Errorf("%q is not a recognized PE, ELF or Mach-O image", path)
}

func newPEProgram(f *pe.File) (*program, error) {
	defer f.Close()
	optHdr32, is32 := f.OptionalHeader.(*pe.OptionalHeader32)
	optHdr64, is64 := f.OptionalHeader.(*pe.OptionalHeader64)
	var base addr.Addr
	mode := decoderx86.Mode64
	switch {
	case is32:
		base = addr.Addr(optHdr32.ImageBase)
		mode = decoderx86.Mode32
	case is64:
		base = addr.Addr(optHdr64.ImageBase)
	default:
		return nil, errors.New("PE file has no recognized optional header")
	}

	sections, err := section.FromPE(f, base)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	syms := symbol.FromPE(f, base)
	dec := decoderx86.New(sections, mode)
	return &program{
		sections: sections,
		decoder:  dec,
		symbols:  syms,
		engine:   engine.New(sections, dec, syms),
	}, nil
}

func newELFProgram(f *elf.File) (*program, error) {
	defer f.Close()
	mode := decoderx86.Mode64
	if f.Class == elf.ELFCLASS32 {
		mode = decoderx86.Mode32
	}
	if !isX86(f.Machine) {
		warn.Printf("machine %v is not x86; decoding will likely fail", f.Machine)
	}

	sections, err := section.FromELF(f)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	syms := symbol.FromELF(f)
	dec := decoderx86.New(sections, mode)
	return &program{
		sections: sections,
		decoder:  dec,
		symbols:  syms,
		engine:   engine.New(sections, dec, syms),
	}, nil
}

func newMachOProgram(f *macho.File) (*program, error) {
	defer f.Close()
	mode := decoderx86.Mode64
	if f.Cpu == macho.Cpu386 {
		mode = decoderx86.Mode32
	}

	sections, err := section.FromMachO(f)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	// debug/macho does not expose a ready-made function symbol table the
	// way debug/pe and debug/elf do; an empty index still lets the engine
	// run, it simply never emits Label blocks.
	syms := symbol.Empty{}
	dec := decoderx86.New(sections, mode)
	return &program{
		sections: sections,
		decoder:  dec,
		symbols:  syms,
		engine:   engine.New(sections, dec, syms),
	}, nil
}

func isX86(m elf.Machine) bool {
	return strings.Contains(m.String(), "386") || strings.Contains(m.String(), "X86")
}
