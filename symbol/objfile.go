package symbol

import (
	"debug/elf"
	"debug/pe"

	"github.com/mewmew/blockview/addr"
)

// peDTypeFunction is the IMAGE_SYM_DTYPE_FUNCTION complex type, held in the
// high nibble of a COFF symbol's Type field (cmd/link/internal/loadpe).
const peDTypeFunction = 2

// FromPE builds a Table from the COFF function symbols of an opened PE
// file. The export directory is not read.
func FromPE(f *pe.File, imageBase addr.Addr) *Table {
	entries := make(map[addr.Addr]string)
	for _, sym := range f.Symbols {
		if sym.Type&0xf0>>4 != peDTypeFunction {
			continue
		}
		if int(sym.SectionNumber) < 1 || int(sym.SectionNumber) > len(f.Sections) {
			continue
		}
		sect := f.Sections[sym.SectionNumber-1]
		a := imageBase + addr.Addr(sect.VirtualAddress) + addr.Addr(sym.Value)
		entries[a] = sym.Name
	}
	return NewTable(entries)
}

// FromELF builds a Table from the function symbols of an opened ELF file.
func FromELF(f *elf.File) *Table {
	entries := make(map[addr.Addr]string)
	syms, err := f.Symbols()
	if err != nil {
		// Stripped binary: fall back to the dynamic symbol table.
		syms, _ = f.DynamicSymbols()
	}
	for _, sym := range syms {
		if elf.ST_TYPE(sym.Info) != elf.STT_FUNC || sym.Value == 0 {
			continue
		}
		entries[addr.Addr(sym.Value)] = sym.Name
	}
	return NewTable(entries)
}
