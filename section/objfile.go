package section

import (
	"debug/elf"
	"debug/macho"
	"debug/pe"

	"github.com/mewmew/blockview/addr"
	"github.com/pkg/errors"
)

// byteReaderFunc adapts an in-memory byte slice to the ByteReader interface,
// translating an absolute address into an offset relative to base.
type byteReaderFunc struct {
	base addr.Addr
	data []byte
}

func (r byteReaderFunc) ReadBytes(a addr.Addr, n int) ([]byte, error) {
	off := int64(a) - int64(r.base)
	if off < 0 || off+int64(n) > int64(len(r.data)) {
		return nil, errors.Errorf("address %v out of range of backing data", a)
	}
	return r.data[off : off+int64(n)], nil
}

// peCodeMask marks a PE section as containing executable code, matching the
// teacher's own isExec check.
const peCodeMask = 0x00000020

// FromPE builds a section.Map from an opened PE file, classifying
// executable sections the same way the teacher's cmd/x/pe.go does.
func FromPE(f *pe.File, imageBase addr.Addr) (Map, error) {
	var sections SliceMap
	for _, sect := range f.Sections {
		data, err := sect.Data()
		if err != nil {
			// A section with no data (e.g. pure BSS) still occupies address
			// space; treat it as zero-filled.
			data = make([]byte, sect.Size)
		}
		start := imageBase + addr.Addr(sect.VirtualAddress)
		end := start + addr.Addr(sect.Size)
		kind := KindData
		if sect.Characteristics&peCodeMask != 0 {
			kind = KindCode
		}
		sections = append(sections, New(sect.Name, kind, start, end, start, byteReaderFunc{base: start, data: data}))
	}
	return sections, nil
}

// FromELF builds a section.Map from an opened ELF file.
func FromELF(f *elf.File) (Map, error) {
	var sections SliceMap
	for _, sect := range f.Sections {
		if sect.Addr == 0 || sect.Flags&elf.SHF_ALLOC == 0 {
			// Not mapped into the process image; has no meaningful address.
			continue
		}
		data := make([]byte, sect.Size)
		if sect.Type != elf.SHT_NOBITS {
			bs, err := sect.Data()
			if err != nil {
				return nil, errors.WithStack(err)
			}
			copy(data, bs)
		}
		start := addr.Addr(sect.Addr)
		end := start + addr.Addr(sect.Size)
		kind := KindData
		if sect.Flags&elf.SHF_EXECINSTR != 0 {
			kind = KindCode
		} else if sect.Type == elf.SHT_NOBITS {
			kind = KindBSS
		}
		sections = append(sections, New(sect.Name, kind, start, end, start, byteReaderFunc{base: start, data: data}))
	}
	return sections, nil
}

// FromMachO builds a section.Map from an opened Mach-O file.
func FromMachO(f *macho.File) (Map, error) {
	var sections SliceMap
	for _, sect := range f.Sections {
		if sect.Addr == 0 || sect.Size == 0 {
			continue
		}
		data, err := sect.Data()
		if err != nil {
			data = make([]byte, sect.Size)
		}
		start := addr.Addr(sect.Addr)
		end := start + addr.Addr(sect.Size)
		kind := KindData
		const attrSomeInstructions = 0x00000400
		if sect.Flags&attrSomeInstructions != 0 {
			kind = KindCode
		}
		sections = append(sections, New(sect.Name, kind, start, end, start, byteReaderFunc{base: start, data: data}))
	}
	return sections, nil
}
