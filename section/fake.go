package section

import "github.com/mewmew/blockview/addr"

// Fake returns a single-section Map backed directly by data, addressed
// starting at start. It exists so engine tests can exercise the boundary
// computer and materializer without parsing a real object file.
func Fake(name string, kind Kind, start addr.Addr, data []byte) Map {
	end := start + addr.Addr(len(data))
	return SliceMap{New(name, kind, start, end, start, byteReaderFunc{base: start, data: data})}
}
