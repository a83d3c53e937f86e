// Package section provides the section map the block engine reads sections
// and raw bytes from.
package section

import (
	"github.com/mewmew/blockview/addr"
	"github.com/pkg/errors"
)

// Kind tags the purpose of a section.
type Kind int

// Recognized section kinds.
const (
	KindUnknown Kind = iota
	KindCode
	KindData
	KindBSS
)

// String returns the name used when rendering a section marker, e.g.
// "{Code}".
func (k Kind) String() string {
	switch k {
	case KindCode:
		return "Code"
	case KindData:
		return "Data"
	case KindBSS:
		return "BSS"
	default:
		return "Unknown"
	}
}

// Section is a named half-open address range within a binary image.
//
// Invariant: Start <= Addr <= End. Addr may differ from Start when a leading
// region is conceptually skipped (e.g. a header reserved within the section).
// End is exclusive.
type Section struct {
	Name  string
	Kind  Kind
	Start addr.Addr
	End   addr.Addr
	Addr  addr.Addr

	reader ByteReader
}

// ByteReader reads raw bytes from the underlying image, addressed
// absolutely.
type ByteReader interface {
	ReadBytes(a addr.Addr, n int) ([]byte, error)
}

// New returns a section description backed by r.
func New(name string, kind Kind, start, end, startAddr addr.Addr, r ByteReader) Section {
	return Section{
		Name:   name,
		Kind:   kind,
		Start:  start,
		End:    end,
		Addr:   startAddr,
		reader: r,
	}
}

// Bytes reads exactly n bytes starting at a. It is an error to request bytes
// outside of [s.Start, s.End).
func (s Section) Bytes(a addr.Addr, n int) ([]byte, error) {
	if a < s.Start || a+addr.Addr(n) > s.End {
		return nil, errors.Errorf("section %q: requested range [%v, %v) outside of [%v, %v)", s.Name, a, a+addr.Addr(n), s.Start, s.End)
	}
	bs, err := s.reader.ReadBytes(a, n)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(bs) != n {
		return nil, errors.Errorf("section %q: short read at %v: requested %d bytes, got %d", s.Name, a, n, len(bs))
	}
	return bs, nil
}

// Contains reports whether a lies within s's half-open range.
func (s Section) Contains(a addr.Addr) bool {
	return s.Start <= a && a < s.End
}

// Map is an ordered collection of non-overlapping sections.
type Map interface {
	// Sections returns every section, ordered by Start.
	Sections() []Section
	// ByAddr returns the section containing a, or an error if none does.
	ByAddr(a addr.Addr) (Section, error)
}

// SliceMap is the simplest Map: a plain, ascending-sorted slice of sections.
type SliceMap []Section

// Sections implements Map.
func (m SliceMap) Sections() []Section {
	return m
}

// ByAddr implements Map.
func (m SliceMap) ByAddr(a addr.Addr) (Section, error) {
	for _, s := range m {
		if s.Contains(a) {
			return s, nil
		}
	}
	return Section{}, errors.Errorf("no section contains address %v", a)
}
