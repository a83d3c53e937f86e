// Package symbol provides the function symbol index the block engine
// queries to decide where to emit a Label block.
package symbol

import (
	"sort"

	"github.com/mewmew/blockview/addr"
)

// Symbol is an immutable function symbol, shared by reference between the
// index that owns it and every Label block that points at it.
type Symbol struct {
	addr addr.Addr
	name string
}

// NewSymbol returns a symbol named name at a.
func NewSymbol(a addr.Addr, name string) *Symbol {
	return &Symbol{addr: a, name: name}
}

// Addr returns the symbol's address.
func (s *Symbol) Addr() addr.Addr {
	return s.addr
}

// Name returns the symbol's name.
func (s *Symbol) Name() []byte {
	return []byte(s.name)
}

// Index answers "is there a function symbol at this address" queries.
type Index interface {
	// FunctionAt returns the function symbol at a, if any.
	FunctionAt(a addr.Addr) (*Symbol, bool)
}

// Table is a concrete Index backed by a sorted slice of symbols.
type Table struct {
	syms []*Symbol
}

// NewTable builds a Table from the given (address, name) pairs. Symbols are
// sorted once at construction time so lookups are O(log n).
func NewTable(entries map[addr.Addr]string) *Table {
	t := &Table{}
	for a, name := range entries {
		t.syms = append(t.syms, NewSymbol(a, name))
	}
	sort.Slice(t.syms, func(i, j int) bool {
		return t.syms[i].addr < t.syms[j].addr
	})
	return t
}

// FunctionAt implements Index.
func (t *Table) FunctionAt(a addr.Addr) (*Symbol, bool) {
	i := sort.Search(len(t.syms), func(i int) bool {
		return t.syms[i].addr >= a
	})
	if i < len(t.syms) && t.syms[i].addr == a {
		return t.syms[i], true
	}
	return nil, false
}

// Empty is the zero-value Index: it never reports a function.
type Empty struct{}

// FunctionAt implements Index.
func (Empty) FunctionAt(addr.Addr) (*Symbol, bool) {
	return nil, false
}
