// Package decoder defines the contract the block engine uses to query
// decoded instructions and decoder errors. The engine never decodes bytes
// itself; it only asks a View "what's at this address".
package decoder

import (
	"github.com/mewmew/blockview/addr"
	"github.com/mewmew/blockview/symbol"
	"github.com/mewmew/blockview/token"
)

// ErrorKind classifies why an address failed to decode.
type ErrorKind int

// Recognized decoder error kinds.
const (
	ErrUnknown ErrorKind = iota
	ErrBadInstruction
	ErrShortBuffer
)

// String implements fmt.Stringer, used as the debug rendering of an Error
// block's `<...>` suffix.
func (k ErrorKind) String() string {
	switch k {
	case ErrBadInstruction:
		return "BadInstruction"
	case ErrShortBuffer:
		return "ShortBuffer"
	default:
		return "Unknown"
	}
}

// DecodeError is a decoder error at a given address: data, not a Go error.
type DecodeError struct {
	Kind ErrorKind
	Size int
}

// Instruction is an opaque handle to a successfully decoded instruction.
// Concrete decoders embed their own representation behind this interface.
type Instruction interface {
	// Width returns the instruction's length in bytes.
	Width() int
}

// View is the external decoder service the engine consumes.
type View interface {
	// InstructionAt returns the decoded instruction at a, if any.
	InstructionAt(a addr.Addr) (Instruction, bool)
	// InstructionTokens renders inst as a token list, given a symbol index
	// to resolve any addresses the instruction references.
	InstructionTokens(inst Instruction, index symbol.Index) []token.Token
	// ErrorAt returns the decoder error at a, if any.
	ErrorAt(a addr.Addr) (DecodeError, bool)
	// MaxInstructionWidth returns the widest instruction this decoder can
	// ever produce, used only to size the hex byte column.
	MaxInstructionWidth() int
}
