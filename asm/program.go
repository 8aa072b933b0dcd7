package asm

import (
	"errors"
	"iter"

	"github.com/ezrec/realmode/isa"
)

// Program is the result of assembly.
type Program struct {
	Instructions []isa.Instruction // Instructions, addressed by offset.
	Labels       map[string]uint16 // Map of resolved labels to offsets.
	Errors       []*ErrSyntax      // Every error, in the order found.
}

// Debug locates the instruction covering an offset.
type Debug struct {
	*isa.Instruction
	Index int // Byte index within the instruction.
}

// Err joins all of the errors, or returns nil.
func (prog *Program) Err() error {
	errs := make([]error, len(prog.Errors))
	for n, err := range prog.Errors {
		errs[n] = err
	}
	return errors.Join(errs...)
}

// Debug returns the instruction covering the offset, if any.
func (prog *Program) Debug(offset uint16) (dbg Debug) {
	for n := range prog.Instructions {
		in := &prog.Instructions[n]
		start := in.Address
		if uint32(offset) >= start && uint32(offset) < start+uint32(in.Size()) {
			dbg = Debug{
				Instruction: in,
				Index:       int(uint32(offset) - start),
			}
			break
		}
	}

	return
}

// Codes iterates over every encoded byte with its offset.
func (prog *Program) Codes() iter.Seq2[uint16, byte] {
	return func(yield func(offset uint16, code byte) bool) {
		for _, in := range prog.Instructions {
			for n, code := range in.Bytes {
				if !yield(uint16(in.Address)+uint16(n), code) {
					return
				}
			}
		}
	}
}

// Bytes returns the flat byte image of the program.
func (prog *Program) Bytes() (bins []byte) {
	for _, code := range prog.Codes() {
		bins = append(bins, code)
	}

	return
}
