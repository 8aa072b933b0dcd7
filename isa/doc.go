// Package isa defines the reduced 16-bit real-mode instruction set shared by
// the assembler, the dispatcher and the CPU engine.
//
// It holds the closed enumerations of mnemonics, registers and flags, the
// operand and instruction records produced by the assembler, the
// architectural State snapshot, and the fixed-width byte encoder.
package isa
