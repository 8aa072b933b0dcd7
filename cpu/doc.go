// Package cpu implements the real-mode CPU engine.
//
// The CPU owns its registers, flags and a 1 MiB memory. Programs from the
// assembler are loaded at CS:0000, and executed one instruction per Step.
// Every step produces a Trace: the state before and after, the changed
// registers and flags, the bus operations of the instruction fetch and of
// every memory access, and a description of the instruction's effect.
//
// Runtime faults, such as a division by zero, halt the CPU and are recorded
// in the trace; Step never returns an error.
package cpu
