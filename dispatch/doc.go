// Package dispatch executes decoded instructions.
//
// Handlers are grouped in per-category tables indexed by isa.Mnemonic, and
// operate on the CPU through the Context interface. Each handler returns a
// one line description of its effect for the execution trace.
package dispatch
