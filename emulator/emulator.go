// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/ezrec/realmode/asm"
	"github.com/ezrec/realmode/cpu"
	"github.com/ezrec/realmode/internal"
	"github.com/ezrec/realmode/isa"
	"github.com/ezrec/realmode/memory"
)

const (
	PARAGRAPH_SIZE = 16 // Bytes per segment increment.
)

var _emulator_defines = map[string]string{
	"PARAGRAPH_SIZE": fmt.Sprintf("%v", PARAGRAPH_SIZE),
}

// Emulator state. Assembler + CPU + the loaded program.
type Emulator struct {
	Verbose   bool           // If set, enables verbose logging.
	*cpu.Cpu                 // Reference to the CPU simulation.
	Assembler *asm.Assembler // Assembler used by Load.
	Program   *asm.Program   // Reference to the currently loaded program.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:       cpu.NewCpu(),
		Assembler: &asm.Assembler{},
		Program:   &asm.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines available to
// programs.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Assembler.Defines(),
	)
}

// Load assembles a program, and loads it into the CPU. A program with any
// assembly error is not loaded.
func (emu *Emulator) Load(input io.Reader) (err error) {
	for key, value := range maps.All(_emulator_defines) {
		emu.Assembler.Predefine(key, value)
	}
	emu.Assembler.Verbose = emu.Verbose

	prog, err := emu.Assembler.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.LoadProgram(prog.Instructions)

	return
}

// Reset the CPU, and reload the current program.
func (emu *Emulator) Reset() {
	emu.Cpu.Reset()
	emu.Cpu.LoadProgram(emu.Program.Instructions)
}

// LineNo returns the source line of the instruction at CS:IP, or 0.
func (emu *Emulator) LineNo() int {
	in, ok := emu.Cpu.Fetch(emu.Address())
	if !ok {
		return 0
	}

	return in.LineNo
}

// Address returns the physical address of CS:IP.
func (emu *Emulator) Address() uint32 {
	state := &emu.Cpu.State
	return memory.PhysicalAddress(state.Get(isa.REG_CS), state.Ip())
}

// Tick performs a single step of the emulator. done is set once the CPU
// has halted. A runtime fault is returned as an *ErrRuntime.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()

	trace := emu.Cpu.Step()
	done = emu.Cpu.State.Halted
	if trace == nil {
		return
	}

	if trace.Fault != nil {
		err = &ErrRuntime{LineNo: lineno, Err: trace.Fault}
		return
	}

	return
}

// Run ticks until the CPU halts. If maxSteps is reached first, ErrStepLimit
// is returned. If maxSteps <= 0, cpu.RUN_STEPS_DEFAULT is used.
func (emu *Emulator) Run(maxSteps int) (steps int, err error) {
	if maxSteps <= 0 {
		maxSteps = cpu.RUN_STEPS_DEFAULT
	}

	for steps < maxSteps {
		var done bool
		done, err = emu.Tick()
		steps++
		if err != nil || done {
			return
		}
	}

	err = ErrStepLimit
	return
}

// Listing writes the disassembly of the loaded program.
func (emu *Emulator) Listing(w io.Writer) (err error) {
	for _, in := range emu.Cpu.Program {
		_, err = fmt.Fprintf(w, "%05X  %-9s %4d  %v\n", in.Address, in.Hex(), in.LineNo, in.Disassemble())
		if err != nil {
			return
		}
	}

	return
}
