// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"log"
	"slices"

	"github.com/ezrec/realmode/dispatch"
	"github.com/ezrec/realmode/isa"
	"github.com/ezrec/realmode/memory"
)

const (
	RUN_STEPS_DEFAULT = 10000 // Step budget of Run, when none is given.
)

// Cpu is the simulation context of the real-mode CPU.
//
// The exported fields may be edited directly between steps.
type Cpu struct {
	Verbose    bool // Set to enable verbose logging.
	TraceLimit int  // Maximum trace records kept, or 0 for unlimited.

	State   isa.State         // Registers, flags and run state.
	Memory  *memory.Memory    // Physical memory.
	Program []isa.Instruction // Loaded program, with physical addresses.
	Trace   []*Trace          // Step records, oldest first.

	index map[uint32]*isa.Instruction // Physical address to instruction.
}

// NewCpu creates a new CPU, in the power-on state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		State:  isa.NewState(),
		Memory: memory.NewMemory(),
		index:  map[uint32]*isa.Instruction{},
	}

	return
}

// Reset the CPU state.
// - Registers and flags to power-on values.
// - Clears memory, the program and the trace.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.State = isa.NewState()
	cpu.Memory.Reset()
	cpu.Program = nil
	cpu.Trace = nil
	clear(cpu.index)
}

// LoadProgram loads assembled instructions at CS:0000.
//
// Memory and the trace are cleared, and IP, the halted state and the
// cycle counter are reset. All other registers are kept.
func (cpu *Cpu) LoadProgram(instructions []isa.Instruction) {
	cpu.Memory.Reset()
	cpu.Trace = nil
	cpu.Program = slices.Clone(instructions)
	cpu.index = make(map[uint32]*isa.Instruction, len(instructions))

	cpu.State.Halted = false
	cpu.State.Cycles = 0
	cpu.State.SetIp(0)

	cs := cpu.State.Get(isa.REG_CS)

	var offset uint16
	for n := range cpu.Program {
		in := &cpu.Program[n]
		address := memory.PhysicalAddress(cs, offset)
		in.Address = address
		cpu.index[address] = in
		cpu.Memory.Load(address, in.Bytes)
		offset += uint16(in.Size())

		if cpu.Verbose {
			log.Printf("cpu: load %05X: %v", address, in)
		}
	}
}

// Fetch returns the instruction mapped at a physical address.
func (cpu *Cpu) Fetch(address uint32) (in *isa.Instruction, ok bool) {
	in, ok = cpu.index[address&memory.ADDRESS_MASK]
	return
}

// Step executes a single instruction, and returns its trace.
// Returns nil if the CPU is halted, or if no instruction is mapped at CS:IP,
// which halts the CPU.
func (cpu *Cpu) Step() (trace *Trace) {
	if cpu.State.Halted {
		return
	}

	cs := cpu.State.Get(isa.REG_CS)
	ip := cpu.State.Ip()
	fetch := memory.PhysicalAddress(cs, ip)

	in, ok := cpu.Fetch(fetch)
	if !ok {
		if cpu.Verbose {
			log.Printf("cpu: %05X: no instruction", fetch)
		}
		cpu.State.Halted = true
		return
	}

	trace = &Trace{
		Instruction: in,
		Text:        in.String(),
		Before:      cpu.State,
	}

	cpu.Memory.ClearAccessLog()

	var opcode byte
	if len(in.Bytes) > 0 {
		opcode = in.Bytes[0]
	}

	trace.bus(BUS_FETCH, LINE_ADDRESS, fetch, 0, f("CPU sends address"), DIR_TO_MEMORY)
	trace.bus(BUS_FETCH, LINE_DATA, fetch, uint16(opcode),
		f("%v (opcode 0x%02X)", trace.Text, opcode), DIR_TO_CPU)
	trace.Addresses = append(trace.Addresses, AddressCalculation{
		Segment:  cs,
		Offset:   ip,
		Physical: fetch,
		Formula:  f("CS:IP = (0x%X × 16) + 0x%X = 0x%X", cs, ip, fetch),
	})

	if in.Size() > 1 {
		address := (fetch + 1) & memory.ADDRESS_MASK
		value := uint16(in.Bytes[1])
		if in.Size() > 2 {
			value |= uint16(in.Bytes[2]) << 8
		}

		trace.bus(BUS_FETCH, LINE_ADDRESS, address, 0, f("CPU sends address"), DIR_TO_MEMORY)
		trace.bus(BUS_FETCH, LINE_DATA, address, value, f("read word (16 bits)"), DIR_TO_CPU)
		trace.Addresses = append(trace.Addresses, AddressCalculation{
			Segment:  cs,
			Offset:   ip + 1,
			Physical: address,
			Formula:  f("address: 0x%X | value: 0x%X", address, value),
		})
	}

	ctx := &execContext{cpu: cpu, in: in}
	desc, err := cpu.execute(ctx)
	if err != nil {
		cpu.State.Halted = true
		trace.Fault = err
		desc = f("ERROR: %v", err)
	}
	trace.Description = desc
	trace.ChangedRegisters = ctx.regs.Items()
	trace.ChangedFlags = ctx.flags.Items()

	trace.After = cpu.State
	cpu.State.Cycles++

	trace.Accesses = cpu.Memory.Accesses()
	for _, access := range trace.Accesses {
		trace.access(access)
	}

	if cpu.Verbose {
		log.Printf("cpu: %05X: %v: %v", fetch, trace.Text, trace.Description)
	}

	cpu.Trace = append(cpu.Trace, trace)
	if cpu.TraceLimit > 0 && len(cpu.Trace) > cpu.TraceLimit {
		cpu.Trace = slices.Delete(cpu.Trace, 0, len(cpu.Trace)-cpu.TraceLimit)
	}

	return
}

// execute dispatches the instruction, converting a panic into an error.
func (cpu *Cpu) execute(ctx *execContext) (desc string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ErrPanic{Value: r}
		}
	}()

	desc, err = dispatch.Dispatch(ctx)
	return
}

// Run steps until the CPU halts, or maxSteps steps have been taken.
// If maxSteps <= 0, RUN_STEPS_DEFAULT is used. Returns the steps taken.
func (cpu *Cpu) Run(maxSteps int) (steps int) {
	if maxSteps <= 0 {
		maxSteps = RUN_STEPS_DEFAULT
	}

	for !cpu.State.Halted && steps < maxSteps {
		cpu.Step()
		steps++
	}

	return
}

// Register returns the value of a 16-bit register.
func (cpu *Cpu) Register(reg isa.Register) (value uint16, err error) {
	if !reg.Wide() {
		err = dispatch.ErrRegisterInvalid(reg.String())
		return
	}

	value = cpu.State.Get(reg)
	return
}

// SetRegister sets the value of a 16-bit register.
func (cpu *Cpu) SetRegister(reg isa.Register, value uint16) (err error) {
	if !reg.Wide() {
		err = dispatch.ErrRegisterInvalid(reg.String())
		return
	}

	cpu.State.Set(reg, value)
	return
}

// GetMemoryByte reads a byte, with logging.
func (cpu *Cpu) GetMemoryByte(address uint32) byte {
	return cpu.Memory.ReadByteAt(address)
}

// SetMemoryByte writes a byte, with logging.
func (cpu *Cpu) SetMemoryByte(address uint32, value byte) {
	cpu.Memory.WriteByteAt(address, value)
}

// GetMemoryWord reads a little-endian word, with logging.
func (cpu *Cpu) GetMemoryWord(address uint32) uint16 {
	return cpu.Memory.ReadWord(address)
}

// SetMemoryWord writes a little-endian word, with logging.
func (cpu *Cpu) SetMemoryWord(address uint32, value uint16) {
	cpu.Memory.WriteWord(address, value)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for n := range isa.REG_WIDE_COUNT {
		reg := isa.Register(n)
		text += fmt.Sprintf("% 6s: %04X\n", reg, cpu.State.Get(reg))
	}

	for n := range isa.FLAG_COUNT {
		flag := isa.Flag(n)
		val := 0
		if cpu.State.Flags.Get(flag) {
			val = 1
		}
		text += fmt.Sprintf("% 6s: %d\n", flag, val)
	}

	text += fmt.Sprintf("% 6s: %v\n", "halted", cpu.State.Halted)
	text += fmt.Sprintf("% 6s: %d\n", "cycles", cpu.State.Cycles)

	return
}
