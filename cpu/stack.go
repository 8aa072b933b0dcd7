package cpu

import (
	"github.com/ezrec/realmode/isa"
	"github.com/ezrec/realmode/memory"
)

// push pre-decrements SP by 2, and writes the word at SS:SP.
func (cpu *Cpu) push(value uint16) {
	sp := cpu.State.Get(isa.REG_SP) - 2
	cpu.State.Set(isa.REG_SP, sp)

	cpu.Memory.WriteWord(memory.PhysicalAddress(cpu.State.Get(isa.REG_SS), sp), value)
}

// pop reads the word at SS:SP, and post-increments SP by 2.
func (cpu *Cpu) pop() (value uint16) {
	sp := cpu.State.Get(isa.REG_SP)
	value = cpu.Memory.ReadWord(memory.PhysicalAddress(cpu.State.Get(isa.REG_SS), sp))

	cpu.State.Set(isa.REG_SP, sp+2)
	return
}

// Peek returns the word at the top of the stack, without logging.
func (cpu *Cpu) Peek() (value uint16) {
	sp := cpu.State.Get(isa.REG_SP)
	return cpu.Memory.PeekWord(memory.PhysicalAddress(cpu.State.Get(isa.REG_SS), sp))
}
