package cpu

import (
	"github.com/ezrec/realmode/dispatch"
	"github.com/ezrec/realmode/internal"
	"github.com/ezrec/realmode/isa"
)

// execContext is the dispatch.Context of a single step.
type execContext struct {
	cpu *Cpu
	in  *isa.Instruction

	regs  internal.Marks[isa.Register]
	flags internal.Marks[isa.Flag]
}

var _ dispatch.Context = (*execContext)(nil)

func (ctx *execContext) Instruction() *isa.Instruction {
	return ctx.in
}

func (ctx *execContext) State() *isa.State {
	return &ctx.cpu.State
}

func (ctx *execContext) ReadRegister(reg isa.Register) (value uint16, err error) {
	return ctx.cpu.Register(reg)
}

func (ctx *execContext) WriteRegister(reg isa.Register, value uint16) (err error) {
	return ctx.cpu.SetRegister(reg, value)
}

func (ctx *execContext) UpdateFlags(value uint16) {
	fl := &ctx.cpu.State.Flags
	fl.ZF = value == 0
	fl.SF = value&0x8000 != 0
}

func (ctx *execContext) UpdateFlagsCarry(value uint16, carry bool) {
	ctx.UpdateFlags(value)
	ctx.cpu.State.Flags.CF = carry
}

func (ctx *execContext) MarkRegister(reg isa.Register) {
	ctx.regs.Mark(reg)
}

func (ctx *execContext) MarkFlag(flag isa.Flag) {
	ctx.flags.Mark(flag)
}

func (ctx *execContext) NextIp() {
	state := &ctx.cpu.State
	state.SetIp(state.Ip() + uint16(ctx.in.Size()))
	ctx.regs.Mark(isa.REG_IP)
}

func (ctx *execContext) OperandValue(op isa.Operand) (value uint16, err error) {
	switch op.Kind {
	case isa.OPERAND_REGISTER:
		value, err = ctx.cpu.Register(op.Register)
	case isa.OPERAND_IMMEDIATE:
		value = op.Value
	case isa.OPERAND_LABEL:
		err = dispatch.ErrLabelUnresolved(op.Label)
	}

	return
}

func (ctx *execContext) FormatOperand(op isa.Operand) string {
	return op.String()
}

func (ctx *execContext) Push(value uint16) {
	ctx.cpu.push(value)
}

func (ctx *execContext) Pop() (value uint16) {
	return ctx.cpu.pop()
}
