package dispatch

import (
	"github.com/ezrec/realmode/isa"
)

// XCHG is assembled, but has no handler.
var transfer = [isa.MNEMONIC_COUNT]Handler{
	isa.OP_MOV:  execMov,
	isa.OP_PUSH: execPush,
	isa.OP_POP:  execPop,
}

func execMov(ctx Context) (desc string, err error) {
	in := ctx.Instruction()

	dst, err := destination(ctx, 0)
	if err != nil {
		return
	}
	src := in.Operand(1)

	value, err := ctx.OperandValue(src)
	if err != nil {
		return
	}

	err = ctx.WriteRegister(dst, value)
	if err != nil {
		return
	}
	ctx.MarkRegister(dst)
	ctx.NextIp()

	desc = f("MOV %v, %v → %v = 0x%X", dst, ctx.FormatOperand(src), dst, value)
	return
}

func execPush(ctx Context) (desc string, err error) {
	op := ctx.Instruction().Operand(0)

	value, err := ctx.OperandValue(op)
	if err != nil {
		return
	}

	ctx.Push(value)
	ctx.MarkRegister(isa.REG_SP)
	ctx.NextIp()

	desc = f("PUSH %v → stack: 0x%X", ctx.FormatOperand(op), value)
	return
}

func execPop(ctx Context) (desc string, err error) {
	dst, err := destination(ctx, 0)
	if err != nil {
		return
	}

	value := ctx.Pop()

	err = ctx.WriteRegister(dst, value)
	if err != nil {
		return
	}
	ctx.MarkRegister(dst)
	ctx.MarkRegister(isa.REG_SP)
	ctx.NextIp()

	desc = f("POP %v → %v = 0x%X", dst, dst, value)
	return
}
