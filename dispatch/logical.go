package dispatch

import (
	"github.com/ezrec/realmode/isa"
)

var logical = [isa.MNEMONIC_COUNT]Handler{
	isa.OP_AND: execBinary(func(a, b uint16) (uint16, bool) { return a & b, false }),
	isa.OP_OR:  execBinary(func(a, b uint16) (uint16, bool) { return a | b, false }),
	isa.OP_XOR: execBinary(func(a, b uint16) (uint16, bool) { return a ^ b, false }),
	isa.OP_NOT: execUnary(func(a uint16) uint16 { return ^a }, false),
	isa.OP_CMP: execCmp,
}

// execCmp sets the flags as SUB would, without writing a result.
func execCmp(ctx Context) (desc string, err error) {
	in := ctx.Instruction()
	left := in.Operand(0)
	right := in.Operand(1)

	a, err := ctx.OperandValue(left)
	if err != nil {
		return
	}
	b, err := ctx.OperandValue(right)
	if err != nil {
		return
	}

	ctx.UpdateFlagsCarry(a-b, a < b)
	markFlags(ctx, isa.FLAG_ZF, isa.FLAG_SF, isa.FLAG_CF)
	ctx.NextIp()

	desc = f("CMP %v, %v → flags updated", ctx.FormatOperand(left), ctx.FormatOperand(right))
	return
}
