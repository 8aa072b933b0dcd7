package dispatch

import (
	"github.com/ezrec/realmode/isa"
)

var arithmetic = [isa.MNEMONIC_COUNT]Handler{
	isa.OP_ADD: execBinary(func(a, b uint16) (uint16, bool) {
		sum := uint32(a) + uint32(b)
		return uint16(sum), sum > 0xffff
	}),
	isa.OP_SUB: execBinary(func(a, b uint16) (uint16, bool) {
		return a - b, a < b
	}),
	isa.OP_INC: execUnary(func(a uint16) uint16 { return a + 1 }, true),
	isa.OP_DEC: execUnary(func(a uint16) uint16 { return a - 1 }, true),
	isa.OP_NEG: execUnary(func(a uint16) uint16 { return -a }, true),
	isa.OP_MUL: execMul,
	isa.OP_DIV: execDiv,
}

// execBinary makes a handler for 'reg, reg-or-imm' forms, whose result is
// written back to the first operand. ZF, SF and CF are updated.
func execBinary(op func(a, b uint16) (result uint16, carry bool)) Handler {
	return func(ctx Context) (desc string, err error) {
		in := ctx.Instruction()

		dst, err := destination(ctx, 0)
		if err != nil {
			return
		}
		src := in.Operand(1)

		a, err := ctx.ReadRegister(dst)
		if err != nil {
			return
		}
		b, err := ctx.OperandValue(src)
		if err != nil {
			return
		}

		result, carry := op(a, b)

		err = ctx.WriteRegister(dst, result)
		if err != nil {
			return
		}
		ctx.UpdateFlagsCarry(result, carry)

		ctx.MarkRegister(dst)
		markFlags(ctx, isa.FLAG_ZF, isa.FLAG_SF, isa.FLAG_CF)
		ctx.NextIp()

		desc = f("%v %v, %v → %v = 0x%X", in.Mnemonic, dst, ctx.FormatOperand(src), dst, result)
		return
	}
}

// execUnary makes a handler for single register forms. If flags is set,
// ZF and SF are updated from the result.
func execUnary(op func(a uint16) uint16, flags bool) Handler {
	return func(ctx Context) (desc string, err error) {
		in := ctx.Instruction()

		reg, err := destination(ctx, 0)
		if err != nil {
			return
		}

		value, err := ctx.ReadRegister(reg)
		if err != nil {
			return
		}

		value = op(value)

		err = ctx.WriteRegister(reg, value)
		if err != nil {
			return
		}

		ctx.MarkRegister(reg)
		if flags {
			ctx.UpdateFlags(value)
			markFlags(ctx, isa.FLAG_ZF, isa.FLAG_SF)
		}
		ctx.NextIp()

		desc = f("%v %v → %v = 0x%X", in.Mnemonic, reg, reg, value)
		return
	}
}

// execMul is the unsigned DX:AX = AX * src.
func execMul(ctx Context) (desc string, err error) {
	src := ctx.Instruction().Operand(0)

	ax, err := ctx.ReadRegister(isa.REG_AX)
	if err != nil {
		return
	}
	value, err := ctx.OperandValue(src)
	if err != nil {
		return
	}

	product := uint32(ax) * uint32(value)
	low := uint16(product)
	high := uint16(product >> 16)

	err = ctx.WriteRegister(isa.REG_AX, low)
	if err != nil {
		return
	}
	err = ctx.WriteRegister(isa.REG_DX, high)
	if err != nil {
		return
	}

	ctx.UpdateFlagsCarry(low, high != 0)
	ctx.State().Flags.OF = high != 0

	ctx.MarkRegister(isa.REG_AX)
	ctx.MarkRegister(isa.REG_DX)
	markFlags(ctx, isa.FLAG_ZF, isa.FLAG_SF, isa.FLAG_CF, isa.FLAG_OF)
	ctx.NextIp()

	desc = f("MUL %v → DX:AX = 0x%X", ctx.FormatOperand(src), product)
	return
}

// execDiv is the unsigned AX = DX:AX / src, DX = DX:AX % src.
// No flags are changed.
func execDiv(ctx Context) (desc string, err error) {
	src := ctx.Instruction().Operand(0)

	divisor, err := ctx.OperandValue(src)
	if err != nil {
		return
	}
	if divisor == 0 {
		err = ErrDivideByZero
		return
	}

	ax, err := ctx.ReadRegister(isa.REG_AX)
	if err != nil {
		return
	}
	dx, err := ctx.ReadRegister(isa.REG_DX)
	if err != nil {
		return
	}

	dividend := uint32(dx)<<16 | uint32(ax)
	quotient := uint16(dividend / uint32(divisor))
	remainder := uint16(dividend % uint32(divisor))

	err = ctx.WriteRegister(isa.REG_AX, quotient)
	if err != nil {
		return
	}
	err = ctx.WriteRegister(isa.REG_DX, remainder)
	if err != nil {
		return
	}

	ctx.MarkRegister(isa.REG_AX)
	ctx.MarkRegister(isa.REG_DX)
	ctx.NextIp()

	desc = f("DIV %v → AX = 0x%X, DX = 0x%X", ctx.FormatOperand(src), quotient, remainder)
	return
}
