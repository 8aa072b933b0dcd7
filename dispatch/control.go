package dispatch

import (
	"fmt"
	"strings"

	"github.com/ezrec/realmode/isa"
)

var control = [isa.MNEMONIC_COUNT]Handler{
	isa.OP_JMP: execJmp,
	isa.OP_JE:  execJcc(func(fl isa.Flags) bool { return fl.ZF }, isa.FLAG_ZF),
	isa.OP_JZ:  execJcc(func(fl isa.Flags) bool { return fl.ZF }, isa.FLAG_ZF),
	isa.OP_JNE: execJcc(func(fl isa.Flags) bool { return !fl.ZF }, isa.FLAG_ZF),
	isa.OP_JNZ: execJcc(func(fl isa.Flags) bool { return !fl.ZF }, isa.FLAG_ZF),
	isa.OP_JG: execJcc(func(fl isa.Flags) bool { return !fl.ZF && fl.SF == fl.OF },
		isa.FLAG_ZF, isa.FLAG_SF, isa.FLAG_OF),
	isa.OP_JGE: execJcc(func(fl isa.Flags) bool { return fl.SF == fl.OF },
		isa.FLAG_SF, isa.FLAG_OF),
	isa.OP_JL: execJcc(func(fl isa.Flags) bool { return fl.SF != fl.OF },
		isa.FLAG_SF, isa.FLAG_OF),
	isa.OP_JLE: execJcc(func(fl isa.Flags) bool { return fl.ZF || fl.SF != fl.OF },
		isa.FLAG_ZF, isa.FLAG_SF, isa.FLAG_OF),
	isa.OP_CALL: execCall,
	isa.OP_RET:  execRet,
	isa.OP_LOOP: execLoop,
	isa.OP_NOP:  execNop,
	isa.OP_HLT:  execHlt,
}

// jump sets IP to the target.
func jump(ctx Context, target uint16) {
	ctx.State().SetIp(target)
	ctx.MarkRegister(isa.REG_IP)
}

// flagText renders flags as "ZF=1 SF=0".
func flagText(fl isa.Flags, flags []isa.Flag) string {
	text := make([]string, len(flags))
	for n, flag := range flags {
		bit := 0
		if fl.Get(flag) {
			bit = 1
		}
		text[n] = fmt.Sprintf("%v=%d", flag, bit)
	}
	return strings.Join(text, " ")
}

func execJmp(ctx Context) (desc string, err error) {
	op := ctx.Instruction().Operand(0)
	target, err := ctx.OperandValue(op)
	if err != nil {
		return
	}

	jump(ctx, target)

	desc = f("JMP %v → IP = 0x%X", ctx.FormatOperand(op), target)
	return
}

// execJcc makes a conditional jump handler. flags are the flags the
// condition tests, shown when the jump is not taken.
func execJcc(taken func(fl isa.Flags) bool, flags ...isa.Flag) Handler {
	return func(ctx Context) (desc string, err error) {
		in := ctx.Instruction()
		op := in.Operand(0)
		target, err := ctx.OperandValue(op)
		if err != nil {
			return
		}

		fl := ctx.State().Flags
		if taken(fl) {
			jump(ctx, target)
			desc = f("%v %v → jumped to 0x%X", in.Mnemonic, ctx.FormatOperand(op), target)
			return
		}

		ctx.NextIp()
		desc = f("%v %v → not jumped (%v)", in.Mnemonic, ctx.FormatOperand(op), flagText(fl, flags))
		return
	}
}

func execCall(ctx Context) (desc string, err error) {
	in := ctx.Instruction()
	op := in.Operand(0)
	target, err := ctx.OperandValue(op)
	if err != nil {
		return
	}

	ret := ctx.State().Ip() + uint16(in.Size())
	ctx.Push(ret)
	ctx.MarkRegister(isa.REG_SP)
	jump(ctx, target)

	desc = f("CALL %v → IP = 0x%X, return to 0x%X", ctx.FormatOperand(op), target, ret)
	return
}

func execRet(ctx Context) (desc string, err error) {
	ret := ctx.Pop()
	ctx.MarkRegister(isa.REG_SP)
	jump(ctx, ret)

	desc = f("RET → IP = 0x%X", ret)
	return
}

// execLoop decrements CX, and jumps while it is not zero. CX of zero
// wraps to 0xFFFF.
func execLoop(ctx Context) (desc string, err error) {
	op := ctx.Instruction().Operand(0)
	target, err := ctx.OperandValue(op)
	if err != nil {
		return
	}

	cx, err := ctx.ReadRegister(isa.REG_CX)
	if err != nil {
		return
	}
	cx--
	err = ctx.WriteRegister(isa.REG_CX, cx)
	if err != nil {
		return
	}
	ctx.MarkRegister(isa.REG_CX)

	if cx != 0 {
		jump(ctx, target)
		desc = f("LOOP %v → CX = %d, jumped", ctx.FormatOperand(op), cx)
		return
	}

	ctx.NextIp()
	desc = f("LOOP %v → CX = 0, loop end", ctx.FormatOperand(op))
	return
}

func execNop(ctx Context) (desc string, err error) {
	ctx.NextIp()
	desc = f("NOP → no operation")
	return
}

func execHlt(ctx Context) (desc string, err error) {
	ctx.State().Halted = true
	desc = f("HLT → CPU halted")
	return
}
