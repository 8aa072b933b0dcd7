package dispatch

import (
	"github.com/ezrec/realmode/isa"
)

// Context is the view of the CPU given to a handler.
type Context interface {
	Instruction() *isa.Instruction // Instruction being executed.
	State() *isa.State             // Mutable CPU state.

	ReadRegister(reg isa.Register) (value uint16, err error)
	WriteRegister(reg isa.Register, value uint16) (err error)

	UpdateFlags(value uint16)                  // Sets ZF and SF from value.
	UpdateFlagsCarry(value uint16, carry bool) // Sets ZF and SF from value, and CF.

	MarkRegister(reg isa.Register) // Notes a register as changed.
	MarkFlag(flag isa.Flag)        // Notes a flag as changed.

	NextIp() // Advances IP past the instruction.

	OperandValue(op isa.Operand) (value uint16, err error)
	FormatOperand(op isa.Operand) string

	Push(value uint16)
	Pop() (value uint16)
}

// Handler executes one instruction, returning a description of its effect.
type Handler func(ctx Context) (desc string, err error)

// Handler tables, indexed by category.
var tables = [isa.CATEGORY_COUNT]*[isa.MNEMONIC_COUNT]Handler{
	isa.CAT_ARITHMETIC: &arithmetic,
	isa.CAT_LOGICAL:    &logical,
	isa.CAT_CONTROL:    &control,
	isa.CAT_TRANSFER:   &transfer,
}

// Lookup returns the handler for a mnemonic, or nil.
func Lookup(m isa.Mnemonic) Handler {
	if !m.Valid() {
		return nil
	}

	return tables[m.Category()][m]
}

// Dispatch executes the context's instruction. Unknown instructions are
// skipped over with a description and no error.
func Dispatch(ctx Context) (desc string, err error) {
	m := ctx.Instruction().Mnemonic

	handler := Lookup(m)
	if handler == nil {
		ctx.NextIp()
		desc = f("unknown instruction: %v", m)
		return
	}

	return handler(ctx)
}

// destination returns the register named by operand n.
func destination(ctx Context, n int) (reg isa.Register, err error) {
	op := ctx.Instruction().Operand(n)
	if op.Kind != isa.OPERAND_REGISTER {
		err = ErrOperandRegister(ctx.FormatOperand(op))
		return
	}

	reg = op.Register
	if !reg.Wide() {
		err = ErrRegisterInvalid(reg.String())
	}

	return
}

// markFlags notes the flags as changed.
func markFlags(ctx Context, flags ...isa.Flag) {
	for _, flag := range flags {
		ctx.MarkFlag(flag)
	}
}
