package dispatch

import (
	"errors"

	"github.com/ezrec/realmode/translate"
)

var f = translate.From

var (
	ErrDivideByZero = errors.New(f("division by zero"))
)

// ErrRegisterInvalid is a register that is not addressable at runtime.
type ErrRegisterInvalid string

func (err ErrRegisterInvalid) Error() string {
	return f("register %v invalid", string(err))
}

// ErrOperandRegister is a destination operand that is not a register.
type ErrOperandRegister string

func (err ErrOperandRegister) Error() string {
	return f("operand %v is not a register", string(err))
}

type ErrLabelUnresolved string

func (err ErrLabelUnresolved) Error() string {
	return f("label %v unresolved", string(err))
}
