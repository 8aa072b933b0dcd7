package cpu

import (
	"github.com/ezrec/realmode/translate"
)

var f = translate.From

// ErrPanic is a handler panic, recovered by Step.
type ErrPanic struct {
	Value any
}

func (err *ErrPanic) Error() string {
	return f("internal fault: %v", err.Value)
}
