package asm

import (
	"errors"

	"github.com/ezrec/realmode/translate"
)

var f = translate.From

var (
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
)

type ErrMnemonicUnknown string

func (err ErrMnemonicUnknown) Error() string {
	return f("unknown instruction '%v'", string(err))
}

type ErrLabelInvalid string

func (err ErrLabelInvalid) Error() string {
	return f("label '%v' invalid", string(err))
}

type ErrLabelDuplicate string

func (err ErrLabelDuplicate) Error() string {
	return f("label '%v' duplicated", string(err))
}

// ErrLabelMissing is a reference to a label that was never declared, or
// that has no instruction after it.
type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label %v missing", string(err))
}

type ErrOperandInvalid string

func (err ErrOperandInvalid) Error() string {
	return f("'%v' is not a register, number or label", string(err))
}

type ErrValueRange string

func (err ErrValueRange) Error() string {
	return f("'%v' does not fit in 16 bits", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax locates an assembly error. Line is the raw source text, or
// empty when the error is not tied to the text of a line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	if len(err.Line) == 0 {
		return f("line %d %v", err.LineNo, err.Err)
	}
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
