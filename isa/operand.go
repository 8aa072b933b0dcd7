package isa

import (
	"fmt"
)

// OperandKind is the decode type of an Operand.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	OPERAND_NONE      = OperandKind(0) // none
	OPERAND_REGISTER  = OperandKind(1) // register
	OPERAND_IMMEDIATE = OperandKind(2) // immediate
	OPERAND_LABEL     = OperandKind(3) // label
)

// Operand is a single instruction operand. Only the field selected by Kind
// is meaningful.
type Operand struct {
	Kind     OperandKind
	Register Register // OPERAND_REGISTER
	Value    uint16   // OPERAND_IMMEDIATE
	Label    string   // OPERAND_LABEL, an unresolved reference.
}

// Reg makes a register operand.
func Reg(r Register) Operand {
	return Operand{Kind: OPERAND_REGISTER, Register: r}
}

// Imm makes an immediate operand.
func Imm(value uint16) Operand {
	return Operand{Kind: OPERAND_IMMEDIATE, Value: value}
}

// Ref makes an unresolved label reference.
func Ref(label string) Operand {
	return Operand{Kind: OPERAND_LABEL, Label: label}
}

// String formats the operand for traces: registers by name, immediates in
// unpadded hex, absent operands as "null".
func (op Operand) String() string {
	switch op.Kind {
	case OPERAND_REGISTER:
		return op.Register.String()
	case OPERAND_IMMEDIATE:
		return fmt.Sprintf("0x%X", op.Value)
	case OPERAND_LABEL:
		return op.Label
	}

	return "null"
}

// Listing formats the operand for listings, immediates padded to 4 digits.
func (op Operand) Listing() string {
	if op.Kind == OPERAND_IMMEDIATE {
		return fmt.Sprintf("0x%04X", op.Value)
	}

	return op.String()
}
