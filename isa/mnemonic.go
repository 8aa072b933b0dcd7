package isa

import (
	"strings"
)

// Mnemonic is an instruction mnemonic.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	OP_MOV  = Mnemonic(0)  // MOV
	OP_PUSH = Mnemonic(1)  // PUSH
	OP_POP  = Mnemonic(2)  // POP
	OP_XCHG = Mnemonic(3)  // XCHG
	OP_ADD  = Mnemonic(4)  // ADD
	OP_SUB  = Mnemonic(5)  // SUB
	OP_INC  = Mnemonic(6)  // INC
	OP_DEC  = Mnemonic(7)  // DEC
	OP_MUL  = Mnemonic(8)  // MUL
	OP_DIV  = Mnemonic(9)  // DIV
	OP_NEG  = Mnemonic(10) // NEG
	OP_AND  = Mnemonic(11) // AND
	OP_OR   = Mnemonic(12) // OR
	OP_XOR  = Mnemonic(13) // XOR
	OP_NOT  = Mnemonic(14) // NOT
	OP_CMP  = Mnemonic(15) // CMP
	OP_JMP  = Mnemonic(16) // JMP
	OP_JE   = Mnemonic(17) // JE
	OP_JZ   = Mnemonic(18) // JZ
	OP_JNE  = Mnemonic(19) // JNE
	OP_JNZ  = Mnemonic(20) // JNZ
	OP_JG   = Mnemonic(21) // JG
	OP_JGE  = Mnemonic(22) // JGE
	OP_JL   = Mnemonic(23) // JL
	OP_JLE  = Mnemonic(24) // JLE
	OP_CALL = Mnemonic(25) // CALL
	OP_RET  = Mnemonic(26) // RET
	OP_LOOP = Mnemonic(27) // LOOP
	OP_NOP  = Mnemonic(28) // NOP
	OP_HLT  = Mnemonic(29) // HLT
)

// MNEMONIC_COUNT is the number of mnemonics.
const MNEMONIC_COUNT = int(OP_HLT) + 1

// Category is an instruction category, used to select a handler table.
type Category int

//go:generate go tool stringer -linecomment -type=Category
const (
	CAT_ARITHMETIC = Category(0) // arithmetic
	CAT_LOGICAL    = Category(1) // logical
	CAT_CONTROL    = Category(2) // control
	CAT_TRANSFER   = Category(3) // transfer
)

// CATEGORY_COUNT is the number of instruction categories.
const CATEGORY_COUNT = int(CAT_TRANSFER) + 1

var categoryOf = [MNEMONIC_COUNT]Category{
	OP_MOV:  CAT_TRANSFER,
	OP_PUSH: CAT_TRANSFER,
	OP_POP:  CAT_TRANSFER,
	OP_XCHG: CAT_TRANSFER,
	OP_ADD:  CAT_ARITHMETIC,
	OP_SUB:  CAT_ARITHMETIC,
	OP_INC:  CAT_ARITHMETIC,
	OP_DEC:  CAT_ARITHMETIC,
	OP_MUL:  CAT_ARITHMETIC,
	OP_DIV:  CAT_ARITHMETIC,
	OP_NEG:  CAT_ARITHMETIC,
	OP_AND:  CAT_LOGICAL,
	OP_OR:   CAT_LOGICAL,
	OP_XOR:  CAT_LOGICAL,
	OP_NOT:  CAT_LOGICAL,
	OP_CMP:  CAT_LOGICAL,
	OP_JMP:  CAT_CONTROL,
	OP_JE:   CAT_CONTROL,
	OP_JZ:   CAT_CONTROL,
	OP_JNE:  CAT_CONTROL,
	OP_JNZ:  CAT_CONTROL,
	OP_JG:   CAT_CONTROL,
	OP_JGE:  CAT_CONTROL,
	OP_JL:   CAT_CONTROL,
	OP_JLE:  CAT_CONTROL,
	OP_CALL: CAT_CONTROL,
	OP_RET:  CAT_CONTROL,
	OP_LOOP: CAT_CONTROL,
	OP_NOP:  CAT_CONTROL,
	OP_HLT:  CAT_CONTROL,
}

// Valid returns true if the mnemonic is a member of the instruction set.
func (m Mnemonic) Valid() bool {
	return m >= 0 && int(m) < MNEMONIC_COUNT
}

// Category returns the handler category of the mnemonic.
func (m Mnemonic) Category() Category {
	return categoryOf[m]
}

// Branch returns true for mnemonics whose operand is a jump target.
func (m Mnemonic) Branch() bool {
	switch m {
	case OP_JMP, OP_JE, OP_JZ, OP_JNE, OP_JNZ, OP_JG, OP_JGE, OP_JL, OP_JLE, OP_CALL, OP_LOOP:
		return true
	}
	return false
}

var mnemonicMap = func() (mm map[string]Mnemonic) {
	mm = make(map[string]Mnemonic, MNEMONIC_COUNT)
	for n := range MNEMONIC_COUNT {
		mm[Mnemonic(n).String()] = Mnemonic(n)
	}
	return
}()

// ParseMnemonic looks up a mnemonic by name, ignoring case.
func ParseMnemonic(word string) (m Mnemonic, ok bool) {
	m, ok = mnemonicMap[strings.ToUpper(word)]
	return
}
