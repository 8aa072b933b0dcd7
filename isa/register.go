package isa

import (
	"strings"
)

// Register names a CPU register.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_AX = Register(0)  // AX
	REG_BX = Register(1)  // BX
	REG_CX = Register(2)  // CX
	REG_DX = Register(3)  // DX
	REG_SP = Register(4)  // SP
	REG_BP = Register(5)  // BP
	REG_SI = Register(6)  // SI
	REG_DI = Register(7)  // DI
	REG_CS = Register(8)  // CS
	REG_DS = Register(9)  // DS
	REG_SS = Register(10) // SS
	REG_ES = Register(11) // ES
	REG_IP = Register(12) // IP
	REG_AL = Register(13) // AL
	REG_AH = Register(14) // AH
	REG_BL = Register(15) // BL
	REG_BH = Register(16) // BH
	REG_CL = Register(17) // CL
	REG_CH = Register(18) // CH
	REG_DL = Register(19) // DL
	REG_DH = Register(20) // DH
)

const (
	REG_WIDE_COUNT = int(REG_IP) + 1 // Number of 16-bit registers held in State.
	REG_COUNT      = int(REG_DH) + 1 // Number of register names known to the assembler.
)

// Wide returns true if the register is a 16-bit register held in State.
func (r Register) Wide() bool {
	return r >= 0 && int(r) < REG_WIDE_COUNT
}

// Code returns the 3-bit register field used by the register-specific
// opcodes (MOV imm, INC, DEC, PUSH, POP).
func (r Register) Code() (code byte, ok bool) {
	switch r {
	case REG_AX:
		code = 0
	case REG_CX:
		code = 1
	case REG_DX:
		code = 2
	case REG_BX:
		code = 3
	case REG_SP:
		code = 4
	case REG_BP:
		code = 5
	case REG_SI:
		code = 6
	case REG_DI:
		code = 7
	default:
		return
	}

	ok = true
	return
}

var registerMap = func() (rm map[string]Register) {
	rm = make(map[string]Register, REG_COUNT)
	for n := range REG_COUNT {
		rm[Register(n).String()] = Register(n)
	}
	return
}()

// ParseRegister looks up a register by name, ignoring case.
func ParseRegister(word string) (r Register, ok bool) {
	r, ok = registerMap[strings.ToUpper(word)]
	return
}

// Flag names a condition flag.
type Flag int

//go:generate go tool stringer -linecomment -type=Flag
const (
	FLAG_ZF = Flag(0) // ZF
	FLAG_CF = Flag(1) // CF
	FLAG_SF = Flag(2) // SF
	FLAG_OF = Flag(3) // OF
)

// FLAG_COUNT is the number of condition flags.
const FLAG_COUNT = int(FLAG_OF) + 1
