package isa

// Encode returns the fixed-width byte encoding of an instruction.
//
// Opcodes loosely follow the real x86 ones. Register-to-register forms use
// a placeholder ModR/M byte, and every branch is E9 followed by two
// placeholder bytes: targets live in the operand, not in the encoding.
func Encode(m Mnemonic, operands []Operand) (bytes []byte) {
	var a, b Operand
	if len(operands) > 0 {
		a = operands[0]
	}
	if len(operands) > 1 {
		b = operands[1]
	}

	switch m {
	case OP_MOV:
		if len(operands) == 2 && a.Kind == OPERAND_REGISTER && b.Kind == OPERAND_IMMEDIATE {
			bytes = []byte{regOpcode(0xb8, a), byte(b.Value & 0xff), byte(b.Value >> 8)}
		} else {
			bytes = []byte{0x89, 0xc0}
		}
	case OP_ADD:
		bytes = []byte{0x01, 0xc0}
	case OP_SUB:
		bytes = []byte{0x29, 0xc0}
	case OP_AND:
		bytes = []byte{0x21, 0xc0}
	case OP_OR:
		bytes = []byte{0x09, 0xc0}
	case OP_XOR:
		bytes = []byte{0x31, 0xc0}
	case OP_CMP:
		bytes = []byte{0x39, 0xc0}
	case OP_XCHG:
		bytes = []byte{0x87, 0xc0}
	case OP_NOT:
		bytes = []byte{0xf7, 0xd0}
	case OP_MUL:
		bytes = []byte{0xf7, 0xe0}
	case OP_DIV:
		bytes = []byte{0xf7, 0xf0}
	case OP_NEG:
		bytes = []byte{0xf7, 0xd8}
	case OP_INC:
		bytes = []byte{regOpcode(0x40, a)}
	case OP_DEC:
		bytes = []byte{regOpcode(0x48, a)}
	case OP_PUSH:
		bytes = []byte{regOpcode(0x50, a)}
	case OP_POP:
		bytes = []byte{regOpcode(0x58, a)}
	case OP_JMP, OP_JE, OP_JZ, OP_JNE, OP_JNZ, OP_JG, OP_JGE, OP_JL, OP_JLE, OP_CALL, OP_LOOP:
		bytes = []byte{0xe9, 0x00, 0x00}
	case OP_RET:
		bytes = []byte{0xc3}
	case OP_NOP:
		bytes = []byte{0x90}
	case OP_HLT:
		bytes = []byte{0xf4}
	default:
		bytes = []byte{0x90}
	}

	return
}

// regOpcode adds the register field to a register-specific base opcode.
// Operands without a register field use the base opcode.
func regOpcode(base byte, op Operand) byte {
	if op.Kind != OPERAND_REGISTER {
		return base
	}
	code, ok := op.Register.Code()
	if !ok {
		return base
	}
	return base + code
}
