package isa

import (
	"fmt"
	"strings"
)

// Instruction is one assembled source line.
type Instruction struct {
	LineNo   int       // 1-based source line.
	Mnemonic Mnemonic  // Operation.
	Operands []Operand // Ordered operands.
	Bytes    []byte    // Encoded bytes.
	Address  uint32    // Offset after assembly, physical address after loading.
}

// NewInstruction creates an instruction and encodes it.
func NewInstruction(lineno int, m Mnemonic, operands ...Operand) Instruction {
	return Instruction{
		LineNo:   lineno,
		Mnemonic: m,
		Operands: operands,
		Bytes:    Encode(m, operands),
	}
}

// Size is the encoded length in bytes.
func (in *Instruction) Size() int {
	return len(in.Bytes)
}

// Operand returns the n'th operand, or an absent operand.
func (in *Instruction) Operand(n int) (op Operand) {
	if n < len(in.Operands) {
		op = in.Operands[n]
	}
	return
}

// Resolved returns false if any operand is still a label reference.
func (in *Instruction) Resolved() bool {
	for _, op := range in.Operands {
		if op.Kind == OPERAND_LABEL {
			return false
		}
	}
	return true
}

func (in *Instruction) format(operand func(Operand) string) string {
	var args []string
	for _, op := range in.Operands {
		if op.Kind == OPERAND_NONE {
			continue
		}
		args = append(args, operand(op))
	}

	if len(args) == 0 {
		return in.Mnemonic.String()
	}

	return in.Mnemonic.String() + " " + strings.Join(args, ", ")
}

// String renders the instruction as trace text, e.g. "MOV AX, 0x5".
func (in Instruction) String() string {
	return in.format(Operand.String)
}

// Disassemble renders the instruction as listing text, e.g. "MOV AX, 0x0005".
func (in Instruction) Disassemble() string {
	return in.format(Operand.Listing)
}

// Hex renders the encoded bytes, e.g. "B8 05 00".
func (in Instruction) Hex() string {
	hex := make([]string, len(in.Bytes))
	for n, b := range in.Bytes {
		hex[n] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(hex, " ")
}
