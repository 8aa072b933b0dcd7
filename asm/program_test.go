package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(sumProgram))
	assert.NoError(err)

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Instruction)
	assert.Equal(3, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(2)
	assert.NotNil(dbg.Instruction)
	assert.Equal(3, dbg.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(11)
	assert.NotNil(dbg.Instruction)
	assert.Equal(9, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(15)
	assert.NotNil(dbg.Instruction)
	assert.Equal(12, dbg.LineNo)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("NOP\n"))
	assert.NoError(err)

	dbg := prog.Debug(1)
	assert.Nil(dbg.Instruction)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Bytes(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(sumProgram))
	assert.NoError(err)

	assert.Equal([]byte{
		0xb8, 0x00, 0x00,
		0xb9, 0x05, 0x00,
		0xbb, 0x01, 0x00,
		0x01, 0xc0,
		0x43,
		0xe9, 0x00, 0x00,
		0xf4,
	}, prog.Bytes())

	count := 0
	for offset, code := range prog.Codes() {
		assert.Equal(prog.Bytes()[offset], code)
		count++
	}
	assert.Equal(16, count)
}

func TestProgram_Err(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}
	assert.NoError(prog.Err())

	prog.Errors = append(prog.Errors, &ErrSyntax{LineNo: 1, Line: "X", Err: ErrMnemonicUnknown("X")})
	assert.Error(prog.Err())
	assert.ErrorIs(prog.Err(), prog.Errors[0])
}
