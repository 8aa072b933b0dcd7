package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/realmode/cpu"
	"github.com/ezrec/realmode/emulator"
)

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	d := defines{}
	assert.NoError(d.Set("COUNT=5"))
	assert.NoError(d.Set("EMPTY="))
	assert.NoError(d.Set("EXPR=1=2"))
	assert.Error(d.Set("COUNT"))
	assert.Error(d.Set("=5"))

	assert.Equal(defines{"COUNT": "5", "EMPTY": "", "EXPR": "1=2"}, d)
}

func TestSegment(t *testing.T) {
	assert := assert.New(t)

	var s segment
	assert.NoError(s.Set("0x1000"))
	assert.Equal(segment(0x1000), s)
	assert.Equal("0x1000", s.String())
	assert.NoError(s.Set("4096"))
	assert.Equal(segment(0x1000), s)
	assert.Error(s.Set("0x10000"))
	assert.Error(s.Set("cs"))
}

func TestBudget(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(cpu.RUN_STEPS_DEFAULT, budget(0))
	assert.Equal(cpu.RUN_STEPS_DEFAULT, budget(-1))
	assert.Equal(1, budget(1))
	assert.Equal(25, budget(25))
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "prog.asm")
	assert.NoError(os.WriteFile(path, []byte("MOV AX, 3\nHLT\n"), 0o644))

	emu := emulator.NewEmulator()
	assert.NoError(load(emu, path))
	assert.Equal(2, len(emu.Program.Instructions))

	assert.Error(load(emu, filepath.Join(t.TempDir(), "missing.asm")))
}

func TestClip(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("abcdef", clip("abcdef", 0))
	assert.Equal("abcdef", clip("abcdef", 6))
	assert.Equal("abc", clip("abcdef", 3))
	assert.Equal("→ a", clip("→ ab", 3))
}

func TestPrintTrace(t *testing.T) {
	assert := assert.New(t)

	emu := emulator.NewEmulator()
	err := emu.Load(strings.NewReader("PUSH AX\nHLT\n"))
	assert.NoError(err)

	_, err = emu.Tick()
	assert.NoError(err)

	buff := &bytes.Buffer{}
	printTrace(buff, lastTrace(emu.Cpu), 0)

	lines := strings.Split(strings.TrimSuffix(buff.String(), "\n"), "\n")
	// Header, one address calculation, six bus operations, changes.
	assert.Equal(9, len(lines))
	assert.True(strings.HasPrefix(lines[0], "00000  PUSH AX"))
	assert.Equal("       SP=FFFC IP=0001", lines[8])
}
