package cpu

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/ezrec/realmode/asm"
	"github.com/ezrec/realmode/dispatch"
	"github.com/ezrec/realmode/isa"
	"github.com/ezrec/realmode/memory"
	"github.com/ezrec/realmode/translate"
)

func init() {
	translate.SetLanguage(language.AmericanEnglish)
}

func assemble(t *testing.T, program ...string) []isa.Instruction {
	t.Helper()

	prog, err := (&asm.Assembler{}).Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	return prog.Instructions
}

// checkBus verifies every memory access shows up as an address and a data
// bus operation, after the instruction fetch.
func checkBus(t *testing.T, trace *Trace) {
	t.Helper()
	assert := assert.New(t)

	fetches := 2
	if trace.Instruction.Size() > 1 {
		fetches = 4
	}

	assert.Equal(fetches+2*len(trace.Accesses), len(trace.Bus), trace.Text)
	for n, bus := range trace.Bus {
		assert.Equal(n+1, bus.Step, trace.Text)
		if n < fetches {
			assert.Equal(BUS_FETCH, bus.Kind, trace.Text)
			continue
		}
		access := trace.Accesses[(n-fetches)/2]
		assert.Equal(access.Address, bus.Address, trace.Text)
		if (n-fetches)%2 == 0 {
			assert.Equal(LINE_ADDRESS, bus.Line, trace.Text)
			assert.Equal(DIR_TO_MEMORY, bus.Direction, trace.Text)
		} else {
			assert.Equal(LINE_DATA, bus.Line, trace.Text)
			assert.Equal(access.Value, bus.Data, trace.Text)
		}
	}
}

func TestCpu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	assert.False(cpu.Verbose)
	assert.False(cpu.State.Halted)
	assert.Equal(0, cpu.State.Cycles)
	for n := range isa.REG_WIDE_COUNT {
		reg := isa.Register(n)
		expected := uint16(0)
		if reg == isa.REG_SP {
			expected = 0xfffe
		}
		assert.Equal(expected, cpu.State.Get(reg), reg.String())
	}
	assert.Equal(isa.Flags{}, cpu.State.Flags)
	assert.Nil(cpu.Step())
	assert.True(cpu.State.Halted)
}

func TestCpu_Register(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	for n := range isa.REG_WIDE_COUNT {
		reg := isa.Register(n)
		err := cpu.SetRegister(reg, 0xa5a5+uint16(n))
		assert.NoError(err)
		value, err := cpu.Register(reg)
		assert.NoError(err)
		assert.Equal(0xa5a5+uint16(n), value)
	}

	err := cpu.SetRegister(isa.REG_AL, 1)
	assert.ErrorAs(err, new(dispatch.ErrRegisterInvalid))
	_, err = cpu.Register(isa.REG_DH)
	assert.ErrorAs(err, new(dispatch.ErrRegisterInvalid))

	assert.Contains(cpu.String(), "AX: A5A5\n")
	assert.Contains(cpu.String(), "halted: false\n")
}

func TestCpu_Sum(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.LoadProgram(assemble(t,
		"MOV AX, 0",
		"MOV CX, 5",
		"MOV BX, 1",
		"LOOP_START:",
		"  ADD AX, BX",
		"  INC BX",
		"  LOOP LOOP_START",
		"HLT",
	))

	steps := cpu.Run(0)
	// 3 MOVs, 5 iterations of 3 instructions, and the HLT.
	assert.Equal(19, steps)
	assert.True(cpu.State.Halted)
	assert.Equal(uint16(15), cpu.State.Get(isa.REG_AX))
	assert.Equal(uint16(0), cpu.State.Get(isa.REG_CX))
	assert.Equal(uint16(6), cpu.State.Get(isa.REG_BX))
	assert.Equal(uint16(15), cpu.State.Ip())
	assert.Equal(19, cpu.State.Cycles)
	assert.Equal(19, len(cpu.Trace))

	for _, trace := range cpu.Trace {
		assert.Nil(trace.Fault)
		checkBus(t, trace)
	}

	last := cpu.Trace[len(cpu.Trace)-1]
	assert.Equal("HLT → CPU halted", last.Description)
	assert.False(last.Before.Halted)
	assert.True(last.After.Halted)

	// Halted CPUs do not step.
	assert.Nil(cpu.Step())
	assert.Equal(0, cpu.Run(10))
}

func TestCpu_Trace(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.LoadProgram(assemble(t, "MOV AX, 1111h", "HLT"))

	trace := cpu.Step()
	if !assert.NotNil(trace) {
		return
	}

	assert.Equal("MOV AX, 0x1111", trace.Text)
	assert.Equal("MOV AX, 0x1111 → AX = 0x1111", trace.Description)
	assert.Equal(&cpu.Program[0], trace.Instruction)

	expected := trace.Before
	expected.Set(isa.REG_AX, 0x1111)
	expected.SetIp(3)
	if diff := cmp.Diff(expected, trace.After); diff != "" {
		t.Errorf("state after (-want +got):\n%s", diff)
	}
	assert.Equal(0, trace.After.Cycles)
	assert.Equal(1, cpu.State.Cycles)

	assert.Equal([]isa.Register{isa.REG_AX, isa.REG_IP}, trace.ChangedRegisters)
	assert.Empty(trace.ChangedFlags)
	assert.Empty(trace.Accesses)

	assert.Equal([]BusOperation{
		{Step: 1, Kind: BUS_FETCH, Line: LINE_ADDRESS, Address: 0,
			Description: "CPU sends address", Direction: DIR_TO_MEMORY},
		{Step: 2, Kind: BUS_FETCH, Line: LINE_DATA, Address: 0, Data: 0xb8,
			Description: "MOV AX, 0x1111 (opcode 0xB8)", Direction: DIR_TO_CPU},
		{Step: 3, Kind: BUS_FETCH, Line: LINE_ADDRESS, Address: 1,
			Description: "CPU sends address", Direction: DIR_TO_MEMORY},
		{Step: 4, Kind: BUS_FETCH, Line: LINE_DATA, Address: 1, Data: 0x1111,
			Description: "read word (16 bits)", Direction: DIR_TO_CPU},
	}, trace.Bus)

	assert.Equal([]AddressCalculation{
		{Segment: 0, Offset: 0, Physical: 0, Formula: "CS:IP = (0x0 × 16) + 0x0 = 0x0"},
		{Segment: 0, Offset: 1, Physical: 1, Formula: "address: 0x1 | value: 0x1111"},
	}, trace.Addresses)

	trace = cpu.Step()
	if !assert.NotNil(trace) {
		return
	}
	assert.Equal(2, len(trace.Bus))
	assert.Equal(1, len(trace.Addresses))
	assert.Equal("CS:IP = (0x0 × 16) + 0x3 = 0x3", trace.Addresses[0].Formula)
}

func TestCpu_Segment(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.State.Set(isa.REG_CS, 0xffff)
	cpu.LoadProgram(assemble(t, "MOV AX, 2", "NOP", "HLT"))

	// 0xFFFF:0x0000 .. 0xFFFF:0x0004, no wrap yet.
	assert.Equal(uint32(0xffff0), cpu.Program[0].Address)
	assert.Equal(uint32(0xffff3), cpu.Program[1].Address)
	assert.Equal(uint32(0xffff4), cpu.Program[2].Address)
	assert.Equal(byte(0xb8), cpu.Memory.PeekByte(0xffff0))
	assert.Equal(byte(0xf4), cpu.Memory.PeekByte(0xffff4))

	cpu.Run(0)
	assert.True(cpu.State.Halted)
	assert.Equal(uint16(2), cpu.State.Get(isa.REG_AX))
	assert.Equal(3, len(cpu.Trace))
	assert.Equal("CS:IP = (0xFFFF × 16) + 0x3 = 0xFFFF3", cpu.Trace[1].Addresses[0].Formula)

	// Programs wrap around the top of memory.
	cpu = NewCpu()
	cpu.State.Set(isa.REG_CS, 0xffff)
	cpu.LoadProgram(assemble(t,
		"MOV AX, 1",
		"MOV AX, 2",
		"MOV AX, 3",
		"MOV AX, 4",
		"MOV AX, 5",
		"MOV AX, 0x1234",
		"HLT",
	))
	assert.Equal(uint32(0xfffff), cpu.Program[5].Address)
	assert.Equal(uint32(0x00002), cpu.Program[6].Address)
	assert.Equal(byte(0x34), cpu.Memory.PeekByte(0x00000))
	assert.Equal(byte(0x12), cpu.Memory.PeekByte(0x00001))

	cpu.Run(0)
	assert.True(cpu.State.Halted)
	assert.Equal(7, len(cpu.Trace))
	assert.Equal(uint16(0x1234), cpu.State.Get(isa.REG_AX))
	assert.Equal(uint32(0x00000), cpu.Trace[5].Addresses[1].Physical)
	assert.Equal(uint32(0x0ffef), memory.PhysicalAddress(0xffff, 0xffff))
}

func TestCpu_LoadProgram(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.State.Set(isa.REG_BX, 5)
	cpu.State.Flags.ZF = true
	cpu.State.Halted = true
	cpu.State.Cycles = 10
	cpu.State.SetIp(0x20)

	instructions := assemble(t, "INC BX", "HLT")
	cpu.LoadProgram(instructions)

	assert.Equal(uint16(5), cpu.State.Get(isa.REG_BX))
	assert.True(cpu.State.Flags.ZF)
	assert.False(cpu.State.Halted)
	assert.Equal(0, cpu.State.Cycles)
	assert.Equal(uint16(0), cpu.State.Ip())

	// The caller's instructions are not modified.
	cpu.State.Set(isa.REG_CS, 0x100)
	cpu.LoadProgram(instructions)
	assert.Equal(uint32(0x1000), cpu.Program[0].Address)
	assert.Equal(uint32(0x1001), cpu.Program[1].Address)
	assert.Equal(uint32(1), instructions[1].Address)

	in, ok := cpu.Fetch(0x1001)
	assert.True(ok)
	assert.Equal(isa.OP_HLT, in.Mnemonic)
	_, ok = cpu.Fetch(0)
	assert.False(ok)

	cpu.Run(0)
	assert.Equal(uint16(6), cpu.State.Get(isa.REG_BX))
	assert.Equal(2, len(cpu.Trace))

	cpu.Reset()
	assert.Equal(isa.NewState(), cpu.State)
	assert.Empty(cpu.Program)
	assert.Empty(cpu.Trace)
	_, ok = cpu.Fetch(0x1000)
	assert.False(ok)
	assert.Equal(byte(0), cpu.Memory.PeekByte(0x1000))
}

func TestCpu_FetchMiss(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.LoadProgram(assemble(t, "NOP"))

	assert.NotNil(cpu.Step())
	assert.False(cpu.State.Halted)
	assert.Nil(cpu.Step())
	assert.True(cpu.State.Halted)
	assert.Equal(1, len(cpu.Trace))
	assert.Equal(1, cpu.State.Cycles)
}

func TestCpu_Stack(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.LoadProgram(assemble(t,
		"MOV AX, 0x1234",
		"PUSH AX",
		"POP BX",
		"HLT",
	))

	cpu.Step()
	trace := cpu.Step()
	assert.Equal(uint16(0xfffc), cpu.State.Get(isa.REG_SP))
	assert.Equal(uint16(0x1234), cpu.Peek())
	assert.Equal([]memory.Access{
		{Type: memory.ACCESS_WRITE, Address: 0xfffc, Value: 0x34, Size: 1},
		{Type: memory.ACCESS_WRITE, Address: 0xfffd, Value: 0x12, Size: 1},
	}, trace.Accesses)
	assert.Equal(6, len(trace.Bus))
	assert.Equal(BUS_WRITE, trace.Bus[5].Kind)
	assert.Equal(DIR_TO_MEMORY, trace.Bus[5].Direction)
	assert.Equal("write byte (8 bits)", trace.Bus[5].Description)
	assert.Equal([]isa.Register{isa.REG_SP, isa.REG_IP}, trace.ChangedRegisters)
	checkBus(t, trace)

	trace = cpu.Step()
	assert.Equal(uint16(0xfffe), cpu.State.Get(isa.REG_SP))
	assert.Equal(uint16(0x1234), cpu.State.Get(isa.REG_BX))
	assert.Equal(2, len(trace.Accesses))
	assert.Equal(memory.ACCESS_READ, trace.Accesses[0].Type)
	assert.Equal(BUS_READ, trace.Bus[3].Kind)
	assert.Equal(DIR_TO_CPU, trace.Bus[3].Direction)
	assert.Equal("read byte (8 bits)", trace.Bus[3].Description)
	checkBus(t, trace)

	// The memory access log only holds the last step's accesses.
	cpu.Step()
	assert.Empty(cpu.Memory.Accesses())
}

func TestCpu_CallRet(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.LoadProgram(assemble(t,
		"  CALL FUNC",
		"  HLT",
		"FUNC:",
		"  MOV AX, 7",
		"  RET",
	))

	steps := cpu.Run(0)
	assert.Equal(4, steps)
	assert.True(cpu.State.Halted)
	assert.Equal(uint16(7), cpu.State.Get(isa.REG_AX))
	assert.Equal(uint16(3), cpu.State.Ip())
	assert.Equal(uint16(0xfffe), cpu.State.Get(isa.REG_SP))
	assert.Equal(uint16(3), cpu.Memory.PeekWord(0xfffc))

	call := cpu.Trace[0]
	assert.Equal("CALL 0x4 → IP = 0x4, return to 0x3", call.Description)
	assert.Equal([]isa.Register{isa.REG_SP, isa.REG_IP}, call.ChangedRegisters)
	assert.Equal(uint16(0xfffc), call.After.Get(isa.REG_SP))

	ret := cpu.Trace[2]
	assert.Equal("RET → IP = 0x3", ret.Description)
}

func TestCpu_Loop(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.LoadProgram(assemble(t, "MOV CX, 1", "L: LOOP L", "HLT"))

	steps := cpu.Run(0)
	assert.Equal(3, steps)
	assert.True(cpu.State.Halted)
	assert.Equal(uint16(0), cpu.State.Get(isa.REG_CX))
	assert.Equal("LOOP 0x3 → CX = 0, loop end", cpu.Trace[1].Description)

	// CX of zero wraps, and keeps looping.
	cpu = NewCpu()
	cpu.LoadProgram(assemble(t, "MOV CX, 0", "L: LOOP L", "HLT"))

	steps = cpu.Run(3)
	assert.Equal(3, steps)
	assert.False(cpu.State.Halted)
	assert.Equal(uint16(0xfffe), cpu.State.Get(isa.REG_CX))
	assert.Equal(uint16(3), cpu.State.Ip())
}

func TestCpu_DivideByZero(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.LoadProgram(assemble(t,
		"MOV AX, 10",
		"MOV DX, 2",
		"MOV BX, 0",
		"DIV BX",
		"HLT",
	))

	steps := cpu.Run(0)
	assert.Equal(4, steps)
	assert.True(cpu.State.Halted)
	assert.Equal(uint16(10), cpu.State.Get(isa.REG_AX))
	assert.Equal(uint16(2), cpu.State.Get(isa.REG_DX))
	assert.Equal(uint16(9), cpu.State.Ip())

	last := cpu.Trace[len(cpu.Trace)-1]
	assert.True(last.Faulted())
	assert.ErrorIs(last.Fault, dispatch.ErrDivideByZero)
	assert.Equal("ERROR: "+dispatch.ErrDivideByZero.Error(), last.Description)
	assert.True(last.After.Halted)
	assert.Empty(last.ChangedRegisters)
	assert.Equal(4, cpu.State.Cycles)
}

func TestCpu_Faults(t *testing.T) {
	assert := assert.New(t)

	// Label references that were never resolved.
	cpu := NewCpu()
	cpu.LoadProgram([]isa.Instruction{
		isa.NewInstruction(1, isa.OP_JMP, isa.Ref("NOWHERE")),
	})
	trace := cpu.Step()
	assert.True(cpu.State.Halted)
	assert.ErrorAs(trace.Fault, new(dispatch.ErrLabelUnresolved))

	// 8-bit registers assemble, but are not usable.
	cpu = NewCpu()
	cpu.LoadProgram(assemble(t, "MOV AL, 1", "HLT"))
	cpu.Run(0)
	assert.Equal(1, len(cpu.Trace))
	assert.ErrorAs(cpu.Trace[0].Fault, new(dispatch.ErrRegisterInvalid))

	// Unknown instructions are skipped.
	cpu = NewCpu()
	cpu.State.Set(isa.REG_AX, 1)
	cpu.LoadProgram(assemble(t, "XCHG AX, BX", "HLT"))
	trace = cpu.Step()
	assert.False(cpu.State.Halted)
	assert.NoError(trace.Fault)
	assert.Equal("unknown instruction: XCHG", trace.Description)
	assert.Equal(uint16(1), cpu.State.Get(isa.REG_AX))
	assert.Equal(uint16(2), cpu.State.Ip())
}

func TestCpu_Panic(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	// A context without an instruction panics inside the dispatcher.
	_, err := cpu.execute(&execContext{cpu: cpu})
	var panicked *ErrPanic
	assert.ErrorAs(err, &panicked)
	assert.NotNil(panicked.Value)
}

func TestCpu_TraceLimit(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.TraceLimit = 2
	cpu.LoadProgram(assemble(t, "NOP", "NOP", "NOP", "NOP", "HLT"))

	assert.Equal(5, cpu.Run(0))
	assert.Equal(2, len(cpu.Trace))
	assert.Equal(isa.OP_NOP, cpu.Trace[0].Instruction.Mnemonic)
	assert.Equal(isa.OP_HLT, cpu.Trace[1].Instruction.Mnemonic)
}

func TestCpu_Memory(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.SetMemoryWord(0x12345, 0xbeef)
	assert.Equal(uint16(0xbeef), cpu.GetMemoryWord(0x12345))
	assert.Equal(byte(0xef), cpu.GetMemoryByte(0x12345))
	cpu.SetMemoryByte(0x12346, 0xde)
	assert.Equal(uint16(0xdeef), cpu.GetMemoryWord(0x12345))

	assert.Equal(8, len(cpu.Memory.Accesses()))
}
