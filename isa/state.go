package isa

const (
	SP_INIT = uint16(0xfffe) // Initial stack pointer, top of the stack segment.
)

// Flags are the condition flags.
type Flags struct {
	ZF bool // Zero
	CF bool // Carry
	SF bool // Sign
	OF bool // Overflow
}

// Get returns the value of a flag.
func (fl *Flags) Get(flag Flag) (value bool) {
	switch flag {
	case FLAG_ZF:
		value = fl.ZF
	case FLAG_CF:
		value = fl.CF
	case FLAG_SF:
		value = fl.SF
	case FLAG_OF:
		value = fl.OF
	}
	return
}

// Set sets the value of a flag.
func (fl *Flags) Set(flag Flag, value bool) {
	switch flag {
	case FLAG_ZF:
		fl.ZF = value
	case FLAG_CF:
		fl.CF = value
	case FLAG_SF:
		fl.SF = value
	case FLAG_OF:
		fl.OF = value
	}
}

// State is the architectural state of the CPU. It holds no references, so
// an assignment is a complete snapshot.
type State struct {
	Registers [REG_WIDE_COUNT]uint16 // 16-bit registers, indexed by Register.
	Flags     Flags                  // Condition flags.
	Halted    bool                   // Set by HLT or a runtime fault.
	Cycles    int                    // Executed steps.
}

// NewState returns the power-on state.
func NewState() (state State) {
	state.Registers[REG_SP] = SP_INIT
	return
}

// Get returns a 16-bit register. Narrow registers read as zero.
func (st *State) Get(reg Register) uint16 {
	if !reg.Wide() {
		return 0
	}
	return st.Registers[reg]
}

// Set writes a 16-bit register. Narrow registers are ignored.
func (st *State) Set(reg Register, value uint16) {
	if !reg.Wide() {
		return
	}
	st.Registers[reg] = value
}

// Ip returns the instruction pointer.
func (st *State) Ip() uint16 {
	return st.Registers[REG_IP]
}

// SetIp sets the instruction pointer.
func (st *State) SetIp(ip uint16) {
	st.Registers[REG_IP] = ip
}
