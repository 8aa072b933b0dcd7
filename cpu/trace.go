package cpu

import (
	"github.com/ezrec/realmode/isa"
	"github.com/ezrec/realmode/memory"
)

// BusKind is the bus cycle type.
type BusKind int

//go:generate go tool stringer -linecomment -type=BusKind
const (
	BUS_FETCH = BusKind(0) // FETCH
	BUS_READ  = BusKind(1) // READ
	BUS_WRITE = BusKind(2) // WRITE
)

// BusLine is the bus driven by a bus operation.
type BusLine int

//go:generate go tool stringer -linecomment -type=BusLine
const (
	LINE_ADDRESS = BusLine(0) // ADDRESS
	LINE_DATA    = BusLine(1) // DATA
)

// Direction is the direction of a bus transfer.
type Direction int

//go:generate go tool stringer -linecomment -type=Direction
const (
	DIR_TO_MEMORY = Direction(0) // →
	DIR_TO_CPU    = Direction(1) // ←
)

// BusOperation is one phase of a bus cycle.
type BusOperation struct {
	Step        int       // 1-based order within the trace.
	Kind        BusKind   // Cycle type.
	Line        BusLine   // Address or data phase.
	Address     uint32    // Physical address.
	Data        uint16    // Transferred value, for LINE_DATA.
	Description string    // Human readable phase description.
	Direction   Direction // Transfer direction.
}

// AddressCalculation is a segment:offset to physical address breadcrumb.
type AddressCalculation struct {
	Segment  uint16
	Offset   uint16
	Physical uint32
	Formula  string
}

// Trace is the record of a single step.
type Trace struct {
	Instruction *isa.Instruction // Executed instruction.
	Text        string           // Rendered instruction, e.g. "MOV AX, 0x5".

	Before isa.State // State before execution.
	After  isa.State // State after execution.

	ChangedRegisters []isa.Register // In first changed order.
	ChangedFlags     []isa.Flag     // In first changed order.

	Bus       []BusOperation       // Ordered bus operations.
	Addresses []AddressCalculation // Address calculations.
	Accesses  []memory.Access      // Memory accesses made by the instruction.

	Description string // One line effect description.
	Fault       error  // Runtime fault, if the step faulted.
}

// bus appends a bus operation, numbering it.
func (trace *Trace) bus(kind BusKind, line BusLine, address uint32, data uint16, desc string, dir Direction) {
	trace.Bus = append(trace.Bus, BusOperation{
		Step:        len(trace.Bus) + 1,
		Kind:        kind,
		Line:        line,
		Address:     address,
		Data:        data,
		Description: desc,
		Direction:   dir,
	})
}

// access appends the address and data phases of a memory access.
func (trace *Trace) access(access memory.Access) {
	kind := BUS_READ
	dir := DIR_TO_CPU
	desc := f("read byte (8 bits)")
	if access.Size > 1 {
		desc = f("read word (16 bits)")
	}
	if access.Type == memory.ACCESS_WRITE {
		kind = BUS_WRITE
		dir = DIR_TO_MEMORY
		desc = f("write byte (8 bits)")
		if access.Size > 1 {
			desc = f("write word (16 bits)")
		}
	}

	trace.bus(kind, LINE_ADDRESS, access.Address, 0, f("CPU sends address"), DIR_TO_MEMORY)
	trace.bus(kind, LINE_DATA, access.Address, access.Value, desc, dir)
}

// Faulted returns true if the step ended in a runtime fault.
func (trace *Trace) Faulted() bool {
	return trace.Fault != nil
}
