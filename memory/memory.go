// Package memory implements the 1 MiB byte-addressable real-mode memory,
// with a bounded log of every read and write.
package memory

import (
	"fmt"
	"slices"
)

// AccessType is the direction of a memory access.
type AccessType int

//go:generate go tool stringer -linecomment -type=AccessType
const (
	ACCESS_READ  = AccessType(0) // READ
	ACCESS_WRITE = AccessType(1) // WRITE
)

// Access is one logged memory access.
type Access struct {
	Type    AccessType
	Address uint32
	Value   uint16
	Size    int // In bytes.
}

// PhysicalAddress computes the 20-bit physical address of segment:offset.
func PhysicalAddress(segment, offset uint16) uint32 {
	return (uint32(segment)<<4 + uint32(offset)) & ADDRESS_MASK
}

// FormatAddress renders the physical address calculation, e.g.
// "(1000 << 4) + 0010 = 10010".
func FormatAddress(segment, offset uint16) string {
	return fmt.Sprintf("(%04X << 4) + %04X = %05X", segment, offset, PhysicalAddress(segment, offset))
}

// Memory is the physical memory. Data is exported for bulk inspection and
// direct editing, which bypasses the access log.
type Memory struct {
	Data     []byte // MEMORY_SIZE bytes.
	LogLimit int    // Access log capacity, or 0 for ACCESS_LOG_LIMIT.

	log []Access
}

// NewMemory creates a zero-filled memory.
func NewMemory() (mem *Memory) {
	mem = &Memory{
		Data: make([]byte, MEMORY_SIZE),
	}

	return
}

func (mem *Memory) record(access Access) {
	limit := mem.LogLimit
	if limit <= 0 {
		limit = ACCESS_LOG_LIMIT
	}

	mem.log = append(mem.log, access)
	if over := len(mem.log) - limit; over > 0 {
		mem.log = slices.Delete(mem.log, 0, over)
	}
}

// ReadByteAt reads a byte, and logs the access.
func (mem *Memory) ReadByteAt(address uint32) (value byte) {
	addr := address & ADDRESS_MASK
	value = mem.Data[addr]

	mem.record(Access{Type: ACCESS_READ, Address: addr, Value: uint16(value), Size: 1})

	return
}

// WriteByteAt writes a byte, and logs the access.
func (mem *Memory) WriteByteAt(address uint32, value byte) {
	addr := address & ADDRESS_MASK
	mem.Data[addr] = value

	mem.record(Access{Type: ACCESS_WRITE, Address: addr, Value: uint16(value), Size: 1})
}

// ReadWord reads a little-endian word as two logged byte reads.
func (mem *Memory) ReadWord(address uint32) uint16 {
	low := mem.ReadByteAt(address)
	high := mem.ReadByteAt(address + 1)
	return uint16(high)<<8 | uint16(low)
}

// WriteWord writes a little-endian word as two logged byte writes.
func (mem *Memory) WriteWord(address uint32, value uint16) {
	mem.WriteByteAt(address, byte(value&0xff))
	mem.WriteByteAt(address+1, byte(value>>8))
}

// PeekByte reads a byte without logging.
func (mem *Memory) PeekByte(address uint32) byte {
	return mem.Data[address&ADDRESS_MASK]
}

// PeekWord reads a little-endian word without logging.
func (mem *Memory) PeekWord(address uint32) uint16 {
	low := mem.Data[address&ADDRESS_MASK]
	high := mem.Data[(address+1)&ADDRESS_MASK]
	return uint16(high)<<8 | uint16(low)
}

// Range returns a copy of up to length bytes starting at start. The copy
// stops at the end of memory.
func (mem *Memory) Range(start uint32, length int) []byte {
	from := int(start & ADDRESS_MASK)
	to := min(from+max(length, 0), len(mem.Data))
	return slices.Clone(mem.Data[from:to])
}

// Load copies data into memory without logging, wrapping at the end of
// the physical address space.
func (mem *Memory) Load(address uint32, data []byte) {
	addr := address & ADDRESS_MASK
	for _, b := range data {
		mem.Data[addr] = b
		addr = (addr + 1) & ADDRESS_MASK
	}
}

// Accesses returns a copy of the access log, oldest first.
func (mem *Memory) Accesses() []Access {
	return slices.Clone(mem.log)
}

// ClearAccessLog empties the access log.
func (mem *Memory) ClearAccessLog() {
	mem.log = mem.log[:0]
}

// Reset zero-fills memory and clears the access log.
func (mem *Memory) Reset() {
	clear(mem.Data)
	mem.ClearAccessLog()
}
