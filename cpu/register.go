// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Registers contains the state of all 6502 registers.
type Registers struct {
	A  byte   // accumulator
	X  byte   // X indexing register
	Y  byte   // Y indexing register
	SP byte   // stack pointer ($100 + SP = stack memory location)
	PC uint16 // program counter
	PS Flags  // processor status
}

// Bits of the status byte that are not processor flags. They appear only
// in the status byte pushed to the stack.
const (
	BreakBit    = 1 << 4
	ReservedBit = 1 << 5
)

// Flag returns true if the status flag f is set.
func (r *Registers) Flag(f Flags) bool {
	return r.PS.Has(f)
}

// SetFlag sets or clears the status flag f.
func (r *Registers) SetFlag(f Flags, on bool) {
	r.PS = r.PS.With(f, on)
}

// UpdateNZ sets the zero and negative flags based on v.
func (r *Registers) UpdateNZ(v byte) {
	r.PS = r.PS.With(Zero, v == 0).With(Negative, v&0x80 != 0)
}

// SavePS returns the processor status as it is pushed to the stack. The
// reserved bit is always on; the break bit is on only if requested.
func (r *Registers) SavePS(brk bool) byte {
	ps := byte(r.PS) | ReservedBit
	if brk {
		ps |= BreakBit
	}
	return ps
}

// RestorePS restores the processor status from a byte pulled from the
// stack. The break and reserved bits are ignored.
func (r *Registers) RestorePS(ps byte) {
	r.PS = Flags(ps) & flagsMask
}

// Init initializes all registers to zero.
func (r *Registers) Init() {
	*r = Registers{}
}

// StackAddress returns the memory address of stack slot sp.
func StackAddress(sp byte) uint16 {
	return uint16(0x100) + uint16(sp)
}
