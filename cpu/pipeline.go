// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// A Pipeline delays interrupt requests on their way to the fetch boundary.
// Each cycle a request (or its absence) is registered in bit 0 and the
// register is shifted one position toward the most significant bit, so a
// bit's position is the number of cycles the request has aged. A request is
// serviceable while any bit inside the pipeline's window is set.
type Pipeline struct {
	bits   uint16
	prev   uint16
	window uint16
}

// Recognition windows. A request must have aged past bit 2 before it can be
// recognized at an opcode fetch, which places the last cycle on which a
// request can still be taken at the penultimate cycle of an instruction.
const (
	irqWindow uint16 = 1 << 3
	nmiWindow uint16 = 0xfff8
)

// NewIRQPipeline returns a pipeline for the level-sensitive IRQ input. Its
// window is a single bit: the IRQ line must still be asserted at the sample
// point or the request is lost.
func NewIRQPipeline() Pipeline {
	return Pipeline{window: irqWindow}
}

// NewNMIPipeline returns a pipeline for the edge-sensitive NMI input. Its
// window covers every position from the sample point to the top bit, which
// is longer than any instruction, so a latched edge is serviced at the next
// opcode fetch.
func NewNMIPipeline() Pipeline {
	return Pipeline{window: nmiWindow}
}

// Register sets the input bit if a request is active on the current cycle.
// An inactive input leaves the register unchanged, so a request latched on
// a stalled cycle survives until it is shifted.
func (p *Pipeline) Register(active bool) {
	if active {
		p.bits |= 1
	}
}

// Shift ages every registered request by one cycle. Requests shifted out of
// the top bit are lost.
func (p *Pipeline) Shift() {
	p.prev = p.bits
	p.bits <<= 1
}

// Undo restores the register to its state before the most recent Shift.
// It is used when a cycle is stalled and must not count toward a request's
// age. Only one Shift can be undone.
func (p *Pipeline) Undo() {
	p.bits = p.prev
}

// Serviceable returns true if a request lies inside the window.
func (p *Pipeline) Serviceable() bool {
	return p.bits&p.window != 0
}

// Trim discards the request being serviced along with every older bit,
// keeping only requests that are still too young to be recognized.
func (p *Pipeline) Trim() {
	p.bits &= p.window&-p.window - 1
}

// Bits returns the raw contents of the shift register.
func (p Pipeline) Bits() uint16 {
	return p.bits
}
