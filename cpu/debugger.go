// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"cmp"
	"maps"
	"slices"
)

// A Debugger watches the cycles of a CPU and reports breakpoint hits to a
// BreakpointHandler. Three kinds of breakpoint are supported:
//
//   - execution breakpoints, hit by an opcode fetch from an address;
//   - data breakpoints, hit by a completed bus transaction on an address,
//     filtered by direction and optionally by the byte transferred;
//   - interrupt breakpoints, hit when the CPU begins a BRK, IRQ, NMI or
//     reset sequence.
//
// Handlers are called in the middle of CPU.Step. A write is reported on the
// cycle that drives it, before the bus is serviced. A read is reported on
// the next running cycle, once the bus peer has supplied the byte.
type Debugger struct {
	handler    BreakpointHandler
	exec       map[uint16]*Breakpoint
	data       map[uint16]*DataBreakpoint
	interrupts map[Interrupt]*InterruptBreakpoint
}

// The BreakpointHandler interface should be implemented by any object that
// wishes to receive debugger breakpoint notifications.
type BreakpointHandler interface {
	OnBreakpoint(cpu *CPU, b *Breakpoint)
	OnDataBreakpoint(cpu *CPU, b *DataBreakpoint, access Access, v byte)
	OnInterruptBreakpoint(cpu *CPU, b *InterruptBreakpoint)
}

// A Breakpoint is an address whose opcode fetch stops the host before the
// instruction there executes.
type Breakpoint struct {
	Address  uint16 // address of execution breakpoint
	Disabled bool   // this breakpoint is currently disabled
}

// Access is a set of bus transaction directions.
type Access byte

// Bus transaction directions.
const (
	ReadAccess Access = 1 << iota
	WriteAccess

	AnyAccess = ReadAccess | WriteAccess
)

func (a Access) String() string {
	switch a {
	case ReadAccess:
		return "R"
	case WriteAccess:
		return "W"
	case AnyAccess:
		return "RW"
	}
	return "-"
}

// busAccess returns the direction of the transaction on bus b.
func busAccess(b *Bus) Access {
	if b.Write {
		return WriteAccess
	}
	return ReadAccess
}

// A DataBreakpoint is an address whose bus transactions stop the host.
type DataBreakpoint struct {
	Address     uint16 // breakpoint triggered by transactions on this address
	Access      Access // transaction directions that trigger the breakpoint
	Disabled    bool   // this breakpoint is currently disabled
	Conditional bool   // only hit when Value is the byte transferred
	Value       byte
}

// An InterruptBreakpoint stops the host when the CPU starts the BRK-class
// sequence of the given kind.
type InterruptBreakpoint struct {
	Kind     Interrupt
	Disabled bool
}

// NewDebugger creates a new CPU debugger.
func NewDebugger(handler BreakpointHandler) *Debugger {
	return &Debugger{
		handler:    handler,
		exec:       make(map[uint16]*Breakpoint),
		data:       make(map[uint16]*DataBreakpoint),
		interrupts: make(map[Interrupt]*InterruptBreakpoint),
	}
}

// GetBreakpoint returns the execution breakpoint at addr, or nil.
func (d *Debugger) GetBreakpoint(addr uint16) *Breakpoint {
	return d.exec[addr]
}

// GetBreakpoints returns all execution breakpoints sorted by address.
func (d *Debugger) GetBreakpoints() []*Breakpoint {
	return slices.SortedFunc(maps.Values(d.exec), func(a, b *Breakpoint) int {
		return cmp.Compare(a.Address, b.Address)
	})
}

// AddBreakpoint adds an execution breakpoint at addr, replacing any
// breakpoint already set there.
func (d *Debugger) AddBreakpoint(addr uint16) *Breakpoint {
	b := &Breakpoint{Address: addr}
	d.exec[addr] = b
	return b
}

// RemoveBreakpoint removes the execution breakpoint at addr.
func (d *Debugger) RemoveBreakpoint(addr uint16) {
	delete(d.exec, addr)
}

// GetDataBreakpoint returns the data breakpoint on addr, or nil.
func (d *Debugger) GetDataBreakpoint(addr uint16) *DataBreakpoint {
	return d.data[addr]
}

// GetDataBreakpoints returns all data breakpoints sorted by address.
func (d *Debugger) GetDataBreakpoints() []*DataBreakpoint {
	return slices.SortedFunc(maps.Values(d.data), func(a, b *DataBreakpoint) int {
		return cmp.Compare(a.Address, b.Address)
	})
}

// AddDataBreakpoint adds a data breakpoint hit by any transaction in the
// access set on addr.
func (d *Debugger) AddDataBreakpoint(addr uint16, access Access) *DataBreakpoint {
	b := &DataBreakpoint{Address: addr, Access: access}
	d.data[addr] = b
	return b
}

// AddConditionalDataBreakpoint adds a data breakpoint that is hit only
// when value is transferred on addr in one of the access directions.
func (d *Debugger) AddConditionalDataBreakpoint(addr uint16, access Access, value byte) *DataBreakpoint {
	b := &DataBreakpoint{Address: addr, Access: access, Conditional: true, Value: value}
	d.data[addr] = b
	return b
}

// RemoveDataBreakpoint removes the data breakpoint on addr.
func (d *Debugger) RemoveDataBreakpoint(addr uint16) {
	delete(d.data, addr)
}

// GetInterruptBreakpoint returns the breakpoint on interrupt kind k, or
// nil.
func (d *Debugger) GetInterruptBreakpoint(k Interrupt) *InterruptBreakpoint {
	return d.interrupts[k]
}

// GetInterruptBreakpoints returns all interrupt breakpoints in Interrupt
// order.
func (d *Debugger) GetInterruptBreakpoints() []*InterruptBreakpoint {
	return slices.SortedFunc(maps.Values(d.interrupts), func(a, b *InterruptBreakpoint) int {
		return cmp.Compare(a.Kind, b.Kind)
	})
}

// AddInterruptBreakpoint adds a breakpoint on interrupt kind k.
func (d *Debugger) AddInterruptBreakpoint(k Interrupt) *InterruptBreakpoint {
	b := &InterruptBreakpoint{Kind: k}
	d.interrupts[k] = b
	return b
}

// RemoveInterruptBreakpoint removes the breakpoint on interrupt kind k.
func (d *Debugger) RemoveInterruptBreakpoint(k Interrupt) {
	delete(d.interrupts, k)
}

func (d *Debugger) onFetch(cpu *CPU, addr uint16) {
	if b, ok := d.exec[addr]; ok && !b.Disabled && d.handler != nil {
		d.handler.OnBreakpoint(cpu, b)
	}
}

// onTransaction checks a bus transaction against the data breakpoints.
func (d *Debugger) onTransaction(cpu *CPU, bus Bus) {
	b, ok := d.data[bus.Addr]
	if !ok || b.Disabled || d.handler == nil {
		return
	}
	access := busAccess(&bus)
	if b.Access&access == 0 || (b.Conditional && b.Value != bus.Data) {
		return
	}
	d.handler.OnDataBreakpoint(cpu, b, access, bus.Data)
}

func (d *Debugger) onInterrupt(cpu *CPU, k Interrupt) {
	if b, ok := d.interrupts[k]; ok && !b.Disabled && d.handler != nil {
		d.handler.OnInterruptBreakpoint(cpu, b)
	}
}
