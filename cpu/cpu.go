// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements a cycle-stepped 6502 CPU core.
//
// The CPU performs exactly one bus transaction per call to Step. It never
// touches memory itself: after each step the host services the transaction
// described by the CPU's Bus, then sets the input pins for the next cycle.
// The behavior of individual opcodes is supplied by an InstructionSet.
package cpu

// CPU represents a single 6502 CPU.
type CPU struct {
	Reg      Registers      // CPU registers
	Pins     Pins           // control signals
	Bus      Bus            // transaction for the current cycle
	ADL      uint16         // address latch used by multi-cycle sequences
	Opcode   byte           // opcode of the instruction being executed
	TCU      TCU            // timing state of the current cycle
	Jammed   bool           // the CPU has halted on a JAM opcode
	Schedule Interrupt      // sequence run by the next BRK opcode
	Cycles   uint64         // total clock cycles stepped
	LastPC   uint16         // address of the most recent opcode fetch
	InstSet  InstructionSet // per-opcode cycle behavior
	irq      Pipeline
	nmi      Pipeline
	prevNMI  bool
	retire   bool
	issued   bool
	debugger *Debugger
}

// NewCPU creates an emulated 6502 CPU that executes instructions from the
// instruction set. All pins start deasserted, so the host must assert
// ReadyPin before the CPU will make progress.
func NewCPU(set InstructionSet) *CPU {
	cpu := &CPU{InstSet: set}
	cpu.init()
	return cpu
}

func (cpu *CPU) init() {
	cpu.Reg.Init()
	cpu.Bus = Bus{}
	cpu.ADL = 0
	cpu.Opcode = 0x00
	cpu.TCU.Reset()
	cpu.Jammed = false
	cpu.Schedule = Break
	cpu.irq = NewIRQPipeline()
	cpu.nmi = NewNMIPipeline()
	cpu.prevNMI = false
	cpu.retire = false
	cpu.issued = false
}

// Reset returns the CPU to its constructed state and schedules the reset
// sequence, which begins on the next Step. Input pins are left as the host
// last set them.
func (cpu *CPU) Reset() {
	pins := cpu.Pins &^ SyncPin
	cpu.init()
	cpu.Pins = pins
	cpu.Schedule = Reset
}

// SetPC updates the CPU program counter to 'addr'. If the current cycle is
// an opcode fetch, the fetch is reissued at the new address and the caller
// must service the bus again. Otherwise the next opcode fetch takes place
// at the new address.
func (cpu *CPU) SetPC(addr uint16) {
	cpu.Reg.PC = addr
	if cpu.Pins.Has(SyncPin) && cpu.Schedule == Break {
		cpu.LastPC = addr
		cpu.Bus.Read(addr)
		cpu.Reg.PC++
	}
}

// SetPin asserts or deasserts the control signal p.
func (cpu *CPU) SetPin(p Pins, on bool) {
	cpu.Pins = cpu.Pins.With(p, on)
}

// Pipelines returns copies of the IRQ and NMI recognition pipelines.
func (cpu *CPU) Pipelines() (irq, nmi Pipeline) {
	return cpu.irq, cpu.nmi
}

// Step the cpu by one clock cycle.
func (cpu *CPU) Step() {
	cpu.Cycles++
	if cpu.Jammed {
		return
	}

	// Sample the interrupt inputs. NMI is registered only on the cycle the
	// line goes from deasserted to asserted.
	nmi := cpu.Pins.Has(NMIPin)
	cpu.nmi.Register(nmi && !cpu.prevNMI)
	cpu.irq.Register(cpu.Pins.Has(IRQPin))
	cpu.nmi.Shift()
	cpu.irq.Shift()

	// With RDY deasserted a read cycle is repeated. Write cycles ignore RDY.
	if !cpu.Pins.Has(ReadyPin) && !cpu.Bus.Write {
		cpu.nmi.Undo()
		cpu.irq.Undo()
		return
	}
	cpu.prevNMI = nmi

	// The read issued on the previous cycle has been serviced.
	if cpu.debugger != nil && cpu.issued && !cpu.Bus.Write {
		cpu.debugger.onTransaction(cpu, cpu.Bus)
	}
	cpu.issued = true

	cpu.TCU.Advance()
	if cpu.TCU == T0 {
		cpu.fetch()
		return
	}

	cpu.Pins &^= SyncPin
	if cpu.TCU == T1 {
		if cpu.Schedule != Break {
			cpu.Opcode = 0x00
		} else {
			cpu.Opcode = cpu.Bus.Data
			if cpu.Opcode == 0x00 && cpu.debugger != nil {
				cpu.debugger.onInterrupt(cpu, Break)
			}
		}
	}

	if cpu.InstSet.Execute(cpu, cpu.Opcode, cpu.TCU) {
		cpu.TCU.Reset()
		cpu.retire = true
	}

	if cpu.debugger != nil && cpu.Bus.Write {
		cpu.debugger.onTransaction(cpu, cpu.Bus)
	}
}

// fetch performs the opcode fetch cycle. Interrupts are recognized here,
// before the previous instruction retires, so a change to the interrupt
// disable flag made by that instruction takes effect one instruction late.
func (cpu *CPU) fetch() {
	if cpu.Schedule == Break {
		switch {
		case cpu.nmi.Serviceable():
			cpu.nmi.Trim()
			cpu.Schedule = NMI
		case cpu.irq.Serviceable() && !cpu.Reg.Flag(InterruptDisable):
			cpu.irq.Trim()
			cpu.Schedule = IRQ
		}
	}

	if cpu.retire {
		cpu.InstSet.Retire(cpu, cpu.Opcode)
		cpu.retire = false
	}

	cpu.LastPC = cpu.Reg.PC
	cpu.Bus.Read(cpu.Reg.PC)
	cpu.Pins |= SyncPin

	// While an interrupt is pending the fetched opcode is discarded and the
	// program counter holds the address to return to.
	if cpu.Schedule == Break {
		cpu.Reg.PC++
	}

	if cpu.debugger != nil {
		if cpu.Schedule == Break {
			cpu.debugger.onFetch(cpu, cpu.LastPC)
		} else {
			cpu.debugger.onInterrupt(cpu, cpu.Schedule)
		}
	}
}

// AttachDebugger attaches a debugger to the CPU. The debugger receives
// notifications of opcode fetches, bus transactions and the start of
// interrupt sequences.
func (cpu *CPU) AttachDebugger(debugger *Debugger) {
	cpu.debugger = debugger
}

// DetachDebugger detaches the currently debugger from the CPU.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
}
