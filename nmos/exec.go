// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nmos

import "github.com/beevik/tick6502/cpu"

// Execute performs one timing state of the instruction with the given
// opcode. It implements cpu.InstructionSet.
func (s *InstructionSet) Execute(c *cpu.CPU, opcode byte, t cpu.TCU) bool {
	inst := &s.instructions[opcode]
	f := &inst.impl

	switch {
	case f.seq != nil:
		return f.seq(c, inst.Mode, t)

	case inst.Mode == IMP || inst.Mode == ACC:
		c.Bus.Read(c.Reg.PC)
		return true

	case f.load != nil:
		if address(c, inst.Mode, t, false) {
			c.Bus.Read(c.ADL)
			return true
		}
		return false

	case f.store != nil:
		if !address(c, inst.Mode, t, true) {
			return false
		}
		v := f.store(c)
		if f.unstable {
			v = unstableStore(c, inst.Mode, v)
		}
		c.Bus.Store(c.ADL, v)
		return true

	case f.modify != nil:
		// Read-modify-write instructions read the operand, write it back
		// unmodified, then write the result.
		ready := modifyReady[inst.Mode]
		switch {
		case t < ready:
			address(c, inst.Mode, t, true)
		case t == ready:
			address(c, inst.Mode, t, true)
			c.Bus.Read(c.ADL)
		case t == ready+1:
			c.Bus.Store(c.ADL, c.Bus.Data)
		default:
			c.Bus.Store(c.ADL, f.modify(c, c.Bus.Data))
			return true
		}
		return false
	}

	// Unreachable for a complete table; treat as a one-byte NOP.
	c.Bus.Read(c.Reg.PC)
	return true
}

// Retire completes the instruction with the given opcode. It implements
// cpu.InstructionSet.
func (s *InstructionSet) Retire(c *cpu.CPU, opcode byte) {
	inst := &s.instructions[opcode]
	f := &inst.impl

	switch {
	case f.retire != nil:
		f.retire(c)
	case inst.Mode == ACC:
		c.Reg.A = f.modify(c, c.Reg.A)
	case f.exec != nil:
		f.exec(c)
	case f.load != nil:
		f.load(c, c.Bus.Data)
	}
}

// The timing state on which a read-modify-write instruction reads its
// operand, for each memory addressing mode.
var modifyReady = [...]cpu.TCU{
	ZPG: cpu.T2,
	ZPX: cpu.T3,
	ZPY: cpu.T3,
	ABS: cpu.T3,
	ABX: cpu.T4,
	ABY: cpu.T4,
	IDX: cpu.T5,
	IDY: cpu.T5,
}

// address runs the addressing cycles of a memory-operand instruction. It
// returns true on the timing state where the effective address is in
// c.ADL and the caller may perform the operand access. When fix is false
// (read instructions), an indexed access that does not cross a page skips
// the fix-up cycle.
func address(c *cpu.CPU, mode Mode, t cpu.TCU, fix bool) bool {
	d := c.Bus.Data

	switch mode {
	case IMM:
		c.ADL = c.Reg.PC
		c.Reg.PC++
		return true

	case ZPG:
		if t == cpu.T1 {
			fetchOperand(c)
			return false
		}
		c.ADL = uint16(d)
		return true

	case ZPX, ZPY:
		switch t {
		case cpu.T1:
			fetchOperand(c)
		case cpu.T2:
			c.ADL = uint16(d)
			c.Bus.Read(c.ADL)
		default:
			c.ADL = uint16(byte(c.ADL) + index(c, mode))
			return true
		}
		return false

	case ABS:
		switch t {
		case cpu.T1:
			fetchOperand(c)
		case cpu.T2:
			c.ADL = uint16(d)
			fetchOperand(c)
		default:
			c.ADL |= uint16(d) << 8
			return true
		}
		return false

	case ABX, ABY:
		switch t {
		case cpu.T1:
			fetchOperand(c)
		case cpu.T2:
			c.ADL = uint16(d)
			fetchOperand(c)
		case cpu.T3:
			return indexed(c, d, index(c, mode), fix)
		default:
			return fixPage(c, index(c, mode))
		}
		return false

	case IDX:
		switch t {
		case cpu.T1:
			fetchOperand(c)
		case cpu.T2:
			c.ADL = uint16(d)
			c.Bus.Read(c.ADL)
		case cpu.T3:
			c.ADL = uint16(byte(c.ADL) + c.Reg.X)
			c.Bus.Read(c.ADL)
		case cpu.T4:
			c.Bus.Read(uint16(byte(c.ADL) + 1))
			c.ADL = uint16(d)
		default:
			c.ADL |= uint16(d) << 8
			return true
		}
		return false

	case IDY:
		switch t {
		case cpu.T1:
			fetchOperand(c)
		case cpu.T2:
			c.ADL = uint16(d)
			c.Bus.Read(c.ADL)
		case cpu.T3:
			c.Bus.Read(uint16(byte(c.ADL) + 1))
			c.ADL = uint16(d)
		case cpu.T4:
			return indexed(c, d, c.Reg.Y, fix)
		default:
			return fixPage(c, c.Reg.Y)
		}
		return false
	}

	return true
}

// indexed combines the high address byte hi with the low byte in ADL plus
// idx, without carrying into the high byte. Unless a fix-up cycle is
// required, the address is ready. Otherwise the uncorrected address is read.
func indexed(c *cpu.CPU, hi byte, idx byte, fix bool) bool {
	lo := byte(c.ADL) + idx
	c.ADL = uint16(hi)<<8 | uint16(lo)
	if !fix && lo >= idx {
		return true
	}
	c.Bus.Read(c.ADL)
	return false
}

// fixPage carries into the high address byte if indexing crossed a page.
func fixPage(c *cpu.CPU, idx byte) bool {
	if byte(c.ADL) < idx {
		c.ADL += 0x100
	}
	return true
}

func index(c *cpu.CPU, mode Mode) byte {
	switch mode {
	case ZPY, ABY, IDY:
		return c.Reg.Y
	default:
		return c.Reg.X
	}
}

// unstableStore models the SHA/SHX/SHY/TAS family: the stored value is
// ANDed with the high byte of the base address plus one, and when indexing
// crosses a page the stored value replaces the high byte of the address.
func unstableStore(c *cpu.CPU, mode Mode, v byte) byte {
	idx := index(c, mode)
	crossed := byte(c.ADL) < idx
	hi := byte(c.ADL >> 8)
	if crossed {
		hi--
	}
	v &= hi + 1
	if crossed {
		c.ADL = uint16(v)<<8 | c.ADL&0xff
	}
	return v
}

func fetchOperand(c *cpu.CPU) {
	c.Bus.Read(c.Reg.PC)
	c.Reg.PC++
}

func push(c *cpu.CPU, v byte) {
	c.Bus.Store(cpu.StackAddress(c.Reg.SP), v)
	c.Reg.SP--
}

func readStack(c *cpu.CPU) {
	c.Bus.Read(cpu.StackAddress(c.Reg.SP))
}
