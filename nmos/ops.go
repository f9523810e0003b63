// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nmos

import "github.com/beevik/tick6502/cpu"

// opfuncs holds the behavior of an instruction. Which fields are set
// determines how the instruction's cycles are sequenced:
//
//	seq     the instruction sequences its own cycles (stack, flow control)
//	exec    implied: one dummy read, then exec on retirement
//	load    the operand is read on the last cycle and consumed on retirement
//	store   the value is written on the last cycle
//	modify  read, dummy write, write; also applied to A in accumulator mode
type opfuncs struct {
	seq      func(c *cpu.CPU, mode Mode, t cpu.TCU) bool
	retire   func(c *cpu.CPU)
	exec     func(c *cpu.CPU)
	load     func(c *cpu.CPU, v byte)
	store    func(c *cpu.CPU) byte
	modify   func(c *cpu.CPU, v byte) byte
	unstable bool
}

// Emulator implementation for each opcode
type opcodeImpl struct {
	sym        opsym
	name       string
	unofficial bool
	fn         opfuncs
}

func implementations(arch Architecture) []opcodeImpl {
	decimal := arch == NMOS
	adc := adcFunc(decimal)
	sbc := sbcFunc(decimal)

	return []opcodeImpl{
		{symADC, "ADC", false, opfuncs{load: adc}},
		{symAND, "AND", false, opfuncs{load: and}},
		{symASL, "ASL", false, opfuncs{modify: asl}},
		{symBCC, "BCC", false, opfuncs{seq: branch(cpu.Carry, false)}},
		{symBCS, "BCS", false, opfuncs{seq: branch(cpu.Carry, true)}},
		{symBEQ, "BEQ", false, opfuncs{seq: branch(cpu.Zero, true)}},
		{symBIT, "BIT", false, opfuncs{load: bit}},
		{symBMI, "BMI", false, opfuncs{seq: branch(cpu.Negative, true)}},
		{symBNE, "BNE", false, opfuncs{seq: branch(cpu.Zero, false)}},
		{symBPL, "BPL", false, opfuncs{seq: branch(cpu.Negative, false)}},
		{symBRK, "BRK", false, opfuncs{seq: brk, retire: retireJump}},
		{symBVC, "BVC", false, opfuncs{seq: branch(cpu.Overflow, false)}},
		{symBVS, "BVS", false, opfuncs{seq: branch(cpu.Overflow, true)}},
		{symCLC, "CLC", false, opfuncs{exec: setFlag(cpu.Carry, false)}},
		{symCLD, "CLD", false, opfuncs{exec: setFlag(cpu.Decimal, false)}},
		{symCLI, "CLI", false, opfuncs{exec: setFlag(cpu.InterruptDisable, false)}},
		{symCLV, "CLV", false, opfuncs{exec: setFlag(cpu.Overflow, false)}},
		{symCMP, "CMP", false, opfuncs{load: cmp}},
		{symCPX, "CPX", false, opfuncs{load: cpx}},
		{symCPY, "CPY", false, opfuncs{load: cpy}},
		{symDEC, "DEC", false, opfuncs{modify: dec}},
		{symDEX, "DEX", false, opfuncs{exec: dex}},
		{symDEY, "DEY", false, opfuncs{exec: dey}},
		{symEOR, "EOR", false, opfuncs{load: eor}},
		{symINC, "INC", false, opfuncs{modify: inc}},
		{symINX, "INX", false, opfuncs{exec: inx}},
		{symINY, "INY", false, opfuncs{exec: iny}},
		{symJMP, "JMP", false, opfuncs{seq: jmp, retire: retireJump}},
		{symJSR, "JSR", false, opfuncs{seq: jsr, retire: retireJump}},
		{symLDA, "LDA", false, opfuncs{load: lda}},
		{symLDX, "LDX", false, opfuncs{load: ldx}},
		{symLDY, "LDY", false, opfuncs{load: ldy}},
		{symLSR, "LSR", false, opfuncs{modify: lsr}},
		{symNOP, "NOP", false, opfuncs{exec: nop, load: nopLoad}},
		{symORA, "ORA", false, opfuncs{load: ora}},
		{symPHA, "PHA", false, opfuncs{seq: pha}},
		{symPHP, "PHP", false, opfuncs{seq: php}},
		{symPLA, "PLA", false, opfuncs{seq: pull, retire: pla}},
		{symPLP, "PLP", false, opfuncs{seq: pull, retire: plp}},
		{symROL, "ROL", false, opfuncs{modify: rol}},
		{symROR, "ROR", false, opfuncs{modify: ror}},
		{symRTI, "RTI", false, opfuncs{seq: rti, retire: retireJump}},
		{symRTS, "RTS", false, opfuncs{seq: rts}},
		{symSBC, "SBC", false, opfuncs{load: sbc}},
		{symSEC, "SEC", false, opfuncs{exec: setFlag(cpu.Carry, true)}},
		{symSED, "SED", false, opfuncs{exec: setFlag(cpu.Decimal, true)}},
		{symSEI, "SEI", false, opfuncs{exec: setFlag(cpu.InterruptDisable, true)}},
		{symSTA, "STA", false, opfuncs{store: sta}},
		{symSTX, "STX", false, opfuncs{store: stx}},
		{symSTY, "STY", false, opfuncs{store: sty}},
		{symTAX, "TAX", false, opfuncs{exec: tax}},
		{symTAY, "TAY", false, opfuncs{exec: tay}},
		{symTSX, "TSX", false, opfuncs{exec: tsx}},
		{symTXA, "TXA", false, opfuncs{exec: txa}},
		{symTXS, "TXS", false, opfuncs{exec: txs}},
		{symTYA, "TYA", false, opfuncs{exec: tya}},

		{symALR, "ALR", true, opfuncs{load: alr}},
		{symANC, "ANC", true, opfuncs{load: anc}},
		{symANE, "ANE", true, opfuncs{load: ane}},
		{symARR, "ARR", true, opfuncs{load: arr}},
		{symDCP, "DCP", true, opfuncs{modify: dcp}},
		{symISC, "ISC", true, opfuncs{modify: iscFunc(sbc)}},
		{symJAM, "JAM", true, opfuncs{seq: jam}},
		{symLAS, "LAS", true, opfuncs{load: las}},
		{symLAX, "LAX", true, opfuncs{load: lax}},
		{symLXA, "LXA", true, opfuncs{load: lxa}},
		{symRLA, "RLA", true, opfuncs{modify: rla}},
		{symRRA, "RRA", true, opfuncs{modify: rraFunc(adc)}},
		{symSAX, "SAX", true, opfuncs{store: sax}},
		{symSBX, "SBX", true, opfuncs{load: sbx}},
		{symSHA, "SHA", true, opfuncs{store: sha, unstable: true}},
		{symSHX, "SHX", true, opfuncs{store: stx, unstable: true}},
		{symSHY, "SHY", true, opfuncs{store: sty, unstable: true}},
		{symSLO, "SLO", true, opfuncs{modify: slo}},
		{symSRE, "SRE", true, opfuncs{modify: sre}},
		{symTAS, "TAS", true, opfuncs{store: tas, unstable: true}},
		{symUSBC, "USBC", true, opfuncs{load: sbc}},
	}
}

// magic is the value the unstable ANE and LXA instructions OR into the
// accumulator. It varies between chips and with temperature.
const magic = 0xee

//
// Flow control and stack sequences
//

// brk runs the BRK sequence, which also serves as the entry sequence for
// IRQ, NMI and reset. The pending interrupt selects the vector and decides
// whether the pushes are real writes (reset turns them into reads) and
// whether the pushed status has the break bit set.
func brk(c *cpu.CPU, mode Mode, t cpu.TCU) bool {
	switch t {
	case cpu.T1:
		c.Bus.Read(c.Reg.PC)
		if c.Schedule == cpu.Break {
			c.Reg.PC++
		}
		c.ADL = c.Schedule.Vector()
	case cpu.T2:
		pushInterrupt(c, byte(c.Reg.PC>>8))
	case cpu.T3:
		pushInterrupt(c, byte(c.Reg.PC))
	case cpu.T4:
		pushInterrupt(c, c.Reg.SavePS(c.Schedule == cpu.Break))
	case cpu.T5:
		c.Bus.Read(c.ADL)
		c.Reg.SetFlag(cpu.InterruptDisable, true)
		c.Schedule = cpu.Break
	default:
		c.Bus.Read(c.ADL + 1)
		c.ADL = uint16(c.Bus.Data)
		return true
	}
	return false
}

func pushInterrupt(c *cpu.CPU, v byte) {
	if c.Schedule == cpu.Reset {
		readStack(c)
		c.Reg.SP--
	} else {
		push(c, v)
	}
}

func jsr(c *cpu.CPU, mode Mode, t cpu.TCU) bool {
	switch t {
	case cpu.T1:
		fetchOperand(c)
	case cpu.T2:
		c.ADL = uint16(c.Bus.Data)
		readStack(c)
	case cpu.T3:
		push(c, byte(c.Reg.PC>>8))
	case cpu.T4:
		push(c, byte(c.Reg.PC))
	default:
		c.Bus.Read(c.Reg.PC)
		return true
	}
	return false
}

func rti(c *cpu.CPU, mode Mode, t cpu.TCU) bool {
	switch t {
	case cpu.T1:
		c.Bus.Read(c.Reg.PC)
	case cpu.T2:
		readStack(c)
		c.Reg.SP++
	case cpu.T3:
		readStack(c)
		c.Reg.SP++
	case cpu.T4:
		c.Reg.RestorePS(c.Bus.Data)
		readStack(c)
		c.Reg.SP++
	default:
		c.ADL = uint16(c.Bus.Data)
		readStack(c)
		return true
	}
	return false
}

func rts(c *cpu.CPU, mode Mode, t cpu.TCU) bool {
	switch t {
	case cpu.T1:
		c.Bus.Read(c.Reg.PC)
	case cpu.T2, cpu.T3:
		readStack(c)
		c.Reg.SP++
	case cpu.T4:
		c.ADL = uint16(c.Bus.Data)
		readStack(c)
	default:
		c.Reg.PC = uint16(c.Bus.Data)<<8 | c.ADL
		fetchOperand(c)
		return true
	}
	return false
}

func jmp(c *cpu.CPU, mode Mode, t cpu.TCU) bool {
	switch t {
	case cpu.T1:
		fetchOperand(c)
	case cpu.T2:
		c.ADL = uint16(c.Bus.Data)
		fetchOperand(c)
		return mode == ABS
	case cpu.T3:
		c.ADL |= uint16(c.Bus.Data) << 8
		c.Bus.Read(c.ADL)
	default:
		// The pointer's high byte is read without carrying into the
		// pointer's page.
		c.Bus.Read(c.ADL&0xff00 | uint16(byte(c.ADL)+1))
		c.ADL = uint16(c.Bus.Data)
		return true
	}
	return false
}

// retireJump loads PC from the low byte latched in ADL and the high byte
// read on the instruction's last cycle.
func retireJump(c *cpu.CPU) {
	c.Reg.PC = uint16(c.Bus.Data)<<8 | c.ADL&0xff
}

func pha(c *cpu.CPU, mode Mode, t cpu.TCU) bool {
	if t == cpu.T1 {
		c.Bus.Read(c.Reg.PC)
		return false
	}
	push(c, c.Reg.A)
	return true
}

func php(c *cpu.CPU, mode Mode, t cpu.TCU) bool {
	if t == cpu.T1 {
		c.Bus.Read(c.Reg.PC)
		return false
	}
	push(c, c.Reg.SavePS(true))
	return true
}

func pull(c *cpu.CPU, mode Mode, t cpu.TCU) bool {
	switch t {
	case cpu.T1:
		c.Bus.Read(c.Reg.PC)
	case cpu.T2:
		readStack(c)
		c.Reg.SP++
	default:
		readStack(c)
		return true
	}
	return false
}

func pla(c *cpu.CPU) {
	c.Reg.A = c.Bus.Data
	c.Reg.UpdateNZ(c.Reg.A)
}

func plp(c *cpu.CPU) {
	c.Reg.RestorePS(c.Bus.Data)
}

// branch returns the sequence for a conditional branch taken when flag f
// has the value set. A taken branch costs one extra cycle, and one more if
// the target lies in another page.
func branch(f cpu.Flags, set bool) func(c *cpu.CPU, mode Mode, t cpu.TCU) bool {
	return func(c *cpu.CPU, mode Mode, t cpu.TCU) bool {
		switch t {
		case cpu.T1:
			fetchOperand(c)
			return c.Reg.Flag(f) != set
		case cpu.T2:
			target := c.Reg.PC + uint16(int8(c.Bus.Data))
			c.Bus.Read(c.Reg.PC)
			c.ADL = target
			c.Reg.PC = c.Reg.PC&0xff00 | target&0x00ff
			return c.Reg.PC == target
		default:
			c.Bus.Read(c.Reg.PC)
			c.Reg.PC = c.ADL
			return true
		}
	}
}

// jam halts the CPU. Only a reset recovers it.
func jam(c *cpu.CPU, mode Mode, t cpu.TCU) bool {
	c.Bus.Read(0xffff)
	c.Jammed = true
	return false
}

//
// Implied instructions
//

func nop(c *cpu.CPU) {}

func nopLoad(c *cpu.CPU, v byte) {}

func setFlag(f cpu.Flags, on bool) func(c *cpu.CPU) {
	return func(c *cpu.CPU) {
		c.Reg.SetFlag(f, on)
	}
}

func dex(c *cpu.CPU) {
	c.Reg.X--
	c.Reg.UpdateNZ(c.Reg.X)
}

func dey(c *cpu.CPU) {
	c.Reg.Y--
	c.Reg.UpdateNZ(c.Reg.Y)
}

func inx(c *cpu.CPU) {
	c.Reg.X++
	c.Reg.UpdateNZ(c.Reg.X)
}

func iny(c *cpu.CPU) {
	c.Reg.Y++
	c.Reg.UpdateNZ(c.Reg.Y)
}

func tax(c *cpu.CPU) {
	c.Reg.X = c.Reg.A
	c.Reg.UpdateNZ(c.Reg.X)
}

func tay(c *cpu.CPU) {
	c.Reg.Y = c.Reg.A
	c.Reg.UpdateNZ(c.Reg.Y)
}

func tsx(c *cpu.CPU) {
	c.Reg.X = c.Reg.SP
	c.Reg.UpdateNZ(c.Reg.X)
}

func txa(c *cpu.CPU) {
	c.Reg.A = c.Reg.X
	c.Reg.UpdateNZ(c.Reg.A)
}

func txs(c *cpu.CPU) {
	c.Reg.SP = c.Reg.X
}

func tya(c *cpu.CPU) {
	c.Reg.A = c.Reg.Y
	c.Reg.UpdateNZ(c.Reg.A)
}

//
// Read instructions
//

func lda(c *cpu.CPU, v byte) {
	c.Reg.A = v
	c.Reg.UpdateNZ(v)
}

func ldx(c *cpu.CPU, v byte) {
	c.Reg.X = v
	c.Reg.UpdateNZ(v)
}

func ldy(c *cpu.CPU, v byte) {
	c.Reg.Y = v
	c.Reg.UpdateNZ(v)
}

func and(c *cpu.CPU, v byte) {
	c.Reg.A &= v
	c.Reg.UpdateNZ(c.Reg.A)
}

func ora(c *cpu.CPU, v byte) {
	c.Reg.A |= v
	c.Reg.UpdateNZ(c.Reg.A)
}

func eor(c *cpu.CPU, v byte) {
	c.Reg.A ^= v
	c.Reg.UpdateNZ(c.Reg.A)
}

func bit(c *cpu.CPU, v byte) {
	c.Reg.SetFlag(cpu.Zero, c.Reg.A&v == 0)
	c.Reg.SetFlag(cpu.Negative, v&0x80 != 0)
	c.Reg.SetFlag(cpu.Overflow, v&0x40 != 0)
}

func compare(c *cpu.CPU, reg, v byte) {
	c.Reg.SetFlag(cpu.Carry, reg >= v)
	c.Reg.UpdateNZ(reg - v)
}

func cmp(c *cpu.CPU, v byte) { compare(c, c.Reg.A, v) }
func cpx(c *cpu.CPU, v byte) { compare(c, c.Reg.X, v) }
func cpy(c *cpu.CPU, v byte) { compare(c, c.Reg.Y, v) }

func adcFunc(decimal bool) func(c *cpu.CPU, v byte) {
	return func(c *cpu.CPU, v byte) {
		if decimal && c.Reg.Flag(cpu.Decimal) {
			adcDecimal(c, v)
		} else {
			adcBinary(c, v)
		}
	}
}

func adcBinary(c *cpu.CPU, v byte) {
	acc := uint32(c.Reg.A)
	add := uint32(v)
	r := acc + add + carry(c)
	c.Reg.SetFlag(cpu.Carry, r >= 0x100)
	c.Reg.SetFlag(cpu.Overflow, (acc^r)&(add^r)&0x80 != 0)
	c.Reg.A = byte(r)
	c.Reg.UpdateNZ(c.Reg.A)
}

func adcDecimal(c *cpu.CPU, v byte) {
	acc := uint32(c.Reg.A)
	add := uint32(v)

	lo := (acc & 0x0f) + (add & 0x0f) + carry(c)
	var carrylo uint32
	if lo >= 0x0a {
		carrylo = 0x10
		lo -= 0x0a
	}

	hi := (acc & 0xf0) + (add & 0xf0) + carrylo
	c.Reg.SetFlag(cpu.Carry, hi >= 0xa0)
	if hi >= 0xa0 {
		hi -= 0xa0
	}

	r := hi | lo
	c.Reg.SetFlag(cpu.Overflow, (acc^r)&0x80 != 0 && (acc^add)&0x80 == 0)
	c.Reg.A = byte(r)
	c.Reg.UpdateNZ(c.Reg.A)
}

func sbcFunc(decimal bool) func(c *cpu.CPU, v byte) {
	return func(c *cpu.CPU, v byte) {
		if decimal && c.Reg.Flag(cpu.Decimal) {
			sbcDecimal(c, v)
		} else {
			adcBinary(c, ^v)
		}
	}
}

func sbcDecimal(c *cpu.CPU, v byte) {
	acc := uint32(c.Reg.A)
	sub := uint32(v)

	lo := 0x0f + (acc & 0x0f) - (sub & 0x0f) + carry(c)
	var carrylo uint32
	if lo < 0x10 {
		lo -= 0x06
	} else {
		lo -= 0x10
		carrylo = 0x10
	}

	hi := 0xf0 + (acc & 0xf0) - (sub & 0xf0) + carrylo
	if hi < 0x100 {
		c.Reg.SetFlag(cpu.Carry, false)
		hi -= 0x60
	} else {
		c.Reg.SetFlag(cpu.Carry, true)
		hi -= 0x100
	}

	r := (hi & 0xf0) | (lo & 0x0f)
	c.Reg.SetFlag(cpu.Overflow, (acc^r)&0x80 != 0 && (acc^sub)&0x80 != 0)
	c.Reg.A = byte(r)
	c.Reg.UpdateNZ(c.Reg.A)
}

func carry(c *cpu.CPU) uint32 {
	if c.Reg.Flag(cpu.Carry) {
		return 1
	}
	return 0
}

func lax(c *cpu.CPU, v byte) {
	c.Reg.A = v
	c.Reg.X = v
	c.Reg.UpdateNZ(v)
}

func las(c *cpu.CPU, v byte) {
	v &= c.Reg.SP
	c.Reg.A = v
	c.Reg.X = v
	c.Reg.SP = v
	c.Reg.UpdateNZ(v)
}

func anc(c *cpu.CPU, v byte) {
	and(c, v)
	c.Reg.SetFlag(cpu.Carry, c.Reg.A&0x80 != 0)
}

func alr(c *cpu.CPU, v byte) {
	c.Reg.A = lsr(c, c.Reg.A&v)
}

func arr(c *cpu.CPU, v byte) {
	c.Reg.A = ror(c, c.Reg.A&v)
	c.Reg.SetFlag(cpu.Carry, c.Reg.A&0x40 != 0)
	c.Reg.SetFlag(cpu.Overflow, (c.Reg.A>>6^c.Reg.A>>5)&1 != 0)
}

func sbx(c *cpu.CPU, v byte) {
	ax := c.Reg.A & c.Reg.X
	c.Reg.SetFlag(cpu.Carry, ax >= v)
	c.Reg.X = ax - v
	c.Reg.UpdateNZ(c.Reg.X)
}

func ane(c *cpu.CPU, v byte) {
	c.Reg.A = (c.Reg.A | magic) & c.Reg.X & v
	c.Reg.UpdateNZ(c.Reg.A)
}

func lxa(c *cpu.CPU, v byte) {
	lax(c, (c.Reg.A|magic)&v)
}

//
// Write instructions
//

func sta(c *cpu.CPU) byte { return c.Reg.A }
func stx(c *cpu.CPU) byte { return c.Reg.X }
func sty(c *cpu.CPU) byte { return c.Reg.Y }
func sax(c *cpu.CPU) byte { return c.Reg.A & c.Reg.X }
func sha(c *cpu.CPU) byte { return c.Reg.A & c.Reg.X }

func tas(c *cpu.CPU) byte {
	c.Reg.SP = c.Reg.A & c.Reg.X
	return c.Reg.SP
}

//
// Read-modify-write instructions
//

func asl(c *cpu.CPU, v byte) byte {
	c.Reg.SetFlag(cpu.Carry, v&0x80 != 0)
	v <<= 1
	c.Reg.UpdateNZ(v)
	return v
}

func lsr(c *cpu.CPU, v byte) byte {
	c.Reg.SetFlag(cpu.Carry, v&0x01 != 0)
	v >>= 1
	c.Reg.UpdateNZ(v)
	return v
}

func rol(c *cpu.CPU, v byte) byte {
	r := v<<1 | byte(carry(c))
	c.Reg.SetFlag(cpu.Carry, v&0x80 != 0)
	c.Reg.UpdateNZ(r)
	return r
}

func ror(c *cpu.CPU, v byte) byte {
	r := v>>1 | byte(carry(c))<<7
	c.Reg.SetFlag(cpu.Carry, v&0x01 != 0)
	c.Reg.UpdateNZ(r)
	return r
}

func inc(c *cpu.CPU, v byte) byte {
	v++
	c.Reg.UpdateNZ(v)
	return v
}

func dec(c *cpu.CPU, v byte) byte {
	v--
	c.Reg.UpdateNZ(v)
	return v
}

func slo(c *cpu.CPU, v byte) byte {
	v = asl(c, v)
	ora(c, v)
	return v
}

func rla(c *cpu.CPU, v byte) byte {
	v = rol(c, v)
	and(c, v)
	return v
}

func sre(c *cpu.CPU, v byte) byte {
	v = lsr(c, v)
	eor(c, v)
	return v
}

func rraFunc(adc func(c *cpu.CPU, v byte)) func(c *cpu.CPU, v byte) byte {
	return func(c *cpu.CPU, v byte) byte {
		v = ror(c, v)
		adc(c, v)
		return v
	}
}

func dcp(c *cpu.CPU, v byte) byte {
	v--
	cmp(c, v)
	return v
}

func iscFunc(sbc func(c *cpu.CPU, v byte)) func(c *cpu.CPU, v byte) byte {
	return func(c *cpu.CPU, v byte) byte {
		v++
		sbc(c, v)
		return v
	}
}
