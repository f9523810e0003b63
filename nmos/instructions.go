// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nmos implements the cycle-by-cycle behavior of every opcode of the
// NMOS 6502, including the undocumented ones, as a cpu.InstructionSet.
package nmos

import (
	"strings"

	"github.com/beevik/tick6502/cpu"
)

// Architecture selects the CPU chip.
type Architecture byte

const (
	// NMOS 6502 CPU
	NMOS Architecture = iota

	// RP2A03, the NES CPU: an NMOS 6502 with decimal mode disconnected
	RP2A03
)

// ParseArchitecture returns the architecture with the given name.
func ParseArchitecture(s string) (Architecture, bool) {
	switch strings.ToLower(s) {
	case "nmos", "6502":
		return NMOS, true
	case "rp2a03", "2a03", "nes":
		return RP2A03, true
	}
	return NMOS, false
}

func (a Architecture) String() string {
	if a == RP2A03 {
		return "rp2a03"
	}
	return "nmos"
}

// Mode describes a memory addressing mode.
type Mode byte

// All possible memory addressing modes
const (
	IMM Mode = iota // Immediate
	IMP             // Implied (no operand)
	REL             // Relative
	ZPG             // Zero Page
	ZPX             // Zero Page,X
	ZPY             // Zero Page,Y
	ABS             // Absolute
	ABX             // Absolute,X
	ABY             // Absolute,Y
	IND             // (Indirect)
	IDX             // (Zero Page,X)
	IDY             // (Zero Page),Y
	ACC             // Accumulator (no operand)
)

var modeNames = []string{
	IMM: "IMM",
	IMP: "IMP",
	REL: "REL",
	ZPG: "ZPG",
	ZPX: "ZPX",
	ZPY: "ZPY",
	ABS: "ABS",
	ABX: "ABX",
	ABY: "ABY",
	IND: "IND",
	IDX: "IDX",
	IDY: "IDY",
	ACC: "ACC",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "?"
}

// Opcode name and addressing mode data
var modeLength = []byte{
	IMM: 2,
	IMP: 1,
	REL: 2,
	ZPG: 2,
	ZPX: 2,
	ZPY: 2,
	ABS: 3,
	ABX: 3,
	ABY: 3,
	IND: 3,
	IDX: 2,
	IDY: 2,
	ACC: 1,
}

// An Instruction describes a CPU instruction, including its name,
// its addressing mode, its opcode value, its operand size, and its CPU cycle
// cost.
type Instruction struct {
	Name       string // all-caps name of the instruction
	Mode       Mode   // addressing mode
	Opcode     byte   // hexadecimal opcode value
	Length     byte   // combined size of opcode and operand, in bytes
	Cycles     byte   // number of CPU cycles to execute the instruction
	BPCycles   byte   // additional cycles required if boundary page crossed
	Unofficial bool   // not part of the documented instruction set
	Jam        bool   // the instruction halts the CPU
	impl       opfuncs
}

// An InstructionSet defines the set of all possible instructions that
// can run on the emulated CPU.
type InstructionSet struct {
	Arch         Architecture
	instructions [256]Instruction
	variants     map[string][]*Instruction
}

// Lookup retrieves a CPU instruction corresponding to the requested opcode.
func (s *InstructionSet) Lookup(opcode byte) *Instruction {
	return &s.instructions[opcode]
}

// GetInstructions returns all CPU instructions whose name matches the
// provided string.
func (s *InstructionSet) GetInstructions(name string) []*Instruction {
	return s.variants[strings.ToUpper(name)]
}

// Create an instruction set for a CPU architecture.
func newInstructionSet(arch Architecture) *InstructionSet {
	set := &InstructionSet{Arch: arch, variants: make(map[string][]*Instruction)}

	impls := implementations(arch)
	symToImpl := make(map[opsym]*opcodeImpl, len(impls))
	for i := range impls {
		symToImpl[impls[i].sym] = &impls[i]
	}

	for _, d := range data {
		impl := symToImpl[d.sym]
		inst := &set.instructions[d.opcode]
		*inst = Instruction{
			Name:       impl.name,
			Mode:       d.mode,
			Opcode:     d.opcode,
			Length:     modeLength[d.mode],
			Cycles:     d.cycles,
			BPCycles:   d.bpcycles,
			Unofficial: impl.unofficial || (d.sym == symNOP && d.opcode != 0xea),
			Jam:        d.sym == symJAM,
			impl:       impl.fn,
		}
		set.variants[impl.name] = append(set.variants[impl.name], inst)
	}

	return set
}

var instructionSets [2]*InstructionSet

func init() {
	instructionSets[NMOS] = newInstructionSet(NMOS)
	instructionSets[RP2A03] = newInstructionSet(RP2A03)
}

// GetInstructionSet returns an instruction set for the requested CPU
// architecture.
func GetInstructionSet(arch Architecture) *InstructionSet {
	return instructionSets[arch]
}

// NewCPU creates a CPU that executes the instruction set of the requested
// architecture.
func NewCPU(arch Architecture) *cpu.CPU {
	return cpu.NewCPU(GetInstructionSet(arch))
}
