// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Interrupt identifies which break-class sequence the CPU will run next.
// Break is the resting value: the next BRK sequence, if any, is a software
// BRK instruction.
type Interrupt byte

// Interrupt kinds.
const (
	Break Interrupt = iota
	IRQ
	NMI
	Reset
)

// Interrupt vectors
const (
	vectorNMI   = 0xfffa
	vectorReset = 0xfffc
	vectorIRQ   = 0xfffe
	vectorBRK   = 0xfffe
)

var interruptNames = []string{"BRK", "IRQ", "NMI", "RESET"}

// Vector returns the address of the vector the interrupt dispatches through.
func (i Interrupt) Vector() uint16 {
	switch i {
	case IRQ:
		return vectorIRQ
	case NMI:
		return vectorNMI
	case Reset:
		return vectorReset
	default:
		return vectorBRK
	}
}

func (i Interrupt) String() string {
	if int(i) < len(interruptNames) {
		return interruptNames[i]
	}
	return "?"
}
