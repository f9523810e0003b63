// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "strings"

// Pins is the set of control signals exchanged with the rest of the system
// on each clock cycle. SyncPin is driven by the CPU; the others are inputs
// driven by the host.
type Pins byte

// Control signals.
const (
	SyncPin  Pins = 1 << iota // asserted during an opcode fetch cycle
	IRQPin                    // maskable interrupt request (level)
	NMIPin                    // non-maskable interrupt request (edge)
	ReadyPin                  // deasserting stalls read cycles

	pinsMask = SyncPin | IRQPin | NMIPin | ReadyPin
)

var pinNames = []string{"SYNC", "IRQ", "NMI", "RDY"}

// Has returns true if every signal in s is asserted.
func (p Pins) Has(s Pins) bool {
	s &= pinsMask
	return p&s == s
}

// Union returns the signals asserted in either p or s.
func (p Pins) Union(s Pins) Pins {
	return (p | s) & pinsMask
}

// Intersect returns the signals asserted in both p and s.
func (p Pins) Intersect(s Pins) Pins {
	return p & s & pinsMask
}

// Toggle returns p with every signal in s inverted.
func (p Pins) Toggle(s Pins) Pins {
	return (p ^ s) & pinsMask
}

// With returns p with the signals in s asserted or deasserted.
func (p Pins) With(s Pins, on bool) Pins {
	if on {
		return p.Union(s)
	}
	return p &^ s & pinsMask
}

func (p Pins) String() string {
	var names []string
	for i, n := range pinNames {
		if p&(1<<i) != 0 {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, " ")
}
