// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// TCU is the timing control unit: a ring counter identifying the clock
// cycle within the current instruction. T0 is the opcode fetch cycle.
type TCU byte

// Timing states.
const (
	T0 TCU = iota
	T1
	T2
	T3
	T4
	T5
	T6
	T7
)

// Advance moves to the next timing state, wrapping from T7 to T0.
func (t *TCU) Advance() {
	*t = (*t + 1) & 7
}

// Reset parks the counter on T7 so that the next Advance lands on T0.
func (t *TCU) Reset() {
	*t = T7
}

func (t TCU) String() string {
	return string([]byte{'T', '0' + byte(t&7)})
}
