// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// An InstructionSet supplies the per-cycle behavior of every opcode. The CPU
// owns fetching, interrupt recognition and timing; the instruction set owns
// everything that happens between two opcode fetches.
type InstructionSet interface {
	// Execute performs timing state t (T1 through T7) of the instruction
	// with the given opcode. On entry c.Bus.Data holds the byte read on the
	// previous cycle. Execute must leave the transaction for this cycle in
	// c.Bus and return true if this is the instruction's last cycle.
	Execute(c *CPU, opcode byte, t TCU) (last bool)

	// Retire completes an instruction on the opcode fetch cycle that
	// follows its last cycle, consuming the data read on that last cycle.
	Retire(c *CPU, opcode byte)
}
