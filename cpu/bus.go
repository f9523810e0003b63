// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Bus describes the single memory transaction the CPU performs on a clock
// cycle. The CPU fills in the descriptor during Step; the bus peer then
// completes it, supplying Data for a read or consuming Data for a write.
type Bus struct {
	Addr  uint16 // address driven by the CPU
	Data  byte   // data driven by the CPU (write) or the peer (read)
	Write bool   // true for a write cycle, false for a read cycle
}

// Read sets up a read transaction at addr. Data is left for the peer to
// supply.
func (b *Bus) Read(addr uint16) {
	b.Addr = addr
	b.Write = false
}

// Store sets up a write transaction of v to addr.
func (b *Bus) Store(addr uint16, v byte) {
	b.Addr = addr
	b.Data = v
	b.Write = true
}

// Service completes the pending transaction against memory m.
func (b *Bus) Service(m Memory) {
	if b.Write {
		m.StoreByte(b.Addr, b.Data)
	} else {
		b.Data = m.LoadByte(b.Addr)
	}
}

func (b Bus) String() string {
	dir := 'R'
	if b.Write {
		dir = 'W'
	}
	return string([]byte{
		hexString[(b.Addr>>12)&0xf], hexString[(b.Addr>>8)&0xf],
		hexString[(b.Addr>>4)&0xf], hexString[b.Addr&0xf],
		' ', byte(dir), ' ',
		hexString[b.Data>>4], hexString[b.Data&0xf],
	})
}

const hexString = "0123456789ABCDEF"
