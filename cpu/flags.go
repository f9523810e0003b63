// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Flags is the set of processor status flags held in the PS register. Bits
// 4 and 5 of the status byte are not flags; they exist only in the copy of
// the status byte pushed to the stack, and no Flags value ever holds them.
type Flags byte

// Processor status flags.
const (
	Carry            Flags = 1 << 0
	Zero             Flags = 1 << 1
	InterruptDisable Flags = 1 << 2
	Decimal          Flags = 1 << 3
	Overflow         Flags = 1 << 6
	Negative         Flags = 1 << 7

	flagsMask = Carry | Zero | InterruptDisable | Decimal | Overflow | Negative
)

// Has returns true if every flag in f is set. Bits outside the flag set
// are never set.
func (p Flags) Has(f Flags) bool {
	return f&^flagsMask == 0 && p&f == f
}

// Union returns the flags set in either p or f.
func (p Flags) Union(f Flags) Flags {
	return (p | f) & flagsMask
}

// Intersect returns the flags set in both p and f.
func (p Flags) Intersect(f Flags) Flags {
	return p & f & flagsMask
}

// Toggle returns p with every flag in f inverted.
func (p Flags) Toggle(f Flags) Flags {
	return (p ^ f) & flagsMask
}

// With returns p with the flags in f set or cleared.
func (p Flags) With(f Flags, on bool) Flags {
	if on {
		return p.Union(f)
	}
	return p &^ f & flagsMask
}

// String returns the flags in the NV-BDIZC order used by most 6502
// monitors. Unset flags and the two non-flag bits are shown as dashes.
func (p Flags) String() string {
	const names = "NV--DIZC"
	var b [8]byte
	for i := 0; i < 8; i++ {
		bit := Flags(0x80 >> i)
		if bit&flagsMask != 0 && p&bit != 0 {
			b[i] = names[i]
		} else {
			b[i] = '-'
		}
	}
	return string(b[:])
}
