// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/tick6502/cpu"
)

var errEmptyValue = errors.New("empty value")

// parseNumber parses a numeric literal. A '$' or '0x' prefix selects
// hexadecimal and a '%' prefix selects binary. Unprefixed digits are
// decimal, or hexadecimal when hexMode is set.
func parseNumber(s string, hexMode bool) (int64, error) {
	if s == "" {
		return 0, errEmptyValue
	}

	base := 10
	if hexMode {
		base = 16
	}

	digits := s
	switch {
	case s[0] == '$':
		base, digits = 16, s[1:]
	case len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X"):
		base, digits = 16, s[2:]
	case s[0] == '%':
		base, digits = 2, s[1:]
	}

	v, err := strconv.ParseInt(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number '%s'", s)
	}
	return v, nil
}

func codeString(b []byte) string {
	switch len(b) {
	case 1:
		return fmt.Sprintf("%02X", b[0])
	case 2:
		return fmt.Sprintf("%02X %02X", b[0], b[1])
	case 3:
		return fmt.Sprintf("%02X %02X %02X", b[0], b[1], b[2])
	default:
		return ""
	}
}

func stringToBool(s string) (bool, error) {
	s = strings.ToLower(s)
	switch s {
	case "0", "false", "off":
		return false, nil
	case "1", "true", "on":
		return true, nil
	default:
		return false, fmt.Errorf("invalid bool value '%s'", s)
	}
}

func parseAccess(s string) (cpu.Access, bool) {
	switch strings.ToLower(s) {
	case "r", "read":
		return cpu.ReadAccess, true
	case "w", "write":
		return cpu.WriteAccess, true
	case "rw", "wr", "any":
		return cpu.AnyAccess, true
	}
	return 0, false
}

func parseInterrupt(s string) (cpu.Interrupt, bool) {
	switch strings.ToLower(s) {
	case "brk", "break":
		return cpu.Break, true
	case "irq":
		return cpu.IRQ, true
	case "nmi":
		return cpu.NMI, true
	case "reset", "res":
		return cpu.Reset, true
	}
	return 0, false
}

var hexString = "0123456789ABCDEF"

func addrToBuf(addr uint16, b []byte) {
	b[0] = hexString[(addr>>12)&0xf]
	b[1] = hexString[(addr>>8)&0xf]
	b[2] = hexString[(addr>>4)&0xf]
	b[3] = hexString[addr&0xf]
}

func byteToBuf(v byte, b []byte) {
	b[0] = hexString[(v>>4)&0xf]
	b[1] = hexString[v&0xf]
}

func toPrintableChar(v byte) byte {
	switch {
	case v >= 32 && v < 127:
		return v
	case v >= 160 && v < 255:
		return v - 128
	default:
		return '.'
	}
}

// indentWrap wraps text at 76 columns, indenting each line by the
// requested number of spaces.
func indentWrap(indent int, s string) string {
	var lines []string
	line := strings.Repeat(" ", indent)
	empty := true
	for _, w := range strings.Fields(s) {
		if !empty && len(line)+1+len(w) > 76 {
			lines = append(lines, line)
			line, empty = strings.Repeat(" ", indent), true
		}
		if !empty {
			line += " "
		}
		line += w
		empty = false
	}
	return strings.Join(append(lines, line), "\n")
}
