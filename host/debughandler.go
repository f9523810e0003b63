// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/tick6502/cpu"

// The debugHandler receives breakpoint notifications from the cpu debugger
// in the middle of a clock cycle and forwards them to the host, which
// stops the clock loop once the cycle's bus transaction is serviced.
type debugHandler struct {
	host *Host
}

func newDebugHandler(h *Host) *debugHandler {
	return &debugHandler{host: h}
}

func (h *debugHandler) OnBreakpoint(cpu *cpu.CPU, b *cpu.Breakpoint) {
	h.host.onBreakpoint(cpu, b)
}

func (h *debugHandler) OnDataBreakpoint(cpu *cpu.CPU, b *cpu.DataBreakpoint, access cpu.Access, v byte) {
	h.host.onDataBreakpoint(cpu, b, access, v)
}

func (h *debugHandler) OnInterruptBreakpoint(cpu *cpu.CPU, b *cpu.InterruptBreakpoint) {
	h.host.onInterruptBreakpoint(cpu, b)
}
