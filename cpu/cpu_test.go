package cpu_test

import (
	"testing"

	"github.com/beevik/tick6502/cpu"
	"github.com/beevik/tick6502/nmos"
)

type system struct {
	cpu *cpu.CPU
	mem *cpu.FlatMemory
}

// newSystem creates a CPU with the code loaded at origin and the reset
// vector pointing to it. The CPU is reset and stepped until its first
// opcode fetch at origin.
func newSystem(t *testing.T, origin uint16, code ...byte) *system {
	s := &system{
		cpu: nmos.NewCPU(nmos.NMOS),
		mem: cpu.NewFlatMemory(),
	}
	s.mem.StoreBytes(origin, code)
	s.mem.StoreAddress(0xfffc, origin)
	s.cpu.SetPin(cpu.ReadyPin, true)
	s.cpu.Reset()
	s.step(8)
	if s.cpu.LastPC != origin || !s.cpu.Pins.Has(cpu.SyncPin) {
		t.Fatalf("reset failed. LastPC: $%04X", s.cpu.LastPC)
	}
	return s
}

func (s *system) step(cycles int) {
	for i := 0; i < cycles; i++ {
		s.cpu.Step()
		s.cpu.Bus.Service(s.mem)
	}
}

// stepInstruction steps the CPU until the next opcode fetch and returns
// the number of cycles taken.
func (s *system) stepInstruction() int {
	n := 0
	for {
		s.step(1)
		n++
		if s.cpu.Pins.Has(cpu.SyncPin) || s.cpu.Jammed {
			return n
		}
	}
}

func expectPC(t *testing.T, c *cpu.CPU, pc uint16) {
	t.Helper()
	if c.Reg.PC != pc {
		t.Errorf("PC incorrect. exp: $%04X, got: $%04X", pc, c.Reg.PC)
	}
}

func expectSP(t *testing.T, c *cpu.CPU, sp byte) {
	t.Helper()
	if c.Reg.SP != sp {
		t.Errorf("stack pointer incorrect. exp: $%02X, got $%02X", sp, c.Reg.SP)
	}
}

func expectMem(t *testing.T, m *cpu.FlatMemory, addr uint16, v byte) {
	t.Helper()
	got := m.LoadByte(addr)
	if got != v {
		t.Errorf("Memory at $%04X incorrect. exp: $%02X, got: $%02X", addr, v, got)
	}
}

func TestConstructedState(t *testing.T) {
	c := nmos.NewCPU(nmos.NMOS)
	if c.Pins != 0 {
		t.Errorf("pins not empty: %s", c.Pins)
	}
	if c.TCU != cpu.T7 || c.Opcode != 0x00 || c.Jammed || c.Schedule != cpu.Break {
		t.Errorf("unexpected state: %s opcode $%02X jammed %v schedule %s",
			c.TCU, c.Opcode, c.Jammed, c.Schedule)
	}
	irq, nmi := c.Pipelines()
	if irq.Bits() != 0 || nmi.Bits() != 0 {
		t.Error("pipelines not empty")
	}
}

func TestReset(t *testing.T) {
	mem := cpu.NewFlatMemory()
	mem.StoreAddress(0xfffc, 0x1234)
	c := nmos.NewCPU(nmos.NMOS)
	c.SetPin(cpu.ReadyPin, true)
	c.Reset()

	var stack []uint16
	for i := 0; i < 7; i++ {
		c.Step()
		if c.Bus.Write {
			t.Fatalf("cycle %d: reset sequence wrote to $%04X", i, c.Bus.Addr)
		}
		if c.Bus.Addr&0xff00 == 0x0100 {
			stack = append(stack, c.Bus.Addr)
		}
		c.Bus.Service(mem)
	}

	exp := []uint16{0x0100, 0x01ff, 0x01fe}
	if len(stack) != len(exp) {
		t.Fatalf("stack accesses incorrect. exp: %v, got: %v", exp, stack)
	}
	for i := range exp {
		if stack[i] != exp[i] {
			t.Errorf("stack access %d incorrect. exp: $%04X, got: $%04X", i, exp[i], stack[i])
		}
	}

	c.Step()
	if c.LastPC != 0x1234 || c.Bus.Addr != 0x1234 || !c.Pins.Has(cpu.SyncPin) {
		t.Errorf("expected opcode fetch at $1234, got $%04X", c.Bus.Addr)
	}
	expectSP(t, c, 0xfd)
	if !c.Reg.Flag(cpu.InterruptDisable) {
		t.Error("interrupt disable flag not set by reset")
	}
	if c.Schedule != cpu.Break {
		t.Errorf("schedule not cleared. got: %s", c.Schedule)
	}
}

func TestResetRecoversJam(t *testing.T) {
	s := newSystem(t, 0x0200, 0x02)
	s.step(2)
	if !s.cpu.Jammed {
		t.Fatal("CPU did not jam")
	}
	s.cpu.Reset()
	if s.cpu.Jammed {
		t.Error("reset did not clear jam")
	}
	s.step(8)
	if s.cpu.LastPC != 0x0200 {
		t.Errorf("expected fetch at $0200, got $%04X", s.cpu.LastPC)
	}
}

func TestJamPersists(t *testing.T) {
	s := newSystem(t, 0x0200, 0x02)
	s.step(1)
	if !s.cpu.Jammed {
		t.Fatal("CPU did not jam")
	}

	tcu, bus, pc := s.cpu.TCU, s.cpu.Bus, s.cpu.Reg.PC
	s.cpu.SetPin(cpu.NMIPin, true)
	for i := 0; i < 100; i++ {
		s.cpu.Step()
		if !s.cpu.Jammed || s.cpu.TCU != tcu || s.cpu.Bus != bus || s.cpu.Reg.PC != pc {
			t.Fatalf("step %d: jammed CPU changed state", i)
		}
	}
	_, nmi := s.cpu.Pipelines()
	if nmi.Bits() != 0 {
		t.Error("jammed CPU sampled NMI")
	}
}

func TestStallOnRead(t *testing.T) {
	// LDA $1234
	s := newSystem(t, 0x0200, 0xad, 0x34, 0x12)
	s.step(1)

	s.cpu.SetPin(cpu.ReadyPin, false)
	tcu, opcode, adl, bus, pc := s.cpu.TCU, s.cpu.Opcode, s.cpu.ADL, s.cpu.Bus, s.cpu.Reg.PC
	for i := 0; i < 5; i++ {
		s.step(1)
		if s.cpu.TCU != tcu || s.cpu.Opcode != opcode || s.cpu.ADL != adl ||
			s.cpu.Bus != bus || s.cpu.Reg.PC != pc {
			t.Fatalf("stalled step %d changed state", i)
		}
	}

	s.cpu.SetPin(cpu.ReadyPin, true)
	if n := s.stepInstruction(); n != 3 {
		t.Errorf("remaining cycles incorrect. exp: 3, got: %d", n)
	}
}

func TestNoStallOnWrite(t *testing.T) {
	// STA $10
	s := newSystem(t, 0x0200, 0x85, 0x10)
	s.step(2)
	if !s.cpu.Bus.Write {
		t.Fatal("expected write cycle")
	}

	s.cpu.SetPin(cpu.ReadyPin, false)
	tcu := s.cpu.TCU
	s.step(1)
	if s.cpu.TCU == tcu {
		t.Error("write cycle was stalled")
	}
	if !s.cpu.Pins.Has(cpu.SyncPin) || s.cpu.Bus.Addr != 0x0202 {
		t.Errorf("expected opcode fetch at $0202, got $%04X", s.cpu.Bus.Addr)
	}

	tcu = s.cpu.TCU
	s.step(1)
	if s.cpu.TCU != tcu {
		t.Error("read cycle was not stalled")
	}
}

func TestStallDoesNotAgeInterrupts(t *testing.T) {
	// NOP
	s := newSystem(t, 0x0200, 0xea)
	s.cpu.SetPin(cpu.ReadyPin, false)
	s.cpu.SetPin(cpu.NMIPin, true)
	s.step(20)
	_, nmi := s.cpu.Pipelines()
	if nmi.Serviceable() {
		t.Error("NMI aged during stall")
	}

	s.cpu.SetPin(cpu.ReadyPin, true)
	s.step(3)
	_, nmi = s.cpu.Pipelines()
	if nmi.Bits() == 0 {
		t.Error("NMI edge during stall was lost")
	}
}

func TestIRQLatchedDuringStall(t *testing.T) {
	// LDA $1234
	s := newSystem(t, 0x0200, 0xad, 0x34, 0x12)
	s.step(1)

	s.cpu.SetPin(cpu.ReadyPin, false)
	s.cpu.SetPin(cpu.IRQPin, true)
	s.step(4)
	s.cpu.SetPin(cpu.IRQPin, false)
	s.cpu.SetPin(cpu.ReadyPin, true)

	s.step(1)
	irq, _ := s.cpu.Pipelines()
	if irq.Bits() != 0x0002 {
		t.Errorf("IRQ pipeline incorrect. exp: $0002, got: $%04X", irq.Bits())
	}
	s.step(2)
	irq, _ = s.cpu.Pipelines()
	if !irq.Serviceable() {
		t.Errorf("IRQ latched during stall not serviceable. got: $%04X", irq.Bits())
	}
}

// interruptSystem loads a main program at $0200 and handlers that count
// their invocations: NMI increments $10, IRQ increments $11.
func interruptSystem(t *testing.T, main ...byte) *system {
	s := newSystem(t, 0x0200, main...)
	s.mem.StoreBytes(0x0300, []byte{0xe6, 0x10, 0x40}) // INC $10; RTI
	s.mem.StoreBytes(0x0310, []byte{0xe6, 0x11, 0x40}) // INC $11; RTI
	s.mem.StoreAddress(0xfffa, 0x0300)
	s.mem.StoreAddress(0xfffe, 0x0310)
	return s
}

func TestNMIEdgeSensitive(t *testing.T) {
	// loop: JMP loop
	s := interruptSystem(t, 0x4c, 0x00, 0x02)
	s.cpu.SetPin(cpu.NMIPin, true)
	s.step(100)
	expectMem(t, s.mem, 0x10, 1)

	s.cpu.SetPin(cpu.NMIPin, false)
	s.step(10)
	s.cpu.SetPin(cpu.NMIPin, true)
	s.step(100)
	expectMem(t, s.mem, 0x10, 2)
}

func TestIRQLevelSensitive(t *testing.T) {
	// CLI; loop: JMP loop
	s := interruptSystem(t, 0x58, 0x4c, 0x01, 0x02)
	s.cpu.SetPin(cpu.IRQPin, true)
	s.step(100)
	if n := s.mem.LoadByte(0x11); n < 2 {
		t.Errorf("IRQ serviced %d times while held", n)
	}

	s.cpu.SetPin(cpu.IRQPin, false)
	s.step(20)
	n := s.mem.LoadByte(0x11)
	s.step(100)
	expectMem(t, s.mem, 0x11, n)
}

func TestIRQServicedAfterStall(t *testing.T) {
	// CLI; LDA $1234; loop: JMP loop
	s := interruptSystem(t, 0x58, 0xad, 0x34, 0x12, 0x4c, 0x04, 0x02)
	s.stepInstruction()
	s.step(1)

	s.cpu.SetPin(cpu.ReadyPin, false)
	s.cpu.SetPin(cpu.IRQPin, true)
	s.step(3)
	s.cpu.SetPin(cpu.IRQPin, false)
	s.cpu.SetPin(cpu.ReadyPin, true)

	s.step(40)
	expectMem(t, s.mem, 0x11, 1)
}

func TestIRQMasked(t *testing.T) {
	// SEI; loop: JMP loop
	s := interruptSystem(t, 0x78, 0x4c, 0x01, 0x02)
	s.cpu.SetPin(cpu.IRQPin, true)
	s.step(100)
	expectMem(t, s.mem, 0x11, 0)
}

func TestIRQDelayedByCLI(t *testing.T) {
	// CLI; INX; INY; loop: JMP loop
	s := interruptSystem(t, 0x58, 0xe8, 0xc8, 0x4c, 0x03, 0x02)
	s.mem.StoreBytes(0x0310, []byte{0x4c, 0x10, 0x03}) // JMP $0310
	s.cpu.SetPin(cpu.IRQPin, true)
	s.step(40)

	if s.cpu.Reg.X != 1 || s.cpu.Reg.Y != 0 {
		t.Errorf("expected one instruction after CLI. X=%d Y=%d", s.cpu.Reg.X, s.cpu.Reg.Y)
	}
	if s.cpu.Reg.PC < 0x0310 || s.cpu.Reg.PC > 0x0313 {
		t.Errorf("IRQ handler not running. PC=$%04X", s.cpu.Reg.PC)
	}
	expectMem(t, s.mem, 0x01fd, 0x02)
	expectMem(t, s.mem, 0x01fc, 0x02)
}

func TestInterruptPushes(t *testing.T) {
	// NOP; NOP; ...
	s := interruptSystem(t, 0xea, 0xea, 0xea, 0xea)
	s.cpu.SetPin(cpu.NMIPin, true)
	for i := 0; i < 10 && s.cpu.LastPC != 0x0300; i++ {
		s.stepInstruction()
	}
	if s.cpu.LastPC != 0x0300 {
		t.Fatalf("NMI handler not entered. PC=$%04X", s.cpu.Reg.PC)
	}

	// The NMI is recognized at the fetch of the third NOP, so the return
	// address is $0202 and the pushed status has B clear.
	expectMem(t, s.mem, 0x01fd, 0x02)
	expectMem(t, s.mem, 0x01fc, 0x02)
	ps := s.mem.LoadByte(0x01fb)
	if ps&cpu.BreakBit != 0 || ps&cpu.ReservedBit == 0 {
		t.Errorf("pushed status incorrect: $%02X", ps)
	}
	expectSP(t, s.cpu, 0xfa)
	expectPC(t, s.cpu, 0x0301)
}

func TestNMIHasPriority(t *testing.T) {
	// CLI; loop: JMP loop
	s := interruptSystem(t, 0x58, 0x4c, 0x01, 0x02)
	s.stepInstruction()
	s.cpu.SetPin(cpu.IRQPin, true)
	s.cpu.SetPin(cpu.NMIPin, true)
	s.step(3)
	for !s.cpu.Pins.Has(cpu.SyncPin) {
		s.step(1)
	}
	if s.cpu.Schedule != cpu.NMI {
		t.Errorf("expected NMI to be scheduled, got %s", s.cpu.Schedule)
	}
}

type hit struct {
	addr   uint16
	access cpu.Access
	value  byte
}

type handler struct {
	fetches    []uint16
	data       []hit
	interrupts []cpu.Interrupt
}

func (h *handler) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	h.fetches = append(h.fetches, b.Address)
}

func (h *handler) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint, access cpu.Access, v byte) {
	h.data = append(h.data, hit{b.Address, access, v})
}

func (h *handler) OnInterruptBreakpoint(c *cpu.CPU, b *cpu.InterruptBreakpoint) {
	h.interrupts = append(h.interrupts, b.Kind)
}

func attachDebugger(s *system) (*cpu.Debugger, *handler) {
	h := &handler{}
	d := cpu.NewDebugger(h)
	s.cpu.AttachDebugger(d)
	return d, h
}

func TestDebugger(t *testing.T) {
	// LDA #$01; STA $10; LDA #$02; STA $10
	s := newSystem(t, 0x0200, 0xa9, 0x01, 0x85, 0x10, 0xa9, 0x02, 0x85, 0x10)
	d, h := attachDebugger(s)
	d.AddBreakpoint(0x0204)
	d.AddConditionalDataBreakpoint(0x0010, cpu.WriteAccess, 0x02)

	for i := 0; i < 4; i++ {
		s.stepInstruction()
	}

	if len(h.fetches) != 1 || h.fetches[0] != 0x0204 {
		t.Errorf("breakpoint hits incorrect: %v", h.fetches)
	}
	if len(h.data) != 1 || h.data[0] != (hit{0x0010, cpu.WriteAccess, 0x02}) {
		t.Errorf("data breakpoint hits incorrect: %v", h.data)
	}

	bps := d.GetBreakpoints()
	if len(bps) != 1 || bps[0].Address != 0x0204 {
		t.Errorf("breakpoint list incorrect")
	}
	d.RemoveBreakpoint(0x0204)
	if d.GetBreakpoint(0x0204) != nil {
		t.Error("breakpoint not removed")
	}
}

func TestReadBreakpoint(t *testing.T) {
	// LDA $10; STA $10; INC $10
	s := newSystem(t, 0x0200, 0xa5, 0x10, 0x85, 0x10, 0xe6, 0x10)
	s.mem.StoreByte(0x0010, 0x7f)
	d, h := attachDebugger(s)
	d.AddDataBreakpoint(0x0010, cpu.ReadAccess)

	s.step(2)
	if len(h.data) != 0 {
		t.Fatalf("read reported before it was serviced: %v", h.data)
	}
	s.step(1)
	if len(h.data) != 1 || h.data[0] != (hit{0x0010, cpu.ReadAccess, 0x7f}) {
		t.Fatalf("read breakpoint hits incorrect: %v", h.data)
	}

	s.stepInstruction()
	if len(h.data) != 1 {
		t.Errorf("write hit a read breakpoint: %v", h.data)
	}

	// INC reads the operand once and writes it twice.
	d.AddDataBreakpoint(0x0010, cpu.AnyAccess)
	h.data = nil
	s.stepInstruction()
	exp := []hit{
		{0x0010, cpu.ReadAccess, 0x7f},
		{0x0010, cpu.WriteAccess, 0x7f},
		{0x0010, cpu.WriteAccess, 0x80},
	}
	if len(h.data) != len(exp) {
		t.Fatalf("read-modify-write hits incorrect: %v", h.data)
	}
	for i := range exp {
		if h.data[i] != exp[i] {
			t.Errorf("hit %d incorrect. exp: %v, got: %v", i, exp[i], h.data[i])
		}
	}
}

func TestReadBreakpointAfterStall(t *testing.T) {
	// LDA $1234
	s := newSystem(t, 0x0200, 0xad, 0x34, 0x12)
	d, h := attachDebugger(s)
	d.AddDataBreakpoint(0x0201, cpu.ReadAccess)

	s.step(1)
	s.cpu.SetPin(cpu.ReadyPin, false)
	s.step(5)
	if len(h.data) != 0 {
		t.Fatalf("stalled read reported: %v", h.data)
	}

	s.cpu.SetPin(cpu.ReadyPin, true)
	s.step(1)
	if len(h.data) != 1 || h.data[0] != (hit{0x0201, cpu.ReadAccess, 0x34}) {
		t.Errorf("read breakpoint hits incorrect: %v", h.data)
	}
}

func TestInterruptBreakpoint(t *testing.T) {
	// CLI; BRK; $00
	s := interruptSystem(t, 0x58, 0x00, 0x00)
	s.mem.StoreBytes(0x0310, []byte{0x4c, 0x10, 0x03}) // JMP $0310
	d, h := attachDebugger(s)
	d.AddInterruptBreakpoint(cpu.Break)
	d.AddInterruptBreakpoint(cpu.NMI)
	d.AddInterruptBreakpoint(cpu.Reset).Disabled = true

	s.step(20)
	if len(h.interrupts) != 1 || h.interrupts[0] != cpu.Break {
		t.Fatalf("interrupt hits incorrect: %v", h.interrupts)
	}

	s.cpu.SetPin(cpu.IRQPin, true)
	s.cpu.SetPin(cpu.NMIPin, true)
	s.step(40)
	if len(h.interrupts) != 2 || h.interrupts[1] != cpu.NMI {
		t.Fatalf("interrupt hits incorrect: %v", h.interrupts)
	}

	s.cpu.SetPin(cpu.IRQPin, false)
	s.cpu.SetPin(cpu.NMIPin, false)
	s.cpu.Reset()
	s.step(8)
	if len(h.interrupts) != 2 {
		t.Errorf("disabled breakpoint hit: %v", h.interrupts)
	}

	bps := d.GetInterruptBreakpoints()
	if len(bps) != 3 || bps[0].Kind != cpu.Break || bps[2].Kind != cpu.Reset {
		t.Errorf("interrupt breakpoint list incorrect")
	}
}

func TestSetPCReissuesFetch(t *testing.T) {
	// NOP at $0200; INX at $0300
	s := newSystem(t, 0x0200, 0xea)
	s.mem.StoreByte(0x0300, 0xe8)

	s.cpu.SetPC(0x0300)
	s.cpu.Bus.Service(s.mem)
	if s.cpu.LastPC != 0x0300 || s.cpu.Bus.Data != 0xe8 {
		t.Fatalf("fetch not redirected. LastPC: $%04X", s.cpu.LastPC)
	}

	s.stepInstruction()
	if s.cpu.Reg.X != 1 {
		t.Errorf("X incorrect. exp: 1, got: %d", s.cpu.Reg.X)
	}
	expectPC(t, s.cpu, 0x0302)
}
