package host

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/tick6502/cpu"
	"github.com/beevik/tick6502/nmos"
)

// LDA #$42; STA $3000; JMP $0205, with the reset vector at $0200.
const program = `
memory set $fffc $00 $02
memory set $0200 $a9 $42 $8d $00 $30 $4c $05 $02
reset
`

func runScript(t *testing.T, h *Host, script string) string {
	t.Helper()
	var out bytes.Buffer
	if err := h.RunCommands(strings.NewReader(script), &out, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out.String()
}

func expectLastPC(t *testing.T, h *Host, pc uint16) {
	t.Helper()
	if h.cpu.LastPC != pc {
		t.Errorf("LastPC incorrect. exp: $%04X, got: $%04X", pc, h.cpu.LastPC)
	}
}

func expectMem(t *testing.T, h *Host, addr uint16, v byte) {
	t.Helper()
	got := h.mem.LoadByte(addr)
	if got != v {
		t.Errorf("Memory at $%04X incorrect. exp: $%02X, got: $%02X", addr, v, got)
	}
}

func expectOutput(t *testing.T, out, s string) {
	t.Helper()
	if !strings.Contains(out, s) {
		t.Errorf("output missing %q:\n%s", s, out)
	}
}

func TestReset(t *testing.T) {
	h := New()
	out := runScript(t, h, program)
	expectOutput(t, out, "CPU reset. Fetching from $0200.")
	expectLastPC(t, h, 0x0200)
	if h.cpu.Reg.SP != 0xfd {
		t.Errorf("stack pointer incorrect. exp: $FD, got: $%02X", h.cpu.Reg.SP)
	}
}

func TestRunToBreakpoint(t *testing.T) {
	h := New()
	out := runScript(t, h, program+"breakpoint add $0205\nrun\n")

	expectOutput(t, out, "Breakpoint hit at $0205.")
	expectLastPC(t, h, 0x0205)
	expectMem(t, h, 0x3000, 0x42)
	if h.cpu.Reg.A != 0x42 {
		t.Errorf("Accumulator incorrect. exp: $42, got: $%02X", h.cpu.Reg.A)
	}
	if h.state != stateProcessingCommands {
		t.Errorf("host still running")
	}
}

func TestDisabledBreakpoint(t *testing.T) {
	h := New()
	script := program + `
breakpoint add $0202
breakpoint disable $0202
breakpoint add $0205
run
`
	runScript(t, h, script)
	expectLastPC(t, h, 0x0205)
}

func TestDataBreakpoint(t *testing.T) {
	h := New()
	out := runScript(t, h, program+"databreakpoint add $3000 $42\nrun\n")

	expectOutput(t, out, "Data breakpoint hit on write of $42 to $3000.")
	expectLastPC(t, h, 0x0202)
	expectMem(t, h, 0x3000, 0x42)
	if h.cpu.Pins.Has(cpu.SyncPin) {
		t.Error("CPU stopped on an opcode fetch instead of the write cycle")
	}
}

func TestConditionalDataBreakpoint(t *testing.T) {
	h := New()
	script := program + `
databreakpoint add $3000 $41
breakpoint add $0205
run
`
	out := runScript(t, h, script)
	if strings.Contains(out, "Data breakpoint hit") {
		t.Errorf("conditional data breakpoint hit on the wrong value")
	}
	expectLastPC(t, h, 0x0205)
}

func TestReadDataBreakpoint(t *testing.T) {
	h := New()
	out := runScript(t, h, program+"databreakpoint add $0206 r\ndatabreakpoint list\nrun\n")

	expectOutput(t, out, "Data breakpoint (R) added at $0206.")
	expectOutput(t, out, "$0206 R       true     <none>")
	expectOutput(t, out, "Data breakpoint hit on read of $05 from $0206.")
	expectLastPC(t, h, 0x0205)
	if h.cpu.TCU != cpu.T2 {
		t.Errorf("stopped on the wrong cycle: %s", h.cpu.TCU)
	}
}

func TestInterruptBreakpoint(t *testing.T) {
	h := New()
	script := program + `
memory set $fffa $00 $04
breakpoint interrupt nmi
breakpoint list
pin nmi 1
run
`
	out := runScript(t, h, script)
	expectOutput(t, out, "Interrupt breakpoint added on NMI.")
	expectOutput(t, out, "NMI   true")
	expectOutput(t, out, "Interrupt breakpoint hit on NMI. Vector at $FFFA.")
	if h.cpu.Schedule != cpu.NMI {
		t.Errorf("expected NMI sequence, got %s", h.cpu.Schedule)
	}

	out = runScript(t, h, "breakpoint interrupt nmi off\nbreakpoint interrupt\n")
	expectOutput(t, out, "Interrupt breakpoint on NMI removed.")
	if h.debugger.GetInterruptBreakpoint(cpu.NMI) != nil {
		t.Error("interrupt breakpoint not removed")
	}
}

func TestOpcode(t *testing.T) {
	h := New()
	out := runScript(t, h, "opcode lda\nopcode bne\nopcode $02\nopcode zzz\n")
	expectOutput(t, out, "LDA  $A9  IMM  2-byte  2 cycles\n")
	expectOutput(t, out, "LDA  $BD  ABX  3-byte  4 cycles, +1 on page cross\n")
	expectOutput(t, out, "LDA  $A1  IDX  2-byte  6 cycles\n")
	expectOutput(t, out, "BNE  $D0  REL  2-byte  2 cycles, +1 if taken, +1 on page cross")
	expectOutput(t, out, "JAM  $02  IMP  1-byte  jams the CPU (undocumented)")
	expectOutput(t, out, "Unknown instruction 'zzz'.")
	if n := strings.Count(out, "LDA  $"); n != 8 {
		t.Errorf("LDA variants incorrect. exp: 8, got: %d", n)
	}
}

func TestStepIn(t *testing.T) {
	h := New()
	runScript(t, h, program+"step in 2\n")
	expectLastPC(t, h, 0x0205)

	cycles := h.cpu.Cycles
	runScript(t, h, "step in\n")
	expectLastPC(t, h, 0x0205)
	if h.cpu.Cycles-cycles != 3 {
		t.Errorf("JMP cycles incorrect. exp: 3, got: %d", h.cpu.Cycles-cycles)
	}
}

func TestStepCycle(t *testing.T) {
	h := New()
	out := runScript(t, h, program+"step cycle 2\n")

	// LDA #$42 reads its operand, then the next opcode is fetched.
	expectOutput(t, out, "T1  0201 R 42")
	expectOutput(t, out, "T0  0202 R 8D  SYNC RDY")
	expectLastPC(t, h, 0x0202)
}

func TestRunRedirect(t *testing.T) {
	h := New()
	out := runScript(t, h, program+"memory set $0210 $02\nrun $0210\n")

	expectOutput(t, out, "CPU jammed at $0210.")
	if !h.cpu.Jammed {
		t.Error("CPU did not jam")
	}

	out = runScript(t, h, "step in\n")
	expectOutput(t, out, "Reset to recover.")

	runScript(t, h, "reset\n")
	if h.cpu.Jammed {
		t.Error("reset did not recover the CPU")
	}
}

func TestStall(t *testing.T) {
	h := New()
	out := runScript(t, h, program+"pin rdy 0\nstep in\n")
	expectOutput(t, out, "CPU is stalled.")

	cycles := h.cpu.Cycles
	runScript(t, h, "step cycle 3\n")
	expectLastPC(t, h, 0x0200)
	if h.cpu.TCU != cpu.T0 {
		t.Errorf("stalled CPU advanced to %s", h.cpu.TCU)
	}
	if h.cpu.Cycles-cycles != 3 {
		t.Errorf("stalled cycles not counted")
	}

	runScript(t, h, "pin rdy 1\nstep in\n")
	expectLastPC(t, h, 0x0202)
}

func TestPins(t *testing.T) {
	h := New()
	out := runScript(t, h, "pin irq 1\npin sync 1\npin foo 1\n")

	if !h.cpu.Pins.Has(cpu.IRQPin) {
		t.Error("IRQ pin not asserted")
	}
	expectOutput(t, out, "SYNC is an output pin.")
	expectOutput(t, out, "Unknown pin 'foo'.")

	out = runScript(t, h, "pin\n")
	expectOutput(t, out, "IRQ pipeline:")
}

func TestRegister(t *testing.T) {
	h := New()
	out := runScript(t, h, program+"register a $10\nregister c 1\nregister x a\nregister\n")

	r := h.cpu.Reg
	if r.A != 0x10 || r.X != 0x10 || !r.Flag(cpu.Carry) {
		t.Errorf("registers incorrect: %s", h.registerString())
	}
	expectOutput(t, out, "A=10 X=10 Y=00 PS=[-----I-C] SP=FD")

	runScript(t, h, "register pc $0205\n")
	expectLastPC(t, h, 0x0205)
	if h.cpu.Bus.Data != 0x4c {
		t.Errorf("fetch not reissued. got opcode $%02X", h.cpu.Bus.Data)
	}
}

func TestSettings(t *testing.T) {
	h := New()
	out := runScript(t, h, "set disasm 5\nset arch rp\nset hexmode true\n")

	if h.settings.DisasmLines != 5 {
		t.Errorf("DisasmLines incorrect. exp: 5, got: %d", h.settings.DisasmLines)
	}
	if h.cpu.InstSet != nmos.GetInstructionSet(nmos.RP2A03) {
		t.Error("architecture not switched")
	}
	if !h.settings.HexMode {
		t.Error("HexMode not set")
	}
	expectOutput(t, out, "Setting DisasmLines updated.")

	expectOutput(t, out, "Setting Arch updated.")
	if h.settings.Arch != "rp2a03" {
		t.Errorf("Arch incorrect. exp: rp2a03, got: %s", h.settings.Arch)
	}

	out = runScript(t, h, "set arch z80\nset bogus 1\nset disasm 0\nset reset 4\n")
	expectOutput(t, out, "Arch must be one of nmos, rp2a03")
	expectOutput(t, out, "setting 'bogus' not found")
	expectOutput(t, out, "DisasmLines must be between 1 and 1000")
	expectOutput(t, out, "ResetCycles must be at least 8")
	if h.settings.Arch != "rp2a03" || h.settings.DisasmLines != 5 || h.settings.ResetCycles != 16 {
		t.Errorf("rejected values were stored: %+v", *h.settings)
	}

	// Unprefixed numbers are hexadecimal in hex mode.
	runScript(t, h, "memory set 10 ff\n")
	expectMem(t, h, 0x0010, 0xff)
}

func TestLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "code.bin")
	if err := os.WriteFile(filename, []byte{0xa9, 0x01, 0x02}, 0o644); err != nil {
		t.Fatal(err)
	}

	h := New()
	out := runScript(t, h, "load "+filename+" $0400\n")
	expectOutput(t, out, "to $0400..$0402")
	expectLastPC(t, h, 0x0400)
	expectMem(t, h, 0x0401, 0x01)

	out = runScript(t, h, "load "+filename+" $FFFF\n")
	expectOutput(t, out, cpu.ErrMemoryOutOfBounds.Error())
}

func TestDisassemble(t *testing.T) {
	h := New()
	out := runScript(t, h, program+"disassemble $0200 3\n")

	expectOutput(t, out, "0200-   A9 42       LDA #$42")
	expectOutput(t, out, "0202-   8D 00 30    STA $3000")
	expectOutput(t, out, "0205-   4C 05 02    JMP $0205")
	if h.settings.NextDisasmAddr != 0x0208 {
		t.Errorf("NextDisasmAddr incorrect. exp: $0208, got: $%04X", h.settings.NextDisasmAddr)
	}
}

func TestMemoryDump(t *testing.T) {
	h := New()
	out := runScript(t, h, "memory set $0300 $48 $49\nmemory dump $0300 2\n")
	expectOutput(t, out, "0300- 48 49")
	expectOutput(t, out, "HI")
}

func TestQuit(t *testing.T) {
	h := New()
	var out bytes.Buffer
	err := h.RunCommands(strings.NewReader("quit\nmemory set $10 $01\n"), &out, false)
	if !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit, got %v", err)
	}
	expectMem(t, h, 0x0010, 0x00)
}

func TestUnknownCommand(t *testing.T) {
	h := New()
	out := runScript(t, h, "frobnicate\n# a comment\n")
	expectOutput(t, out, "Command not found.")
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		s       string
		hexMode bool
		v       int64
		ok      bool
	}{
		{"$1F", false, 0x1f, true},
		{"0x10", false, 0x10, true},
		{"%101", false, 5, true},
		{"42", false, 42, true},
		{"42", true, 0x42, true},
		{"-1", false, -1, true},
		{"zz", false, 0, false},
		{"$", false, 0, false},
	}

	for _, tt := range tests {
		v, err := parseNumber(tt.s, tt.hexMode)
		if (err == nil) != tt.ok {
			t.Errorf("parseNumber(%q) error: %v", tt.s, err)
			continue
		}
		if tt.ok && v != tt.v {
			t.Errorf("parseNumber(%q) incorrect. exp: %d, got: %d", tt.s, tt.v, v)
		}
	}
}
