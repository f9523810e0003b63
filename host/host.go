// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host implements an interactive monitor for a cycle-stepped 6502.
// The host owns the system clock: on every cycle it steps the CPU and then
// services the bus transaction the CPU described, using a flat 64K memory
// as the only bus peer.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/tick6502/cpu"
	"github.com/beevik/tick6502/disasm"
	"github.com/beevik/tick6502/nmos"
)

// ErrQuit is returned by RunCommands when the quit command is executed.
var ErrQuit = errors.New("exiting program")

type state byte

const (
	stateProcessingCommands state = iota
	stateRunning
	stateBreakpoint
)

type displayFlags uint8

const (
	displayRegisters displayFlags = 1 << iota
	displayCycles

	displayAll = displayRegisters | displayCycles
)

// A Host represents a fully emulated 6502 system: a CPU, 64K of memory
// attached to its bus, a clock, and a built-in debugger.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	mem         *cpu.FlatMemory
	set         *nmos.InstructionSet
	cpu         *cpu.CPU
	debugger    *cpu.Debugger
	lastCmd     *cmd.Selection
	state       state
	settings    *settings
}

// New creates a new 6502 host environment. The CPU is reset and clocked
// until it fetches its first opcode from the address in the reset vector.
func New() *Host {
	h := &Host{
		output:   bufio.NewWriter(io.Discard),
		state:    stateProcessingCommands,
		settings: newSettings(),
	}

	// Create the emulated CPU and memory.
	h.mem = cpu.NewFlatMemory()
	h.set = nmos.GetInstructionSet(nmos.NMOS)
	h.cpu = cpu.NewCPU(h.set)
	h.cpu.SetPin(cpu.ReadyPin, true)

	// Create a CPU debugger and attach it to the CPU.
	h.debugger = cpu.NewDebugger(newDebugHandler(h))
	h.cpu.AttachDebugger(h.debugger)

	h.reset()
	return h
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the the next command to be entered. It returns nil
// when the reader is exhausted and ErrQuit if the quit command was run.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) error {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println()
	}

	h.displayPC()

	err := h.processCommands()
	h.flush()
	return err
}

func (h *Host) processCommands() error {
	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}

		var c cmd.Selection
		switch {
		case line != "":
			c, err = cmds.Lookup(line)
			switch {
			case errors.Is(err, cmd.ErrNotFound):
				h.println("Command not found.")
				continue
			case errors.Is(err, cmd.ErrAmbiguous):
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
		case h.interactive && h.lastCmd != nil:
			c = *h.lastCmd
		}

		hc := commandOf(c)
		if hc == nil {
			// A subtree name alone lists the subtree's commands.
			if line != "" {
				if sub := findSubtree(strings.Fields(line)[0]); sub != nil {
					h.displayCommands(sub)
				}
			}
			continue
		}
		h.lastCmd = &c

		if err := hc.handler(h, c); err != nil {
			return err
		}
	}
}

// Break interrupts a running CPU.
func (h *Host) Break() {
	h.println()

	if h.state == stateRunning {
		h.displayPC()
	}
	if h.state == stateProcessingCommands {
		h.prompt()
	}
	h.state = stateProcessingCommands
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.print("* ")
		h.flush()
	}
}

// displayPC shows the instruction the CPU most recently fetched, which is
// the next instruction to execute when the CPU is stopped on a fetch.
func (h *Host) displayPC() {
	if h.interactive {
		d, _ := h.disassemble(h.cpu.LastPC, displayAll)
		h.println(d)
	}
}

func commandOf(c cmd.Selection) *hostCommand {
	if c.Command == nil {
		return nil
	}
	hc, _ := c.Command.Data.(*hostCommand)
	return hc
}

func findSubtree(name string) *hostCommand {
	name = strings.ToLower(name)
	var found *hostCommand
	for _, c := range hostCommands {
		if c.subtree && strings.HasPrefix(c.path, name) {
			if found != nil {
				return nil
			}
			found = c
		}
	}
	return found
}

func (h *Host) cmdBreakpointList(c cmd.Selection) error {
	h.println("Addr  Enabled")
	h.println("----- -------")
	for _, b := range h.debugger.GetBreakpoints() {
		h.printf("$%04X %v\n", b.Address, !b.Disabled)
	}
	for _, b := range h.debugger.GetInterruptBreakpoints() {
		h.printf("%-5s %v\n", b.Kind, !b.Disabled)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(c cmd.Selection) error {
	b := h.breakpointArg(c)
	if b == nil {
		return nil
	}

	h.debugger.RemoveBreakpoint(b.Address)
	h.printf("Breakpoint at $%04X removed.\n", b.Address)
	return nil
}

func (h *Host) cmdBreakpointEnable(c cmd.Selection) error {
	b := h.breakpointArg(c)
	if b == nil {
		return nil
	}

	b.Disabled = false
	h.printf("Breakpoint at $%04X enabled.\n", b.Address)
	return nil
}

func (h *Host) cmdBreakpointDisable(c cmd.Selection) error {
	b := h.breakpointArg(c)
	if b == nil {
		return nil
	}

	b.Disabled = true
	h.printf("Breakpoint at $%04X disabled.\n", b.Address)
	return nil
}

// breakpointArg returns the existing breakpoint named by the command's
// address argument. It reports the problem and returns nil if there is
// none.
func (h *Host) breakpointArg(c cmd.Selection) *cpu.Breakpoint {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
	}
	return b
}

func (h *Host) cmdDataBreakpointList(c cmd.Selection) error {
	h.println("Addr  Access  Enabled  Value")
	h.println("----- ------  -------  -----")
	for _, b := range h.debugger.GetDataBreakpoints() {
		value := "<none>"
		if b.Conditional {
			value = fmt.Sprintf("$%02X", b.Value)
		}
		h.printf("$%04X %-6s  %-5v    %s\n", b.Address, b.Access, !b.Disabled, value)
	}
	return nil
}

func (h *Host) cmdDataBreakpointAdd(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	access, conditional := cpu.WriteAccess, false
	var value byte
	for _, arg := range c.Args[1:] {
		if a, ok := parseAccess(arg); ok {
			access = a
			continue
		}
		v, err := h.parseExpr(arg)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		value, conditional = byte(v), true
	}

	if conditional {
		h.debugger.AddConditionalDataBreakpoint(addr, access, value)
		h.printf("Conditional data breakpoint (%s) added at $%04X for value $%02X.\n", access, addr, value)
	} else {
		h.debugger.AddDataBreakpoint(addr, access)
		h.printf("Data breakpoint (%s) added at $%04X.\n", access, addr)
	}

	return nil
}

func (h *Host) cmdBreakpointInterrupt(c cmd.Selection) error {
	if len(c.Args) < 1 {
		for _, b := range h.debugger.GetInterruptBreakpoints() {
			h.printf("%-5s %v\n", b.Kind, !b.Disabled)
		}
		return nil
	}

	kind, ok := parseInterrupt(c.Args[0])
	if !ok {
		h.printf("Unknown interrupt '%s'.\n", c.Args[0])
		return nil
	}

	on := true
	if len(c.Args) > 1 {
		var err error
		if on, err = stringToBool(c.Args[1]); err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	if on {
		h.debugger.AddInterruptBreakpoint(kind)
		h.printf("Interrupt breakpoint added on %s.\n", kind)
	} else {
		h.debugger.RemoveInterruptBreakpoint(kind)
		h.printf("Interrupt breakpoint on %s removed.\n", kind)
	}
	return nil
}

func (h *Host) cmdDataBreakpointRemove(c cmd.Selection) error {
	b := h.dataBreakpointArg(c)
	if b == nil {
		return nil
	}

	h.debugger.RemoveDataBreakpoint(b.Address)
	h.printf("Data breakpoint at $%04X removed.\n", b.Address)
	return nil
}

func (h *Host) cmdDataBreakpointEnable(c cmd.Selection) error {
	b := h.dataBreakpointArg(c)
	if b == nil {
		return nil
	}

	b.Disabled = false
	h.printf("Data breakpoint at $%04X enabled.\n", b.Address)
	return nil
}

func (h *Host) cmdDataBreakpointDisable(c cmd.Selection) error {
	b := h.dataBreakpointArg(c)
	if b == nil {
		return nil
	}

	b.Disabled = true
	h.printf("Data breakpoint at $%04X disabled.\n", b.Address)
	return nil
}

func (h *Host) dataBreakpointArg(c cmd.Selection) *cpu.DataBreakpoint {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := h.debugger.GetDataBreakpoint(addr)
	if b == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
	}
	return b
}

func (h *Host) cmdDisassemble(c cmd.Selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	var addr uint16
	switch c.Args[0] {
	case "$":
		addr = h.settings.NextDisasmAddr
		if addr == 0 {
			addr = h.cpu.LastPC
		}

	case ".":
		addr = h.cpu.LastPC

	default:
		a, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	lines := h.settings.DisasmLines
	if len(c.Args) > 1 {
		l, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = int(l)
	}

	for i := 0; i < lines; i++ {
		d, next := h.disassemble(addr, 0)
		h.println(d)
		addr = next
	}

	h.settings.NextDisasmAddr = addr
	h.lastCmd.Args = []string{"$", fmt.Sprintf("%d", lines)}
	return nil
}

func (h *Host) cmdExecute(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	file, err := os.Open(c.Args[0])
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(c.Args[0]), err)
		return nil
	}
	defer file.Close()

	input, interactive := h.input, h.interactive
	h.input, h.interactive = bufio.NewScanner(file), false
	err = h.processCommands()
	h.input, h.interactive = input, interactive
	h.lastCmd = nil
	return err
}

func (h *Host) cmdHelp(c cmd.Selection) error {
	if len(c.Args) == 0 {
		h.displayCommands(nil)
		return nil
	}

	s, err := cmds.Lookup(strings.Join(c.Args, " "))
	if hc := commandOf(s); err == nil && hc != nil {
		if hc.usage != "" {
			h.printf("Syntax: %s\n\n", hc.usage)
		}
		switch {
		case hc.description != "":
			h.printf("Description:\n%s\n\n", indentWrap(3, hc.description))
		case hc.brief != "":
			h.printf("Description:\n%s.\n\n", indentWrap(3, hc.brief))
		}
		return nil
	}

	if sub := findSubtree(c.Args[0]); sub != nil {
		h.displayCommands(sub)
		return nil
	}

	if err == nil {
		err = cmd.ErrNotFound
	}
	h.printf("%v\n", err)
	return nil
}

func (h *Host) cmdLoad(c cmd.Selection) error {
	if len(c.Args) < 2 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseExpr(c.Args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.load(c.Args[0], addr)
	return nil
}

func (h *Host) cmdMemoryDump(c cmd.Selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	var addr uint16
	switch c.Args[0] {
	case "$":
		addr = h.settings.NextMemDumpAddr
		if addr == 0 {
			addr = h.cpu.LastPC
		}

	case ".":
		addr = h.cpu.LastPC

	default:
		a, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	bytes := uint16(h.settings.MemDumpBytes)
	if len(c.Args) >= 2 {
		var err error
		bytes, err = h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	h.dumpMemory(addr, bytes)

	h.settings.NextMemDumpAddr = addr + bytes
	h.lastCmd.Args = []string{"$", fmt.Sprintf("%d", bytes)}
	return nil
}

func (h *Host) cmdMemorySet(c cmd.Selection) error {
	if len(c.Args) < 2 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	values := make([]byte, 0, len(c.Args)-1)
	for _, arg := range c.Args[1:] {
		v, err := h.parseExpr(arg)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		if v > 0xff {
			h.printf("Value $%04X is not a byte.\n", v)
			return nil
		}
		values = append(values, byte(v))
	}

	for i, v := range values {
		h.mem.StoreByte(addr+uint16(i), v)
	}
	return nil
}

var pinNames = map[string]cpu.Pins{
	"irq":   cpu.IRQPin,
	"nmi":   cpu.NMIPin,
	"rdy":   cpu.ReadyPin,
	"ready": cpu.ReadyPin,
}

func (h *Host) cmdOpcode(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	insts := h.set.GetInstructions(c.Args[0])
	if insts == nil {
		v, err := parseNumber(c.Args[0], true)
		if err != nil || v < 0 || v > 0xff {
			h.printf("Unknown instruction '%s'.\n", c.Args[0])
			return nil
		}
		insts = []*nmos.Instruction{h.set.Lookup(byte(v))}
	}

	for _, inst := range insts {
		h.println(opcodeString(inst))
	}
	return nil
}

// opcodeString describes an opcode's encoding and timing.
func opcodeString(inst *nmos.Instruction) string {
	var timing string
	switch {
	case inst.Jam:
		timing = "jams the CPU"
	case inst.Mode == nmos.REL:
		timing = fmt.Sprintf("%d cycles, +1 if taken, +%d on page cross", inst.Cycles, inst.BPCycles)
	case inst.BPCycles > 0:
		timing = fmt.Sprintf("%d cycles, +%d on page cross", inst.Cycles, inst.BPCycles)
	default:
		timing = fmt.Sprintf("%d cycles", inst.Cycles)
	}

	s := fmt.Sprintf("%-4s $%02X  %s  %d-byte  %s", inst.Name, inst.Opcode, inst.Mode, inst.Length, timing)
	if inst.Unofficial {
		s += " (undocumented)"
	}
	return s
}

func (h *Host) cmdPin(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		irq, nmi := h.cpu.Pipelines()
		h.printf("Pins: %s\n", h.cpu.Pins)
		h.printf("IRQ pipeline: %016b\n", irq.Bits())
		h.printf("NMI pipeline: %016b\n", nmi.Bits())

	case 1:
		h.displayUsage(c)

	default:
		name := strings.ToLower(c.Args[0])
		p, ok := pinNames[name]
		if !ok {
			if name == "sync" {
				h.println("SYNC is an output pin.")
			} else {
				h.printf("Unknown pin '%s'.\n", c.Args[0])
			}
			return nil
		}

		on, err := stringToBool(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}

		h.cpu.SetPin(p, on)
		h.printf("Pins: %s\n", h.cpu.Pins)
	}
	return nil
}

func (h *Host) cmdQuit(c cmd.Selection) error {
	return ErrQuit
}

var flagNames = map[string]cpu.Flags{
	"n":        cpu.Negative,
	"negative": cpu.Negative,
	"sign":     cpu.Negative,
	"v":        cpu.Overflow,
	"overflow": cpu.Overflow,
	"d":        cpu.Decimal,
	"decimal":  cpu.Decimal,
	"i":        cpu.InterruptDisable,
	"z":        cpu.Zero,
	"zero":     cpu.Zero,
	"c":        cpu.Carry,
	"carry":    cpu.Carry,
}

func (h *Host) cmdRegister(c cmd.Selection) error {
	if len(c.Args) == 0 {
		h.println(h.registerString())
		return nil
	}
	if len(c.Args) < 2 {
		h.displayUsage(c)
		return nil
	}

	key := strings.ToLower(c.Args[0])
	v, err := h.parseExpr(c.Args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	reg := &h.cpu.Reg
	switch key {
	case "a":
		reg.A = byte(v)
	case "x":
		reg.X = byte(v)
	case "y":
		reg.Y = byte(v)
	case "sp":
		reg.SP = byte(v)
	case "pc", ".":
		h.setPC(v)
		h.printf("Register PC set to $%04X.\n", v)
		return nil
	default:
		f, ok := flagNames[key]
		if !ok {
			h.printf("Unknown register '%s'.\n", c.Args[0])
			return nil
		}
		reg.SetFlag(f, v != 0)
		h.printf("Flag %s set to %v.\n", strings.ToUpper(key), v != 0)
		return nil
	}

	h.printf("Register %s set to $%02X.\n", strings.ToUpper(key), byte(v))
	return nil
}

func (h *Host) cmdReset(c cmd.Selection) error {
	if !h.reset() {
		h.println("The reset sequence did not complete. Is RDY asserted?")
		return nil
	}

	h.printf("CPU reset. Fetching from $%04X.\n", h.cpu.LastPC)
	h.displayPC()
	h.settings.NextDisasmAddr = h.cpu.LastPC
	return nil
}

func (h *Host) cmdRun(c cmd.Selection) error {
	if len(c.Args) > 0 {
		pc, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.setPC(pc)
	}

	if !h.canRun() {
		return nil
	}

	h.printf("Running from $%04X. Press ctrl-C to break.\n", h.cpu.LastPC)

	h.state = stateRunning
	for h.state == stateRunning {
		h.cycle()
		if h.cpu.Jammed {
			h.printf("CPU jammed at $%04X.\n", h.cpu.LastPC)
			break
		}
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.LastPC
	return nil
}

func (h *Host) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayUsage(c)

	default:
		key, value := c.Args[0], strings.Join(c.Args[1:], " ")

		var name string
		var err error
		switch h.settings.Kind(key) {
		case reflect.String, reflect.Invalid:
			name, err = h.settings.Set(key, value)
		case reflect.Bool:
			var v bool
			if v, err = stringToBool(value); err == nil {
				name, err = h.settings.Set(key, v)
			}
		default:
			var v uint16
			if v, err = h.parseExpr(value); err == nil {
				name, err = h.settings.Set(key, v)
			}
		}

		if hook, ok := settingsHooks[name]; ok && err == nil {
			err = hook(h)
		}

		if err == nil {
			h.printf("Setting %s updated.\n", name)
		} else {
			h.printf("%v\n", err)
		}
	}

	return nil
}

func (h *Host) cmdStepCycle(c cmd.Selection) error {
	count := h.countArg(c)

	h.state = stateRunning
	for i := count - 1; i >= 0 && h.state == stateRunning; i-- {
		h.cycle()
		if !h.settings.TraceCycles {
			switch {
			case i == h.settings.MaxStepLines:
				h.println("...")
			case i < h.settings.MaxStepLines:
				h.println(h.cycleString())
			}
		}
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.LastPC
	return nil
}

func (h *Host) cmdStepIn(c cmd.Selection) error {
	count := h.countArg(c)
	if !h.canRun() {
		return nil
	}

	// Step the CPU count times.
	h.state = stateRunning
	for i := count - 1; i >= 0 && h.state == stateRunning; i-- {
		h.stepInstruction()
		if h.cpu.Jammed {
			h.printf("CPU jammed at $%04X.\n", h.cpu.LastPC)
			break
		}
		switch {
		case i == h.settings.MaxStepLines:
			h.println("...")
		case i < h.settings.MaxStepLines:
			h.displayPC()
		}
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.LastPC
	return nil
}

func (h *Host) countArg(c cmd.Selection) int {
	count := 1
	if len(c.Args) > 0 {
		n, err := h.parseExpr(c.Args[0])
		if err == nil {
			count = int(n)
		}
	}
	return count
}

// cycle runs one clock cycle: the CPU steps, then memory services the
// transaction the CPU placed on the bus.
func (h *Host) cycle() {
	h.cpu.Step()
	h.cpu.Bus.Service(h.mem)
	if h.settings.TraceCycles {
		h.println(h.cycleString())
	}
}

// stepInstruction clocks the CPU through its next opcode fetch.
func (h *Host) stepInstruction() {
	for h.state == stateRunning {
		h.cycle()
		if h.cpu.Pins.Has(cpu.SyncPin) || h.cpu.Jammed {
			return
		}
	}
}

// reset resets the CPU and clocks it until its first opcode fetch. It
// returns false if the fetch did not occur in time.
func (h *Host) reset() bool {
	defer func() { h.state = stateProcessingCommands }()

	h.cpu.Reset()
	for i := 0; i < h.settings.ResetCycles; i++ {
		h.cycle()
		if h.cpu.Pins.Has(cpu.SyncPin) {
			return true
		}
	}
	return false
}

func (h *Host) canRun() bool {
	switch {
	case h.cpu.Jammed:
		h.printf("CPU is jammed at $%04X. Reset to recover.\n", h.cpu.LastPC)
	case !h.cpu.Pins.Has(cpu.ReadyPin):
		h.println("CPU is stalled. Assert RDY to continue.")
	default:
		return true
	}
	return false
}

// setPC redirects the CPU. When the CPU is stopped on an opcode fetch, the
// fetch is reissued at the new address and serviced.
func (h *Host) setPC(addr uint16) {
	h.cpu.SetPC(addr)
	if h.cpu.Pins.Has(cpu.SyncPin) {
		h.cpu.Bus.Service(h.mem)
	}
	h.settings.NextDisasmAddr = addr
}

func (h *Host) load(filename string, addr uint16) {
	image, err := os.ReadFile(filename)
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
		return
	}

	if err := h.mem.LoadImage(addr, image); err != nil {
		h.printf("Failed to load '%s': %v\n", filepath.Base(filename), err)
		return
	}

	h.printf("Loaded '%s' to $%04X..$%04X\n", filepath.Base(filename), addr, int(addr)+len(image)-1)
	h.setPC(addr)
}

// settingsHooks apply a changed setting to the machine.
var settingsHooks = map[string]func(*Host) error{
	"Arch":        (*Host).applyArch,
	"ResetCycles": (*Host).applyResetCycles,
}

// applyArch swaps the instruction set the CPU executes. The change takes
// effect on the next opcode fetch.
func (h *Host) applyArch() error {
	arch, ok := nmos.ParseArchitecture(h.settings.Arch)
	if !ok {
		name := h.settings.Arch
		h.settings.Arch = h.set.Arch.String()
		return fmt.Errorf("unknown architecture '%s'", name)
	}
	h.set = nmos.GetInstructionSet(arch)
	h.cpu.InstSet = h.set
	return nil
}

// applyResetCycles warns when the CPU is stalled, since a stalled CPU
// cannot finish a reset regardless of the limit.
func (h *Host) applyResetCycles() error {
	if !h.cpu.Pins.Has(cpu.ReadyPin) {
		h.println("Warning: RDY is deasserted, so a reset will not complete.")
	}
	return nil
}

// parseExpr evaluates a register name or a numeric literal.
func (h *Host) parseExpr(expr string) (uint16, error) {
	switch strings.ToLower(expr) {
	case "a":
		return uint16(h.cpu.Reg.A), nil
	case "x":
		return uint16(h.cpu.Reg.X), nil
	case "y":
		return uint16(h.cpu.Reg.Y), nil
	case "sp":
		return cpu.StackAddress(h.cpu.Reg.SP), nil
	case "pc":
		return h.cpu.Reg.PC, nil
	case ".":
		return h.cpu.LastPC, nil
	}

	v, err := parseNumber(expr, h.settings.HexMode)
	if err != nil {
		return 0, err
	}
	if v < -0x8000 || v > 0xffff {
		return 0, fmt.Errorf("value '%s' out of range", expr)
	}
	if v < 0 {
		v = 0x10000 + v
	}
	return uint16(v), nil
}

func (h *Host) disassemble(addr uint16, flags displayFlags) (str string, next uint16) {
	var line string
	line, next = disasm.Disassemble(h.mem, h.set, addr)

	b := make([]byte, next-addr)
	h.mem.LoadBytes(addr, b)

	str = fmt.Sprintf("%04X-   %-8s    %-15s", addr, codeString(b), line)

	if (flags & displayRegisters) != 0 {
		str += " " + h.registerString()
	}

	if (flags & displayCycles) != 0 {
		str += fmt.Sprintf(" C=%-12d", h.cpu.Cycles)
	}

	return str, next
}

func (h *Host) registerString() string {
	r := &h.cpu.Reg
	return fmt.Sprintf("A=%02X X=%02X Y=%02X PS=[%s] SP=%02X PC=%04X",
		r.A, r.X, r.Y, r.PS, r.SP, r.PC)
}

// cycleString describes the clock cycle that just completed.
func (h *Host) cycleString() string {
	c := h.cpu
	return fmt.Sprintf("%-10d %s  %s  %s", c.Cycles, c.TCU, c.Bus, c.Pins)
}

func (h *Host) dumpMemory(addr0, bytes uint16) {
	if bytes == 0 {
		return
	}

	addr1 := addr0 + bytes - 1
	if addr1 < addr0 {
		addr1 = 0xffff
	}

	buf := []byte("    -" + strings.Repeat(" ", 35))

	// Don't align display for short dumps.
	if addr1-addr0 < 8 {
		addrToBuf(addr0, buf[0:4])
		for a, c1, c2 := uint32(addr0), 6, 32; a <= uint32(addr1); a, c1, c2 = a+1, c1+3, c2+1 {
			m := h.mem.LoadByte(uint16(a))
			byteToBuf(m, buf[c1:c1+2])
			buf[c2] = toPrintableChar(m)
		}
		h.println(string(buf))
		return
	}

	// Align addr0 and addr1 to 8-byte boundaries.
	start := uint32(addr0) & 0xfff8
	stop := (uint32(addr1) + 8) & 0xffff8
	if stop > 0x10000 {
		stop = 0x10000
	}

	a := start
	for r := start; r < stop; r += 8 {
		addrToBuf(uint16(a), buf[0:4])
		for c1, c2 := 6, 32; c1 < 29; c1, c2, a = c1+3, c2+1, a+1 {
			if a >= uint32(addr0) && a <= uint32(addr1) {
				m := h.mem.LoadByte(uint16(a))
				byteToBuf(m, buf[c1:c1+2])
				buf[c2] = toPrintableChar(m)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		h.println(string(buf))
	}
}

func (h *Host) displayUsage(c cmd.Selection) {
	if hc := commandOf(c); hc != nil && hc.usage != "" {
		h.printf("Syntax: %s\n", hc.usage)
	} else {
		h.println("<no help text>")
	}
}

// displayCommands lists the commands of a subtree, or the top-level
// commands and subtrees when sub is nil.
func (h *Host) displayCommands(sub *hostCommand) {
	if sub == nil {
		h.println("Commands:")
	} else {
		h.printf("%s:\n", sub.brief)
	}

	for _, c := range hostCommands {
		if c.brief == "" {
			continue
		}
		var name string
		switch {
		case sub == nil && !strings.Contains(c.path, " "):
			name = c.path
		case sub != nil && strings.HasPrefix(c.path, sub.path+" "):
			name = c.path[len(sub.path)+1:]
		default:
			continue
		}
		h.printf("    %-15s  %s\n", name, c.brief)
	}
}

func (h *Host) onBreakpoint(cpu *cpu.CPU, b *cpu.Breakpoint) {
	h.state = stateBreakpoint
	h.printf("Breakpoint hit at $%04X.\n", b.Address)
	h.displayPC()
}

func (h *Host) onDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint, access cpu.Access, v byte) {
	if access == cpu.ReadAccess {
		h.printf("Data breakpoint hit on read of $%02X from $%04X.\n", v, b.Address)
	} else {
		h.printf("Data breakpoint hit on write of $%02X to $%04X.\n", v, b.Address)
	}

	h.state = stateBreakpoint
	h.displayPC()
}

func (h *Host) onInterruptBreakpoint(c *cpu.CPU, b *cpu.InterruptBreakpoint) {
	h.printf("Interrupt breakpoint hit on %s. Vector at $%04X.\n", b.Kind, b.Kind.Vector())

	h.state = stateBreakpoint
	h.displayPC()
}
