// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"strings"

	"github.com/beevik/cmd"
)

// A hostCommand is stored in the Data field of every command in the tree.
// It carries the handler and the help text shown by the help command.
type hostCommand struct {
	path        string
	brief       string
	description string
	usage       string
	subtree     bool
	handler     func(*Host, cmd.Selection) error
}

var (
	cmds         *cmd.Tree
	hostCommands []*hostCommand
)

func addSubtree(root *cmd.Tree, name, brief string) *cmd.Tree {
	hostCommands = append(hostCommands, &hostCommand{path: name, brief: brief, subtree: true})
	return root.AddSubtree(cmd.TreeDescriptor{Name: name, Brief: brief})
}

func addCommand(t *cmd.Tree, parent string, d cmd.CommandDescriptor, handler func(*Host, cmd.Selection) error) {
	c := &hostCommand{
		path:        strings.TrimSpace(parent + " " + d.Name),
		brief:       d.Brief,
		description: d.Description,
		usage:       d.Usage,
		handler:     handler,
	}
	d.Data = c
	t.AddCommand(d)
	hostCommands = append(hostCommands, c)
}

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "tick6502"})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:        "help",
		Description: "Display help for a command.",
		Usage:       "help [<command>]",
	}, (*Host).cmdHelp)

	// Breakpoint commands
	bp := addSubtree(root, "breakpoint", "Breakpoint commands")
	addCommand(bp, "breakpoint", cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List breakpoints",
		Description: "List all current breakpoints.",
		Usage:       "breakpoint list",
	}, (*Host).cmdBreakpointList)
	addCommand(bp, "breakpoint", cmd.CommandDescriptor{
		Name:  "add",
		Brief: "Add a breakpoint",
		Description: "Add a breakpoint at the specified address." +
			" The breakpoint is hit when the CPU fetches the opcode at" +
			" the address. The breakpoint starts enabled.",
		Usage: "breakpoint add <address>",
	}, (*Host).cmdBreakpointAdd)
	addCommand(bp, "breakpoint", cmd.CommandDescriptor{
		Name:        "remove",
		Brief:       "Remove a breakpoint",
		Description: "Remove a breakpoint at the specified address.",
		Usage:       "breakpoint remove <address>",
	}, (*Host).cmdBreakpointRemove)
	addCommand(bp, "breakpoint", cmd.CommandDescriptor{
		Name:        "enable",
		Brief:       "Enable a breakpoint",
		Description: "Enable a previously added breakpoint.",
		Usage:       "breakpoint enable <address>",
	}, (*Host).cmdBreakpointEnable)
	addCommand(bp, "breakpoint", cmd.CommandDescriptor{
		Name:  "disable",
		Brief: "Disable a breakpoint",
		Description: "Disable a previously added breakpoint. This" +
			" prevents the breakpoint from being hit when running the" +
			" CPU.",
		Usage: "breakpoint disable <address>",
	}, (*Host).cmdBreakpointDisable)

	addCommand(bp, "breakpoint", cmd.CommandDescriptor{
		Name:  "interrupt",
		Brief: "Break on an interrupt sequence",
		Description: "Stop the CPU when it starts the BRK, IRQ, NMI or" +
			" RESET sequence. Use off to remove the breakpoint. Without" +
			" arguments, list the interrupt breakpoints.",
		Usage: "breakpoint interrupt [<brk|irq|nmi|reset> [on|off]]",
	}, (*Host).cmdBreakpointInterrupt)

	// Data breakpoint commands
	db := addSubtree(root, "databreakpoint", "Data breakpoint commands")
	addCommand(db, "databreakpoint", cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List data breakpoints",
		Description: "List all current data breakpoints.",
		Usage:       "databreakpoint list",
	}, (*Host).cmdDataBreakpointList)
	addCommand(db, "databreakpoint", cmd.CommandDescriptor{
		Name:  "add",
		Brief: "Add a data breakpoint",
		Description: "Add a new data breakpoint at the specified" +
			" memory address. By default the breakpoint is hit when the" +
			" CPU writes to the address, stopping the CPU at the end of the" +
			" write cycle. An access of r, w or rw selects reads, writes or" +
			" both; a read stops the CPU on the cycle after the data" +
			" arrives. Optionally, a byte value may be specified, and the" +
			" CPU will stop only when this value is transferred. The data" +
			" breakpoint starts enabled.",
		Usage: "databreakpoint add <address> [<value>] [r|w|rw]",
	}, (*Host).cmdDataBreakpointAdd)
	addCommand(db, "databreakpoint", cmd.CommandDescriptor{
		Name:  "remove",
		Brief: "Remove a data breakpoint",
		Description: "Remove a previously added data breakpoint at" +
			" the specified memory address.",
		Usage: "databreakpoint remove <address>",
	}, (*Host).cmdDataBreakpointRemove)
	addCommand(db, "databreakpoint", cmd.CommandDescriptor{
		Name:        "enable",
		Brief:       "Enable a data breakpoint",
		Description: "Enable a previously added data breakpoint.",
		Usage:       "databreakpoint enable <address>",
	}, (*Host).cmdDataBreakpointEnable)
	addCommand(db, "databreakpoint", cmd.CommandDescriptor{
		Name:        "disable",
		Brief:       "Disable a data breakpoint",
		Description: "Disable a previously added data breakpoint.",
		Usage:       "databreakpoint disable <address>",
	}, (*Host).cmdDataBreakpointDisable)

	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "disassemble",
		Brief: "Disassemble code",
		Description: "Disassemble machine code starting at the requested" +
			" address. The number of instruction lines to disassemble may be" +
			" specified as an option. If no address is specified, the" +
			" disassembly continues from where the last disassembly left off.",
		Usage: "disassemble [<address>] [<lines>]",
	}, (*Host).cmdDisassemble)
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "execute",
		Brief: "Execute a script file",
		Description: "Load a script file from disk and execute the" +
			" commands it contains.",
		Usage: "execute <filename>",
	}, (*Host).cmdExecute)
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "load",
		Brief: "Load a binary file",
		Description: "Load the raw contents of a binary file into the" +
			" emulated system's memory at the specified address, then" +
			" redirect the CPU to the first byte loaded.",
		Usage: "load <filename> <address>",
	}, (*Host).cmdLoad)

	// Memory commands
	me := addSubtree(root, "memory", "Memory commands")
	addCommand(me, "memory", cmd.CommandDescriptor{
		Name:  "dump",
		Brief: "Dump memory at address",
		Description: "Dump the contents of memory starting from the" +
			" specified address. The number of bytes to dump may be" +
			" specified as an option. If no address is specified, the" +
			" memory dump continues from where the last dump left off.",
		Usage: "memory dump [<address>] [<bytes>]",
	}, (*Host).cmdMemoryDump)
	addCommand(me, "memory", cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set memory at address",
		Description: "Set the contents of memory starting from the specified" +
			" address. The values to assign should be a series of" +
			" space-separated byte values.",
		Usage: "memory set <address> <byte> [<byte> ...]",
	}, (*Host).cmdMemorySet)

	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "opcode",
		Brief: "Describe an instruction",
		Description: "Display the encoding, length and cycle timing of" +
			" every opcode of the named instruction in the current" +
			" architecture. A hexadecimal opcode may be given instead of a" +
			" name.",
		Usage: "opcode <name|opcode>",
	}, (*Host).cmdOpcode)
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "pin",
		Brief: "View or change CPU pins",
		Description: "When used without arguments, this command displays" +
			" the CPU's control signals. When used with arguments, it" +
			" asserts (1) or deasserts (0) one of the input pins IRQ, NMI" +
			" or RDY. IRQ is level sensitive and NMI is edge sensitive." +
			" Deasserting RDY stalls the CPU on its next read cycle.",
		Usage: "pin [<name> <0|1>]",
	}, (*Host).cmdPin)
	addCommand(root, "", cmd.CommandDescriptor{
		Name:        "quit",
		Brief:       "Quit the program",
		Description: "Quit the program.",
		Usage:       "quit",
	}, (*Host).cmdQuit)
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "register",
		Brief: "View or change register values",
		Description: "When used without arguments, this command displays the current" +
			" contents of the CPU registers. When used with arguments, this" +
			" command changes the value of a register or one of the CPU's status" +
			" flags. Allowed register names include A, X, Y, PC and SP. Allowed status" +
			" flag names include N (Negative), V (Overflow), D (Decimal)," +
			" I (InterruptDisable), Z (Zero) and C (Carry).",
		Usage: "register [<name> <value>]",
	}, (*Host).cmdRegister)
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "reset",
		Brief: "Reset the CPU",
		Description: "Reset the CPU and clock it through the reset" +
			" sequence until it fetches the first opcode from the address" +
			" stored in the reset vector at $FFFC.",
		Usage: "reset",
	}, (*Host).cmdReset)
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "run",
		Brief: "Run the CPU",
		Description: "Run the CPU until a breakpoint is hit, the CPU" +
			" jams, or the user types Ctrl-C. If an address is specified," +
			" the CPU is redirected there first.",
		Usage: "run [<address>]",
	}, (*Host).cmdRun)
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set a configuration variable",
		Description: "Set the value of a configuration variable. To see the" +
			" current values of all configuration variables, type set" +
			" without any arguments.",
		Usage: "set [<var> <value>]",
	}, (*Host).cmdSet)

	// Step commands
	st := addSubtree(root, "step", "Step the CPU")
	addCommand(st, "step", cmd.CommandDescriptor{
		Name:  "cycle",
		Brief: "Step by clock cycles",
		Description: "Step the CPU by a single clock cycle, displaying the" +
			" timing state and the bus transaction of the cycle. The number" +
			" of cycles may be specified as an option.",
		Usage: "step cycle [<count>]",
	}, (*Host).cmdStepCycle)
	addCommand(st, "step", cmd.CommandDescriptor{
		Name:  "in",
		Brief: "Step into next instruction",
		Description: "Step the CPU until its next opcode fetch. If the" +
			" instruction is a subroutine call, step into the subroutine." +
			" The number of steps may be specified as an option.",
		Usage: "step in [<count>]",
	}, (*Host).cmdStepIn)

	// Add command shortcuts.
	root.AddShortcut("b", "breakpoint")
	root.AddShortcut("bp", "breakpoint")
	root.AddShortcut("ba", "breakpoint add")
	root.AddShortcut("br", "breakpoint remove")
	root.AddShortcut("bl", "breakpoint list")
	root.AddShortcut("be", "breakpoint enable")
	root.AddShortcut("bd", "breakpoint disable")
	root.AddShortcut("bi", "breakpoint interrupt")
	root.AddShortcut("d", "disassemble")
	root.AddShortcut("db", "databreakpoint")
	root.AddShortcut("dbp", "databreakpoint")
	root.AddShortcut("dbl", "databreakpoint list")
	root.AddShortcut("dba", "databreakpoint add")
	root.AddShortcut("dbr", "databreakpoint remove")
	root.AddShortcut("dbe", "databreakpoint enable")
	root.AddShortcut("dbd", "databreakpoint disable")
	root.AddShortcut("m", "memory dump")
	root.AddShortcut("ms", "memory set")
	root.AddShortcut("r", "register")
	root.AddShortcut("s", "step in")
	root.AddShortcut("si", "step in")
	root.AddShortcut("sc", "step cycle")
	root.AddShortcut("?", "help")
	root.AddShortcut(".", "register")

	cmds = root
}
