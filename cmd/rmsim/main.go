// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/realmode/cpu"
	"github.com/ezrec/realmode/emulator"
	"github.com/ezrec/realmode/isa"
)

// defines collects repeated -D NAME=VALUE flags.
type defines map[string]string

func (d defines) String() string {
	var text []string
	for key, value := range d {
		text = append(text, key+"="+value)
	}
	return strings.Join(text, ",")
}

func (d defines) Set(text string) (err error) {
	key, value, ok := strings.Cut(text, "=")
	if !ok || len(key) == 0 {
		err = fmt.Errorf("%v: expected NAME=VALUE", text)
		return
	}
	d[key] = value
	return
}

// segment is a 16-bit segment register flag value.
type segment uint16

func (s *segment) String() string {
	return fmt.Sprintf("%#x", uint16(*s))
}

func (s *segment) Set(text string) (err error) {
	value, err := strconv.ParseUint(text, 0, 16)
	if err != nil {
		return
	}
	*s = segment(value)
	return
}

// termWidth returns the width of the terminal on out, or 0 if out is not a
// terminal.
func termWidth(out *os.File) (width int) {
	fd := int(out.Fd())
	if !term.IsTerminal(fd) {
		return
	}

	width, _, err := term.GetSize(fd)
	if err != nil {
		width = 0
	}
	return
}

// clip shortens a line to width runes. A width of 0 leaves it unchanged.
func clip(line string, width int) string {
	if width <= 0 {
		return line
	}

	runes := []rune(line)
	if len(runes) <= width {
		return line
	}

	return string(runes[:width])
}

// lastTrace returns the most recent step record, or nil.
func lastTrace(c *cpu.Cpu) *cpu.Trace {
	if len(c.Trace) == 0 {
		return nil
	}
	return c.Trace[len(c.Trace)-1]
}

// printTrace writes a step record.
func printTrace(w io.Writer, trace *cpu.Trace, width int) {
	fmt.Fprintln(w, clip(fmt.Sprintf("%05X  %-18s %v", trace.Instruction.Address, trace.Text, trace.Description), width))

	for _, calc := range trace.Addresses {
		fmt.Fprintln(w, clip("       "+calc.Formula, width))
	}

	for _, bus := range trace.Bus {
		fmt.Fprintln(w, clip(fmt.Sprintf("       %2d %-5v %-7v %v %05X %04X %v",
			bus.Step, bus.Kind, bus.Line, bus.Direction, bus.Address, bus.Data, bus.Description), width))
	}

	if len(trace.ChangedRegisters) != 0 || len(trace.ChangedFlags) != 0 {
		var changes []string
		for _, reg := range trace.ChangedRegisters {
			changes = append(changes, fmt.Sprintf("%v=%04X", reg, trace.After.Get(reg)))
		}
		for _, flag := range trace.ChangedFlags {
			val := 0
			if trace.After.Flags.Get(flag) {
				val = 1
			}
			changes = append(changes, fmt.Sprintf("%v=%d", flag, val))
		}
		fmt.Fprintln(w, clip("       "+strings.Join(changes, " "), width))
	}
}

// budget returns the step budget, as Cpu.Run would apply it.
func budget(steps int) int {
	if steps <= 0 {
		return cpu.RUN_STEPS_DEFAULT
	}
	return steps
}

// load assembles a source file into the emulator.
func load(emu *emulator.Emulator, path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	err = emu.Load(inf)
	return
}

func main() {
	var compile string
	var binary string
	var steps int
	var trace bool
	var listing bool
	var traceLimit int
	var verbose bool
	var cs, ds, ss segment

	predefines := defines{}

	flag.StringVar(&compile, "c", "", ".asm file to assemble and run")
	flag.StringVar(&binary, "b", "", "Write the assembled binary image to a file")
	flag.IntVar(&steps, "n", cpu.RUN_STEPS_DEFAULT, "Maximum steps to run, 0 for the default")
	flag.BoolVar(&trace, "t", false, "Print each step's trace")
	flag.BoolVar(&listing, "l", false, "Print the program listing")
	flag.IntVar(&traceLimit, "trace-limit", 0, "Trace records to keep, 0 for all")
	flag.Var(predefines, "D", "Predefine an equate, as NAME=VALUE")
	flag.Var(&cs, "cs", "Initial CS segment")
	flag.Var(&ds, "ds", "Initial DS segment")
	flag.Var(&ss, "ss", "Initial SS segment")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) == 0 {
		log.Fatalf("%v: -c is required", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Cpu.TraceLimit = traceLimit
	for key, value := range predefines {
		emu.Assembler.Predefine(key, value)
	}

	emu.Cpu.State.Set(isa.REG_CS, uint16(cs))
	emu.Cpu.State.Set(isa.REG_DS, uint16(ds))
	emu.Cpu.State.Set(isa.REG_SS, uint16(ss))

	err := load(emu, compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if len(binary) != 0 {
		err = os.WriteFile(binary, emu.Program.Bytes(), 0o644)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
	}

	if listing {
		err = emu.Listing(os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
	}

	width := termWidth(os.Stdout)

	var shown *cpu.Trace
	for range budget(steps) {
		done, err := emu.Tick()
		if trace {
			if latest := lastTrace(emu.Cpu); latest != nil && latest != shown {
				printTrace(os.Stdout, latest, width)
				shown = latest
			}
		}
		if err != nil {
			fmt.Print(emu.Cpu.String())
			log.Fatalf("%v: %v", compile, err)
		}
		if done {
			break
		}
	}

	fmt.Print(emu.Cpu.String())

	if !emu.Cpu.State.Halted {
		log.Fatalf("%v: %v", compile, emulator.ErrStepLimit)
	}
}
