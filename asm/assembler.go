// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/realmode/internal"
	"github.com/ezrec/realmode/isa"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":    "0",
	"STACK_TOP": fmt.Sprintf("%#x", isa.SP_INIT),
}

var (
	reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reDecimal    = regexp.MustCompile(`^[0-9]+$`)
	reHex        = regexp.MustCompile(`^0[xX][0-9a-fA-F]+$`)
	reHexSuffix  = regexp.MustCompile(`^[0-9a-fA-F]+[hH]$`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// reference is an operand waiting for its label to be resolved.
type reference struct {
	index   int // Instruction index.
	operand int // Operand index.
	label   string
	lineno  int
}

// Assembler is a two pass assembler for the real-mode instruction set.
//
// The first pass parses each line into an encoded instruction, collecting
// label declarations and label references. The second pass assigns byte
// offsets and patches every reference with its label's offset.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string
	Label     map[string]int    // Map of labels to instruction indexes.
	Equate    map[string]string // Map of equates.

	instructions []isa.Instruction
	references   []reference
	errors       []*ErrSyntax
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{}
	}
	asm.predefine[strings.ToUpper(equ)] = value
}

// Defines returns the system equates followed by the predefines.
func (asm *Assembler) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(sysEquate), maps.All(asm.predefine))
}

// validName returns true if name can be declared as a label or equate.
func validName(name string) bool {
	if !reIdentifier.MatchString(name) {
		return false
	}
	if _, ok := isa.ParseRegister(name); ok {
		return false
	}
	if _, ok := isa.ParseMnemonic(name); ok {
		return false
	}
	return true
}

// valueOf parses a numeric literal: decimal, 0x-prefixed hex, or
// h-suffixed hex. ok is false if the word is not a numeric literal.
func valueOf(word string) (value uint16, ok bool, err error) {
	var digits string
	base := 16
	switch {
	case reDecimal.MatchString(word):
		digits = word
		base = 10
	case reHex.MatchString(word):
		digits = word[2:]
	case reHexSuffix.MatchString(word):
		digits = word[:len(word)-1]
	default:
		return
	}

	ok = true
	v64, err := strconv.ParseUint(digits, base, 64)
	if err != nil || v64 > 0xffff {
		err = ErrValueRange(word)
		return
	}

	value = uint16(v64)
	return
}

// parseOperand parses a single operand. Identifiers that are not registers
// or equates become label references.
func (asm *Assembler) parseOperand(text string) (op isa.Operand, err error) {
	if len(text) == 0 {
		return
	}

	if equate, ok := asm.Equate[strings.ToUpper(text)]; ok {
		text = equate
	}

	if reg, ok := isa.ParseRegister(text); ok {
		op = isa.Reg(reg)
		return
	}

	value, ok, err := valueOf(text)
	if err != nil {
		return
	}
	if ok {
		op = isa.Imm(value)
		return
	}

	if reIdentifier.MatchString(text) {
		op = isa.Ref(strings.ToUpper(text))
		return
	}

	err = ErrOperandInvalid(text)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v, ok, _ := valueOf(str)
		if !ok {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(v))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < -0x8000 || st_int64 > 0xffff {
		err = ErrValueRange("$(" + expr + ")")
		return
	}
	value = uint16(st_int64)
	return
}

// expand replaces every $(...) in the line with its value.
func (asm *Assembler) expand(line string) (expanded string, err error) {
	expanded = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return fmt.Sprintf("%#x", value)
	})
	return
}

// equate handles a .equ directive.
func (asm *Assembler) equate(words []string) (err error) {
	if len(words) != 3 || !validName(words[1]) {
		err = ErrEquateSyntax
		return
	}
	name := strings.ToUpper(words[1])
	if _, ok := asm.Equate[name]; ok {
		err = ErrEquateDuplicate
		return
	}
	if _, ok := asm.Label[name]; ok {
		err = ErrEquateDuplicate
		return
	}
	asm.Equate[name] = words[2]
	return
}

// parseInstruction parses a mnemonic and its comma separated operands.
func (asm *Assembler) parseInstruction(line string, lineno int) (in isa.Instruction, err error) {
	word := line
	var args string
	if split := strings.IndexFunc(line, unicode.IsSpace); split >= 0 {
		word = line[:split]
		args = strings.TrimSpace(line[split+1:])
	}

	m, ok := isa.ParseMnemonic(word)
	if !ok {
		err = ErrMnemonicUnknown(word)
		return
	}

	var operands []isa.Operand
	if len(args) > 0 {
		for _, text := range strings.Split(args, ",") {
			var op isa.Operand
			op, err = asm.parseOperand(strings.TrimSpace(text))
			if err != nil {
				return
			}
			operands = append(operands, op)
		}
	}

	in = isa.NewInstruction(lineno, m, operands...)
	return
}

// parseLine runs the first pass over a single source line.
func (asm *Assembler) parseLine(text string, lineno int) (err error) {
	line := strings.TrimSpace(strings.Split(text, ";")[0])
	if len(line) == 0 {
		return
	}

	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line, err = asm.expand(line)
	if err != nil {
		return
	}

	words := strings.Fields(line)
	if strings.EqualFold(words[0], ".equ") {
		err = asm.equate(words)
		return
	}

	for {
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			break
		}
		label := strings.ToUpper(strings.TrimSpace(line[:colon]))
		if !validName(label) {
			err = ErrLabelInvalid(label)
			return
		}
		// Equates are substituted before label references.
		if _, ok := asm.Equate[label]; ok {
			err = ErrLabelInvalid(label)
			return
		}
		if _, ok := asm.Label[label]; ok {
			err = ErrLabelDuplicate(label)
			return
		}
		asm.Label[label] = len(asm.instructions)
		line = strings.TrimSpace(line[colon+1:])
		if len(line) == 0 {
			return
		}
	}

	in, err := asm.parseInstruction(line, lineno)
	if err != nil {
		return
	}

	index := len(asm.instructions)
	for n, op := range in.Operands {
		if op.Kind == isa.OPERAND_LABEL {
			asm.references = append(asm.references, reference{
				index:   index,
				operand: n,
				label:   op.Label,
				lineno:  lineno,
			})
		}
	}
	asm.instructions = append(asm.instructions, in)

	return
}

// link runs the second pass: assigns offsets and resolves label references.
func (asm *Assembler) link() (labels map[string]uint16) {
	offset := 0
	for n := range asm.instructions {
		in := &asm.instructions[n]
		in.Address = uint32(offset)
		offset += in.Size()
	}

	labels = make(map[string]uint16, len(asm.Label))
	for label, index := range asm.Label {
		if index < len(asm.instructions) {
			labels[label] = uint16(asm.instructions[index].Address)
		}
	}

	for _, ref := range asm.references {
		target, ok := labels[ref.label]
		if !ok {
			asm.errors = append(asm.errors, &ErrSyntax{LineNo: ref.lineno, Err: ErrLabelMissing(ref.label)})
			continue
		}
		in := &asm.instructions[ref.index]
		in.Operands[ref.operand] = isa.Imm(target)
		if asm.Verbose {
			log.Printf("link: line %v %v = 0x%04x", ref.lineno, ref.label, target)
		}
	}

	return
}

// Parse assembles an input stream. The returned Program holds every
// instruction that parsed, and every error found. If there were any errors,
// err joins all of them.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Collect(asm.Defines())
	asm.instructions = nil
	asm.references = nil
	asm.errors = nil

	var lineno int
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line_err := asm.parseLine(text, lineno)
		if line_err != nil {
			asm.errors = append(asm.errors, &ErrSyntax{LineNo: lineno, Line: text, Err: line_err})
		}
	}

	if scan_err := scanner.Err(); scan_err != nil {
		asm.errors = append(asm.errors, &ErrSyntax{LineNo: lineno + 1, Err: scan_err})
	}

	labels := asm.link()

	prog = &Program{
		Instructions: asm.instructions,
		Labels:       labels,
		Errors:       asm.errors,
	}

	err = prog.Err()

	return
}
