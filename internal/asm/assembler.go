package asm

// assembler.go resolves label:NAME and var:NAME tokens to absolute addresses and loads the
// resulting instruction text into RAM, starting at address 1. This two-pass design mirrors the
// teacher's own assembler: a first pass walks the source to build a symbol table, a second pass
// substitutes references and generates the final form.

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cellmach/cellmach/internal/log"
	"github.com/cellmach/cellmach/internal/ram"
	"github.com/cellmach/cellmach/internal/reg"
)

// SymbolTable maps label and variable names to the addresses the assembler assigned them.
type SymbolTable struct {
	Labels map[string]ram.Addr
	Vars   map[string]ram.Addr
}

// Assembler accumulates parsed source lines across one or more calls to Parse, then resolves
// symbols and loads the program into RAM.
type Assembler struct {
	regs *reg.File
	log  *log.Logger

	lines []Instruction
	raw   []string // original line text, for diagnostics

	labels  map[string]ram.Addr
	vars    map[string]ram.Addr
	varNext ram.Addr

	errs []error
}

// New creates an assembler targeting a machine whose registers are regs. Variables are assigned
// addresses counting down from the cell immediately below the register block.
func New(regs *reg.File, logger *log.Logger) *Assembler {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Assembler{
		regs:    regs,
		log:     logger,
		labels:  make(map[string]ram.Addr),
		vars:    make(map[string]ram.Addr),
		varNext: regs.UserSpaceEnd(),
	}
}

// Parse reads source lines from in, appending them to the program being assembled. Line addresses
// are assigned in the order lines are parsed, continuing across multiple calls to Parse, so a
// program may be split across several source readers.
func (a *Assembler) Parse(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := scanner.Text()
		loc := ram.Addr(len(a.lines) + 1)

		instr, err := parseLine(line)
		if err != nil {
			if syn, ok := err.(*SyntaxError); ok {
				syn.Loc = int(loc)
			}

			a.errs = append(a.errs, err)
			instr = Instruction{Op: NOP}
		}

		if instr.Op == opLabel {
			if _, exists := a.labels[instr.Name]; exists {
				a.errs = append(a.errs, fmt.Errorf("line %d: label %q redefined", loc, instr.Name))
			}

			a.labels[instr.Name] = loc

			a.log.Debug("assembler: label", "name", instr.Name, "addr", loc)
		}

		a.lines = append(a.lines, instr)
		a.raw = append(a.raw, line)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("asm: %w", err)
	}

	return nil
}

// Err returns the accumulated syntax and symbol errors from Parse and Resolve, or nil if there were
// none.
func (a *Assembler) Err() error {
	if len(a.errs) == 0 {
		return nil
	}

	msgs := make([]string, len(a.errs))
	for i, err := range a.errs {
		msgs[i] = err.Error()
	}

	return fmt.Errorf("asm: %d error(s): %s", len(a.errs), strings.Join(msgs, "; "))
}

// Symbols returns the symbol table assembled so far.
func (a *Assembler) Symbols() SymbolTable {
	return SymbolTable{Labels: a.labels, Vars: a.vars}
}

// resolveToken substitutes a "label:NAME" or "var:NAME" reference, possibly prefixed with '@' or
// '*', with the decimal address assigned to that symbol. Tokens without such a reference are
// returned unchanged.
func (a *Assembler) resolveToken(tok string) (string, error) {
	prefix := ""
	rest := tok

	if len(tok) > 0 && (tok[0] == '@' || tok[0] == '*') {
		prefix = tok[:1]
		rest = tok[1:]
	}

	switch {
	case strings.HasPrefix(rest, "label:"):
		name := rest[len("label:"):]

		addr, ok := a.labels[name]
		if !ok {
			return "", &SymbolError{Name: name}
		}

		return prefix + addr.String(), nil

	case strings.HasPrefix(rest, "var:"):
		name := rest[len("var:"):]
		return prefix + a.assignVar(name).String(), nil

	default:
		// A bare token may name one of the machine's well-known registers (REG_A,
		// DISPLAY_BUFFER, ...); resolve it to its fixed address the same way a label resolves
		// to one it was assigned.
		if addr, ok := a.regs.Lookup(rest); ok {
			return prefix + addr.String(), nil
		}

		return tok, nil
	}
}

// assignVar returns the address assigned to a variable name, assigning the next free cell below
// the register block on first reference.
func (a *Assembler) assignVar(name string) ram.Addr {
	if addr, ok := a.vars[name]; ok {
		return addr
	}

	addr := a.varNext
	a.vars[name] = addr
	a.varNext--

	a.log.Debug("assembler: var", "name", name, "addr", addr)

	return addr
}

// Resolve substitutes every label and variable reference and returns the final instruction text for
// each line, in address order, ready to be loaded into RAM starting at address 1.
func (a *Assembler) Resolve() ([]string, error) {
	out := make([]string, len(a.lines))

	for i, instr := range a.lines {
		var err error

		switch instr.Op {
		case NOP, opLabel:
			out[i] = ""
			continue
		case OpCopy:
			if instr.Src, err = a.resolveToken(instr.Src); err == nil {
				instr.Dst, err = a.resolveToken(instr.Dst)
			}
		case OpRead, OpJump, OpJumpIf, OpJumpIfNot, OpJumpErr:
			instr.Dst, err = a.resolveToken(instr.Dst)
		case OpCPUExec:
			// No operands to resolve.
		}

		if err != nil {
			a.errs = append(a.errs, fmt.Errorf("line %d: %w", i+1, err))
			out[i] = ""

			continue
		}

		out[i] = instr.text()
	}

	if err := a.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// Load resolves the assembled program and writes it into r starting at address 1. It returns the
// number of cells written.
func (a *Assembler) Load(r *ram.RAM) (int, error) {
	lines, err := a.Resolve()
	if err != nil {
		return 0, err
	}

	for i, text := range lines {
		addr := ram.Addr(i + 1)
		if err := r.Write(addr, text); err != nil {
			return i, fmt.Errorf("asm: load: %w", err)
		}
	}

	a.log.Debug("assembler: loaded", "lines", len(lines))

	return len(lines), nil
}
