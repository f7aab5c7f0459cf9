// Package driver implements the outer fetch-decode-execute loop: it advances the program counter,
// fetches instruction text from RAM, and dispatches to the addressing resolver or the ALU, the way
// the teacher's machine Step/Run loop drives its own decoded instructions.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/cellmach/cellmach/internal/alu"
	"github.com/cellmach/cellmach/internal/asm"
	"github.com/cellmach/cellmach/internal/log"
	"github.com/cellmach/cellmach/internal/ram"
	"github.com/cellmach/cellmach/internal/reg"
)

// PCError reports a PROGRAM_COUNTER cell that does not hold a valid decimal address. It is
// emulator-fatal.
type PCError struct {
	Value string
}

func (e *PCError) Error() string {
	return fmt.Sprintf("driver: invalid program counter %q", e.Value)
}

// Driver runs the fetch-decode-execute loop against one machine instance.
type Driver struct {
	RAM   *ram.RAM
	Regs  *reg.File
	Unit  *alu.Unit
	Log   *log.Logger
	Trace bool
	Out   io.Writer // destination for debug tracer lines
}

// New builds a Driver. A nil out defaults to io.Discard.
func New(r *ram.RAM, regs *reg.File, unit *alu.Unit, logger *log.Logger, out io.Writer) *Driver {
	if out == nil {
		out = io.Discard
	}

	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Driver{RAM: r, Regs: regs, Unit: unit, Log: logger, Out: out}
}

// Run drives the fetch-decode-execute loop to completion: until OP_HALT, a fatal error, or ctx is
// canceled. A clean OP_HALT is reported as a nil error; ctx cancellation is reported as ctx.Err().
func (d *Driver) Run(ctx context.Context) error {
	if err := d.ensurePC(); err != nil {
		return err
	}

	d.Log.Info("driver: start", log.Group("STATE", d))

	for {
		select {
		case <-ctx.Done():
			d.Log.Warn("driver: cancelled", log.Group("STATE", d))
			return ctx.Err()
		default:
		}

		err := d.Step()
		if err == nil {
			continue
		}

		if errors.Is(err, alu.ErrHalt) {
			d.Log.Info("driver: halted", log.Group("STATE", d))
			return nil
		}

		d.Log.Error("driver: fatal", "error", err, log.Group("STATE", d))

		return err
	}
}

// LogValue renders a snapshot of the machine's control registers for structured logging: PC, the
// pending opcode, and the result/error registers, grouped under a single "STATE" heading the way
// the teacher's Handler formats grouped attributes.
func (d *Driver) LogValue() log.Value {
	pc, _ := d.RAM.Read(d.Regs.Addr(reg.PC))
	op, _ := d.RAM.Read(d.Regs.Addr(reg.OP))
	res, _ := d.RAM.Read(d.Regs.Addr(reg.RES))
	boolRes, _ := d.RAM.Read(d.Regs.Addr(reg.BoolRes))
	guestErr, _ := d.RAM.Read(d.Regs.Addr(reg.Error))

	return log.GroupValue(
		log.String("PC", pc),
		log.String("REG_OP", op),
		log.String("REG_RES", res),
		log.String("REG_BOOL_RES", boolRes),
		log.String("REG_ERROR", guestErr),
	)
}

// Step executes exactly one fetch-decode-execute cycle: it fetches RAM[PC], parses and dispatches
// it, then advances PC. A returned alu.ErrHalt means the guest program executed OP_HALT; any other
// non-nil error is emulator-fatal.
func (d *Driver) Step() error {
	pc, err := d.pc()
	if err != nil {
		return err
	}

	text, err := d.RAM.Read(ram.Addr(pc))
	if err != nil {
		return err
	}

	if d.Trace {
		d.trace(pc, text)
	}

	instr, err := asm.ParseLine(text)
	if err != nil {
		if syn, ok := err.(*asm.SyntaxError); ok {
			syn.Loc = pc
		}

		return err
	}

	if err := d.dispatch(instr); err != nil {
		return err
	}

	pc, err = d.pc()
	if err != nil {
		return err
	}

	return d.setPC(pc + 1)
}

func (d *Driver) dispatch(instr asm.Instruction) error {
	switch instr.Op {
	case asm.NOP:
		return nil

	case asm.OpCopy:
		return asm.Copy(d.RAM, instr.Src, instr.Dst)

	case asm.OpRead:
		val, err := asm.ResolveSource(d.RAM, instr.Dst)
		if err != nil {
			return err
		}

		d.Log.Debug("driver: read", "addr", instr.Dst, "value", val)

		return nil

	case asm.OpJump:
		return d.jump(instr.Dst)

	case asm.OpJumpIf:
		boolRes, err := d.RAM.Read(d.Regs.Addr(reg.BoolRes))
		if err != nil {
			return err
		}

		if boolRes == "1" {
			return d.jump(instr.Dst)
		}

		return nil

	case asm.OpJumpIfNot:
		boolRes, err := d.RAM.Read(d.Regs.Addr(reg.BoolRes))
		if err != nil {
			return err
		}

		if boolRes == "0" {
			return d.jump(instr.Dst)
		}

		return nil

	case asm.OpJumpErr:
		guestErr, err := d.RAM.Read(d.Regs.Addr(reg.Error))
		if err != nil {
			return err
		}

		if guestErr != "" {
			return d.jump(instr.Dst)
		}

		return nil

	case asm.OpCPUExec:
		return d.Unit.Exec(d.RAM)

	default:
		return fmt.Errorf("driver: unrecognized instruction form %v", instr.Op)
	}
}

// jump resolves tok to an address and sets PC to addr-1, so Step's unconditional post-dispatch
// increment lands exactly on addr.
func (d *Driver) jump(tok string) error {
	addr, err := asm.ResolveAddr(d.RAM, tok)
	if err != nil {
		return err
	}

	return d.setPC(int(addr) - 1)
}

func (d *Driver) pc() (int, error) {
	s, err := d.RAM.Read(d.Regs.Addr(reg.PC))
	if err != nil {
		return 0, err
	}

	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &PCError{Value: s}
	}

	return n, nil
}

func (d *Driver) setPC(n int) error {
	return d.RAM.Write(d.Regs.Addr(reg.PC), strconv.Itoa(n))
}

// ensurePC seeds PROGRAM_COUNTER to 1 on a freshly loaded machine, where it is still empty.
func (d *Driver) ensurePC() error {
	s, err := d.RAM.Read(d.Regs.Addr(reg.PC))
	if err != nil {
		return err
	}

	if s != "" {
		return nil
	}

	return d.setPC(1)
}

// trace prints a colored debug line of the form "[DEBUG] Command <PC>: <instruction text>" before
// each fetch. It never affects program state.
func (d *Driver) trace(pc int, text string) {
	c := color.New(color.FgHiBlack, color.Faint)
	c.Fprintf(d.Out, "[DEBUG] Command %d: %s\n", pc, text)
}
