// Package alu implements cpu_exec: the machine's arithmetic/logic/IO unit. It reads an opcode and
// four operand registers, dispatches on the opcode, and writes result registers, the way the
// teacher's execute package dispatches a decoded instruction to its effect.
package alu

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cellmach/cellmach/internal/disk"
	"github.com/cellmach/cellmach/internal/log"
	"github.com/cellmach/cellmach/internal/ram"
	"github.com/cellmach/cellmach/internal/reg"
)

// ErrHalt is returned by Exec when the guest program executes OP_HALT. It is not an error in the
// usual sense: callers should treat it as a clean termination signal, the way io.EOF signals a
// clean end of stream.
var ErrHalt = errors.New("halt")

// Keyboard reads keystrokes on behalf of OP_READ_INPUT. *term.Console satisfies this.
type Keyboard interface {
	ReadChar() (string, error)
	ReadCharSilent() (string, error)
	ReadLine() (string, error)
	ReadLineSilent() (string, error)
}

// Unit is cpu_exec: it owns every resource an opcode might touch — the register file, the block
// device manager, the terminal output and keyboard, and the sleep primitive for OP_NOP — so that a
// test can substitute fakes for all of them.
type Unit struct {
	Regs     *reg.File
	Disks    *disk.Manager
	Out      io.Writer
	Keyboard Keyboard
	Sleep    func(time.Duration)
	Log      *log.Logger
}

// New builds a Unit. A nil out defaults to io.Discard and a nil logger to log.DefaultLogger; Sleep
// is set to time.Sleep and may be replaced on the returned Unit.
func New(regs *reg.File, disks *disk.Manager, out io.Writer, kbd Keyboard, logger *log.Logger) *Unit {
	if out == nil {
		out = io.Discard
	}

	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Unit{
		Regs:     regs,
		Disks:    disks,
		Out:      out,
		Keyboard: kbd,
		Sleep:    time.Sleep,
		Log:      logger,
	}
}

// Exec runs one cpu_exec cycle against r: it clears REG_ERROR, reads REG_OP and the four operand
// registers, dispatches, and writes the result registers. A returned error is always
// emulator-fatal or ErrHalt; guest-visible failures are reported through REG_ERROR, not the Go
// error return.
func (u *Unit) Exec(r *ram.RAM) error {
	opText, err := r.Read(u.Regs.Addr(reg.OP))
	if err != nil {
		return err
	}

	if err := r.Write(u.Regs.Addr(reg.Error), ""); err != nil {
		return err
	}

	a, err := r.Read(u.Regs.Addr(reg.A))
	if err != nil {
		return err
	}

	b, err := r.Read(u.Regs.Addr(reg.B))
	if err != nil {
		return err
	}

	c, err := r.Read(u.Regs.Addr(reg.C))
	if err != nil {
		return err
	}

	d, err := r.Read(u.Regs.Addr(reg.D))
	if err != nil {
		return err
	}

	switch Opcode(opText) {
	case OpAdd:
		return u.add(r, a, b)
	case OpSub:
		return u.sub(r, a, b)
	case OpIncr:
		return u.add(r, a, "1")
	case OpDecr:
		return u.sub(r, a, "1")
	case OpMul:
		return u.mul(r, a, b)
	case OpDiv:
		return u.divmod(r, a, b, false)
	case OpMod:
		return u.divmod(r, a, b, true)

	case OpIsNum:
		return u.writeBool(r, isNumber(a))
	case OpCmpEq:
		return u.writeBool(r, a == b)
	case OpCmpNeq:
		return u.writeBool(r, a != b)
	case OpCmpLt:
		return u.cmp(r, a, b, func(x, y int) bool { return x < y })
	case OpCmpLe:
		return u.cmp(r, a, b, func(x, y int) bool { return x <= y })
	case OpContains:
		return u.writeBool(r, strings.Contains(a, b))
	case OpStartsWith:
		return u.startsWith(r, a, b)

	case OpGetLength:
		return u.setRes(r, strconv.Itoa(len([]rune(a))))
	case OpGetColumn:
		return u.getColumn(r, a, b, c)
	case OpReplaceColumn:
		return u.replaceColumn(r, a, b, c, d)
	case OpConcatWith:
		return u.setRes(r, a+c+b)

	case OpReadInput:
		return u.readInput(r, a)
	case OpDisplay:
		return u.display(r, false)
	case OpDisplayLn:
		return u.display(r, true)
	case OpSetBackgroundColor:
		return u.setBackground(r)
	case OpRenderBitmap:
		return u.renderBitmap(r, a, b)

	case OpReadBlock:
		return u.readBlock(r, a, b)
	case OpWriteBlock:
		return u.writeBlock(r, a, b, c)

	case OpEncryptData, OpDecryptData:
		return u.setRes(r, a)

	case OpNop:
		return u.nop(a)
	case OpHalt:
		return ErrHalt

	default:
		return &OpcodeError{Opcode: opText}
	}
}

func (u *Unit) setRes(r *ram.RAM, value string) error {
	return r.Write(u.Regs.Addr(reg.RES), value)
}

func (u *Unit) setError(r *ram.RAM, reason string) error {
	return r.Write(u.Regs.Addr(reg.Error), reason)
}

func (u *Unit) writeBool(r *ram.RAM, v bool) error {
	if v {
		return r.Write(u.Regs.Addr(reg.BoolRes), "1")
	}

	return r.Write(u.Regs.Addr(reg.BoolRes), "0")
}

func (u *Unit) startsWith(r *ram.RAM, a, b string) error {
	has := strings.HasPrefix(a, b)
	if err := u.writeBool(r, has); err != nil {
		return err
	}

	return u.setRes(r, strings.TrimPrefix(a, b))
}

func (u *Unit) cmp(r *ram.RAM, a, b string, ok func(x, y int) bool) error {
	x, err := parseInteger(a)
	if err != nil {
		return err
	}

	y, err := parseInteger(b)
	if err != nil {
		return err
	}

	return u.writeBool(r, ok(x.Cmp(y), 0))
}

func (u *Unit) nop(a string) error {
	seconds, err := parseNumber(a)
	if err != nil {
		return err
	}

	f, _ := seconds.Float64()
	if f > 0 {
		u.Sleep(time.Duration(f * float64(time.Second)))
	}

	return nil
}

func (u *Unit) add(r *ram.RAM, a, b string) error {
	x, err := parseNumber(a)
	if err != nil {
		return err
	}

	y, err := parseNumber(b)
	if err != nil {
		return err
	}

	return u.setRes(r, formatNumber(x.Add(x, y)))
}

func (u *Unit) sub(r *ram.RAM, a, b string) error {
	x, err := parseNumber(a)
	if err != nil {
		return err
	}

	y, err := parseNumber(b)
	if err != nil {
		return err
	}

	return u.setRes(r, formatNumber(x.Sub(x, y)))
}

func (u *Unit) mul(r *ram.RAM, a, b string) error {
	x, err := parseNumber(a)
	if err != nil {
		return err
	}

	y, err := parseNumber(b)
	if err != nil {
		return err
	}

	return u.setRes(r, formatScaled(x.Mul(x, y), 2))
}

func (u *Unit) divmod(r *ram.RAM, a, b string, mod bool) error {
	x, err := parseInteger(a)
	if err != nil {
		return err
	}

	y, err := parseInteger(b)
	if err != nil {
		return err
	}

	if y.Sign() == 0 {
		return u.setError(r, "division by zero")
	}

	q, m := newInt(), newInt()
	q.QuoRem(x, y, m)

	if mod {
		return u.setRes(r, m.String())
	}

	return u.setRes(r, q.String())
}
