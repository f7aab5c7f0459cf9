package driver_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cellmach/cellmach/internal/alu"
	"github.com/cellmach/cellmach/internal/asm"
	"github.com/cellmach/cellmach/internal/disk"
	"github.com/cellmach/cellmach/internal/driver"
	"github.com/cellmach/cellmach/internal/log"
	"github.com/cellmach/cellmach/internal/ram"
	"github.com/cellmach/cellmach/internal/reg"
)

const ramSize = 128

func build(t *testing.T, src string) (*ram.RAM, *reg.File, *driver.Driver) {
	t.Helper()

	r := ram.New(ramSize)
	regs := reg.New(ramSize)
	logger := log.DefaultLogger()

	a := asm.New(regs, logger)
	if err := a.Parse(strings.NewReader(src)); err != nil {
		t.Fatalf("parse: %s", err)
	}

	if _, err := a.Load(r); err != nil {
		t.Fatalf("load: %s", err)
	}

	disks := disk.NewManager(t.TempDir(), logger)
	unit := alu.New(regs, disks, nil, nil, logger)
	d := driver.New(r, regs, unit, logger, nil)

	return r, regs, d
}

func TestJumpSetsProgramCounterAfterOneTick(t *testing.T) {
	src := "jump 42\n"

	r, regs, d := build(t, src)

	if err := r.Write(regs.Addr(reg.PC), "1"); err != nil {
		t.Fatal(err)
	}

	// jump is a self-contained instruction; a single Step executes it and applies the
	// driver's automatic post-dispatch increment.
	if err := d.Step(); err != nil {
		t.Fatalf("step: %s", err)
	}

	got, err := r.Read(regs.Addr(reg.PC))
	if err != nil {
		t.Fatalf("read PC: %s", err)
	}

	if got != "42" {
		t.Errorf("PROGRAM_COUNTER = %q, want %q", got, "42")
	}
}

func TestJumpIfOnTrue(t *testing.T) {
	r, regs, d := build(t, "jump_if 5\n")

	if err := r.Write(regs.Addr(reg.PC), "1"); err != nil {
		t.Fatal(err)
	}

	if err := r.Write(regs.Addr(reg.BoolRes), "1"); err != nil {
		t.Fatal(err)
	}

	if err := d.Step(); err != nil {
		t.Fatalf("step: %s", err)
	}

	got, _ := r.Read(regs.Addr(reg.PC))
	if got != "5" {
		t.Errorf("PROGRAM_COUNTER = %q, want %q", got, "5")
	}
}

func TestRunHaltsCleanly(t *testing.T) {
	src := "write @3 to REG_A\nwrite @4 to REG_B\nwrite OP_ADD to REG_OP\ncpu_exec\nwrite OP_HALT to REG_OP\ncpu_exec\n"

	r, regs, d := build(t, src)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := d.Run(ctx); err != nil {
		t.Fatalf("run: %s", err)
	}

	got, err := r.Read(regs.Addr(reg.RES))
	if err != nil {
		t.Fatalf("read REG_RES: %s", err)
	}

	if got != "7" {
		t.Errorf("REG_RES = %q, want %q", got, "7")
	}
}

func TestRunStopsOnContextCancellation(t *testing.T) {
	// An infinite loop: jump back to the same line forever.
	_, _, d := build(t, "jump 1\n")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := d.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("got %v, want context.DeadlineExceeded", err)
	}
}

func TestMalformedInstructionIsFatal(t *testing.T) {
	// The assembler rejects malformed source, so the bad text is placed in RAM directly.
	r, regs, d := build(t, "")

	if err := r.Write(1, "not_a_real_instruction"); err != nil {
		t.Fatal(err)
	}

	if err := r.Write(regs.Addr(reg.PC), "1"); err != nil {
		t.Fatal(err)
	}

	if err := d.Step(); err == nil {
		t.Error("expected an error for a malformed instruction")
	}
}
