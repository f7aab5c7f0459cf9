package asm_test

import (
	"strings"
	"testing"

	"github.com/cellmach/cellmach/internal/asm"
	"github.com/cellmach/cellmach/internal/log"
	"github.com/cellmach/cellmach/internal/ram"
	"github.com/cellmach/cellmach/internal/reg"
)

func TestResolveLabelsAndVars(t *testing.T) {
	src := `write @1 to var:counter
label top
write @2 to REG_A
jump label:top
`

	regs := reg.New(64)
	a := asm.New(regs, log.DefaultLogger())

	if err := a.Parse(strings.NewReader(src)); err != nil {
		t.Fatalf("parse: %s", err)
	}

	lines, err := a.Resolve()
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}

	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}

	if lines[1] != "" {
		t.Errorf("label line should resolve to empty text, got %q", lines[1])
	}

	symbols := a.Symbols()

	if symbols.Labels["top"] != 2 {
		t.Errorf("label top = %d, want 2", symbols.Labels["top"])
	}

	wantJump := "jump 2"
	if lines[3] != wantJump {
		t.Errorf("jump line = %q, want %q", lines[3], wantJump)
	}

	regAAddr, _ := regs.Lookup("REG_A")

	wantWrite := "copy @2 to " + regAAddr.String()
	if lines[2] != wantWrite {
		t.Errorf("write line = %q, want %q", lines[2], wantWrite)
	}
}

func TestUndefinedLabelIsError(t *testing.T) {
	regs := reg.New(64)
	a := asm.New(regs, log.DefaultLogger())

	if err := a.Parse(strings.NewReader("jump label:nowhere\n")); err != nil {
		t.Fatalf("parse: %s", err)
	}

	if _, err := a.Resolve(); err == nil {
		t.Fatal("expected an error for an undefined label")
	}
}

func TestLoadWritesStartingAtAddressOne(t *testing.T) {
	regs := reg.New(64)
	r := ram.New(64)
	a := asm.New(regs, log.DefaultLogger())

	if err := a.Parse(strings.NewReader("cpu_exec\n")); err != nil {
		t.Fatalf("parse: %s", err)
	}

	n, err := a.Load(r)
	if err != nil {
		t.Fatalf("load: %s", err)
	}

	if n != 1 {
		t.Fatalf("loaded %d cells, want 1", n)
	}

	got, err := r.Read(ram.Addr(1))
	if err != nil {
		t.Fatalf("read: %s", err)
	}

	if got != "cpu_exec" {
		t.Errorf("cell 1 = %q, want %q", got, "cpu_exec")
	}
}

func TestVarsAreAssignedBelowUserSpaceEnd(t *testing.T) {
	regs := reg.New(64)
	a := asm.New(regs, log.DefaultLogger())

	src := "write @1 to var:a\nwrite @2 to var:b\nwrite @3 to var:a\n"

	if err := a.Parse(strings.NewReader(src)); err != nil {
		t.Fatalf("parse: %s", err)
	}

	if _, err := a.Resolve(); err != nil {
		t.Fatalf("resolve: %s", err)
	}

	symbols := a.Symbols()

	if symbols.Vars["a"] != regs.UserSpaceEnd() {
		t.Errorf("var a = %d, want %d", symbols.Vars["a"], regs.UserSpaceEnd())
	}

	if symbols.Vars["b"] != regs.UserSpaceEnd()-1 {
		t.Errorf("var b = %d, want %d", symbols.Vars["b"], regs.UserSpaceEnd()-1)
	}
}

func TestResolveAddrRejectsImmediateDestination(t *testing.T) {
	r := ram.New(8)

	if _, err := asm.ResolveAddr(r, "@3"); err == nil {
		t.Error("expected an error using an immediate as a destination")
	}
}

func TestCopyIndirect(t *testing.T) {
	r := ram.New(8)

	if err := r.Write(1, "5"); err != nil {
		t.Fatal(err)
	}

	if err := r.Write(5, "hi"); err != nil {
		t.Fatal(err)
	}

	if err := asm.Copy(r, "*1", "2"); err != nil {
		t.Fatalf("copy: %s", err)
	}

	got, err := r.Read(2)
	if err != nil {
		t.Fatal(err)
	}

	if got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
}
