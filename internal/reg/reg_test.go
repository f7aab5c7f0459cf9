package reg_test

import (
	"testing"

	"github.com/cellmach/cellmach/internal/reg"
)

func TestRegistersAreDisjointAndInRange(t *testing.T) {
	const size = 64

	f := reg.New(size)

	seen := make(map[int]reg.Name)

	for n := reg.OP; n <= reg.FreeMemoryEnd; n++ {
		addr := f.Addr(n)

		if int(addr) < 1 || int(addr) > size {
			t.Errorf("%s: addr %d out of RAM bounds [1,%d]", n, addr, size)
		}

		if prev, ok := seen[int(addr)]; ok {
			t.Errorf("%s and %s share address %d", n, prev, addr)
		}

		seen[int(addr)] = n
	}
}

func TestLookupByName(t *testing.T) {
	f := reg.New(64)

	addr, ok := f.Lookup("REG_A")
	if !ok {
		t.Fatal("REG_A not found")
	}

	if addr != f.Addr(reg.A) {
		t.Errorf("REG_A addr = %d, want %d", addr, f.Addr(reg.A))
	}

	if _, ok := f.Lookup("NOT_A_REGISTER"); ok {
		t.Error("unknown register name resolved, want not found")
	}
}

func TestUserSpaceDoesNotOverlapRegisters(t *testing.T) {
	f := reg.New(64)

	if f.UserSpaceEnd() >= f.Addr(reg.OP) {
		t.Errorf("UserSpaceEnd() = %d overlaps first register at %d", f.UserSpaceEnd(), f.Addr(reg.OP))
	}
}

func TestNewPanicsWhenRAMTooSmall(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for undersized RAM")
		}
	}()

	reg.New(1)
}
