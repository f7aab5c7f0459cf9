package ram_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cellmach/cellmach/internal/ram"
)

func TestReadWriteRoundTrip(t *testing.T) {
	r := ram.New(16)

	for addr := 1; addr <= 16; addr++ {
		value := strings.Repeat("x", addr)

		if err := r.Write(ram.Addr(addr), value); err != nil {
			t.Fatalf("write %d: %s", addr, err)
		}

		got, err := r.Read(ram.Addr(addr))
		if err != nil {
			t.Fatalf("read %d: %s", addr, err)
		}

		if got != value {
			t.Errorf("addr %d: got %q, want %q", addr, got, value)
		}
	}
}

func TestOutOfRangeIsFatal(t *testing.T) {
	r := ram.New(8)

	cases := []ram.Addr{0, -1, 9, 1000}

	for _, addr := range cases {
		if _, err := r.Read(addr); !errors.Is(err, ram.ErrAddress) {
			t.Errorf("read %d: got %v, want ErrAddress", addr, err)
		}

		if err := r.Write(addr, "x"); !errors.Is(err, ram.ErrAddress) {
			t.Errorf("write %d: got %v, want ErrAddress", addr, err)
		}
	}
}

func TestZeroValueIsEmptyString(t *testing.T) {
	r := ram.New(4)

	got, err := r.Read(ram.Addr(1))
	if err != nil {
		t.Fatalf("read: %s", err)
	}

	if got != "" {
		t.Errorf("got %q, want empty string", got)
	}
}

func TestDump(t *testing.T) {
	r := ram.New(3)

	if err := r.Write(1, "one"); err != nil {
		t.Fatal(err)
	}

	if err := r.Write(3, "three"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "ram.dump")

	if err := r.Dump(path); err != nil {
		t.Fatalf("dump: %s", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dump: %s", err)
	}

	want := "one\n\nthree\n"
	if string(data) != want {
		t.Errorf("dump contents = %q, want %q", string(data), want)
	}
}
