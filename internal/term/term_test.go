package term_test

import (
	"os"
	"testing"

	"github.com/cellmach/cellmach/internal/term"
)

// These tests exercise Console against a pipe rather than a real terminal. Since a pipe is never a
// terminal, the *Silent methods take their non-terminal fallback path, which is the only path
// exercisable without a pseudo-terminal.
func TestReadLine(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %s", err)
	}
	defer r.Close()

	if _, err := w.WriteString("hello\n"); err != nil {
		t.Fatal(err)
	}

	w.Close()

	c := term.NewConsole(r)

	got, err := c.ReadLine()
	if err != nil {
		t.Fatalf("read line: %s", err)
	}

	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestReadLineSilentFallsBackWhenNotATerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %s", err)
	}
	defer r.Close()

	if _, err := w.WriteString("quiet\n"); err != nil {
		t.Fatal(err)
	}

	w.Close()

	c := term.NewConsole(r)

	got, err := c.ReadLineSilent()
	if err != nil {
		t.Fatalf("read line silent: %s", err)
	}

	if got != "quiet" {
		t.Errorf("got %q, want %q", got, "quiet")
	}
}

func TestReadChar(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %s", err)
	}
	defer r.Close()

	if _, err := w.WriteString("x"); err != nil {
		t.Fatal(err)
	}

	w.Close()

	c := term.NewConsole(r)

	got, err := c.ReadChar()
	if err != nil {
		t.Fatalf("read char: %s", err)
	}

	if got != "x" {
		t.Errorf("got %q, want %q", got, "x")
	}
}
