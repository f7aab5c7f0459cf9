// Package term adapts the machine's keyboard to the host terminal, the way the teacher's tty
// package adapts the LC-3's keyboard and display devices to Unix terminal I/O. Because the
// emulator is strictly single-threaded, reads block the whole machine rather than running on a
// background goroutine: there is no scheduler for a read to yield to.
package term

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"
)

// Console reads keystrokes from the host terminal on behalf of OP_READ_INPUT.
type Console struct {
	in     *os.File
	reader *bufio.Reader
}

// NewConsole adapts in (typically os.Stdin) for keyboard reads.
func NewConsole(in *os.File) *Console {
	return &Console{in: in, reader: bufio.NewReader(in)}
}

// ReadChar reads a single character with normal terminal echo.
func (c *Console) ReadChar() (string, error) {
	r, _, err := c.reader.ReadRune()
	if err != nil {
		return "", fmt.Errorf("term: read: %w", err)
	}

	return string(r), nil
}

// ReadCharSilent reads a single character with the terminal in raw mode, so the keystroke is not
// echoed. If the input is not a terminal, it falls back to ReadChar.
func (c *Console) ReadCharSilent() (string, error) {
	fd := int(c.in.Fd())

	if !term.IsTerminal(fd) {
		return c.ReadChar()
	}

	saved, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("term: raw: %w", err)
	}

	defer func() { _ = term.Restore(fd, saved) }()

	r, _, err := c.reader.ReadRune()
	if err != nil {
		return "", fmt.Errorf("term: read: %w", err)
	}

	return string(r), nil
}

// ReadLine reads a newline-terminated line with normal terminal echo, the newline stripped.
func (c *Console) ReadLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("term: read: %w", err)
	}

	return trimEOL(line), nil
}

// ReadLineSilent reads a newline-terminated line with the terminal in raw mode, echoing nothing. If
// the input is not a terminal, it falls back to ReadLine.
func (c *Console) ReadLineSilent() (string, error) {
	fd := int(c.in.Fd())

	if !term.IsTerminal(fd) {
		return c.ReadLine()
	}

	saved, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("term: raw: %w", err)
	}

	defer func() { _ = term.Restore(fd, saved) }()

	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("term: read: %w", err)
	}

	return trimEOL(line), nil
}

func trimEOL(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}

	return s
}
