// Package ram implements the machine's linear, line-addressed memory.
package ram

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// Addr is a 1-indexed cell address. Address 0 is never valid; it is reserved to mean "no address"
// in callers that need a zero value.
type Addr int

func (a Addr) String() string {
	return fmt.Sprintf("%d", int(a))
}

// RAM is a fixed-size array of textual cells, addressed by line number. Every cell holds a string;
// numeric, boolean, and error payloads are all textual and parsed on demand by the ALU. There is no
// concurrency control: the emulator is single-threaded and RAM is owned exclusively by it.
type RAM struct {
	cell []string
}

// ErrAddress is returned, wrapped with the offending address, whenever a read or write targets an
// address outside [1, Size]. It is fatal: the emulator does not and cannot recover from it.
var ErrAddress = errors.New("invalid address")

// AddressError reports an out-of-range access.
type AddressError struct {
	Addr Addr
	Size int
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s: %s (size %d)", ErrAddress, e.Addr, e.Size)
}

func (e *AddressError) Unwrap() error { return ErrAddress }

// New creates RAM of the given size. Every cell starts as the empty string, meaning "no value".
func New(size int) *RAM {
	return &RAM{cell: make([]string, size)}
}

// Size returns the number of addressable cells.
func (r *RAM) Size() int {
	return len(r.cell)
}

// Read returns the value stored at addr, or a fatal *AddressError if addr is out of range.
func (r *RAM) Read(addr Addr) (string, error) {
	if !r.valid(addr) {
		return "", &AddressError{Addr: addr, Size: r.Size()}
	}

	return r.cell[addr-1], nil
}

// Write stores value at addr, overwriting any previous value, or returns a fatal *AddressError if
// addr is out of range.
func (r *RAM) Write(addr Addr, value string) error {
	if !r.valid(addr) {
		return &AddressError{Addr: addr, Size: r.Size()}
	}

	r.cell[addr-1] = value

	return nil
}

func (r *RAM) valid(addr Addr) bool {
	return addr >= 1 && int(addr) <= len(r.cell)
}

// Dump writes every cell, one per line, in address order, to path.
func (r *RAM) Dump(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ram: dump: %w", err)
	}
	defer file.Close()

	out := bufio.NewWriter(file)

	for _, v := range r.cell {
		if _, err := fmt.Fprintln(out, v); err != nil {
			return fmt.Errorf("ram: dump: %w", err)
		}
	}

	return out.Flush()
}
