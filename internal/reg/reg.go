// Package reg defines the machine's well-known registers: a fixed set of RAM addresses with
// conventional roles, reserved at the top of the address space the way the teacher machine reserves
// its I/O page above user space, so that guest programs loaded starting at address 1 never collide
// with them.
package reg

import "github.com/cellmach/cellmach/internal/ram"

// Name identifies a register by its conventional role.
type Name int

const (
	OP Name = iota // Opcode selector for the next cpu_exec.
	A              // Operand A value, used by cpu_exec as is.
	B              // Operand B value, used by cpu_exec as is.
	C              // Operand C value, used by cpu_exec as is.
	D              // Operand D value, used by cpu_exec as is.
	RES
	BoolRes
	Error
	PC // Program counter: 1-based index of the next instruction cell.

	DisplayBuffer
	DisplayColor
	DisplayBackground
	KeyboardBuffer

	FreeMemoryStart
	FreeMemoryEnd

	count // Number of reserved registers; keep last.
)

var names = [count]string{
	OP:                "REG_OP",
	A:                 "REG_A",
	B:                 "REG_B",
	C:                 "REG_C",
	D:                 "REG_D",
	RES:               "REG_RES",
	BoolRes:           "REG_BOOL_RES",
	Error:             "REG_ERROR",
	PC:                "PROGRAM_COUNTER",
	DisplayBuffer:     "DISPLAY_BUFFER",
	DisplayColor:      "DISPLAY_COLOR",
	DisplayBackground: "DISPLAY_BACKGROUND",
	KeyboardBuffer:    "KEYBOARD_BUFFER",
	FreeMemoryStart:   "FREE_MEMORY_START",
	FreeMemoryEnd:     "FREE_MEMORY_END",
}

func (n Name) String() string {
	if int(n) < 0 || int(n) >= int(count) {
		return "REG_UNKNOWN"
	}

	return names[n]
}

// File maps register names to their RAM addresses for one machine instance. Registers occupy the
// topmost cells of RAM, in declaration order, so that user-space addresses 1..(Size-count) are free
// for guest programs and assembler-assigned variables.
type File struct {
	addr [count]ram.Addr
	byName map[string]ram.Addr
}

// New builds a register file for RAM of the given size. size must be large enough to hold every
// reserved register; New panics otherwise, since a machine that cannot address its own registers
// cannot run.
func New(size int) *File {
	if size < int(count) {
		panic("reg: RAM too small to hold registers")
	}

	f := &File{byName: make(map[string]ram.Addr, count)}

	base := ram.Addr(size - int(count) + 1)
	for i := Name(0); i < count; i++ {
		f.addr[i] = base + ram.Addr(i)
		f.byName[names[i]] = f.addr[i]
	}

	return f
}

// Addr returns the RAM address reserved for the named register.
func (f *File) Addr(n Name) ram.Addr {
	return f.addr[n]
}

// Lookup resolves a register's symbolic name (e.g. "REG_A") to its address, for use by the
// assembler and diagnostics. The second return value is false if name is not a reserved register.
func (f *File) Lookup(name string) (ram.Addr, bool) {
	a, ok := f.byName[name]
	return a, ok
}

// UserSpaceEnd returns the highest address available to guest programs and variables: the cell
// immediately below the first reserved register.
func (f *File) UserSpaceEnd() ram.Addr {
	return f.addr[0] - 1
}
