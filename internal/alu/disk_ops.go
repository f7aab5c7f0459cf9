package alu

import (
	"strconv"
	"strings"

	"github.com/cellmach/cellmach/internal/ram"
)

// readBlock implements OP_READ_BLOCK: disk a, block b. Every failure (disk missing, corrupt
// header, block out of range) is guest-visible, reported through REG_ERROR.
func (u *Unit) readBlock(r *ram.RAM, a, b string) error {
	block, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return &OperandTypeError{Wrapped: ErrNonInteger, Value: b}
	}

	content, err := u.Disks.ReadBlock(a, block)
	if err != nil {
		return u.setError(r, err.Error())
	}

	return u.setRes(r, content)
}

// writeBlock implements OP_WRITE_BLOCK: disk a, block b, value c. Writing block 1 is always
// guest-visible, not fatal.
func (u *Unit) writeBlock(r *ram.RAM, a, b, c string) error {
	block, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return &OperandTypeError{Wrapped: ErrNonInteger, Value: b}
	}

	if err := u.Disks.WriteBlock(a, block, c); err != nil {
		return u.setError(r, err.Error())
	}

	return nil
}
