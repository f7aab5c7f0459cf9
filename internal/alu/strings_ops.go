package alu

import (
	"strconv"
	"strings"

	"github.com/cellmach/cellmach/internal/ram"
)

// getColumn implements OP_GET_COLUMN: with an empty separator c, b is a 1-based character index
// into a; otherwise a is split on c and b selects a 1-based field.
func (u *Unit) getColumn(r *ram.RAM, a, b, c string) error {
	index, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return &OperandTypeError{Wrapped: ErrNonInteger, Value: b}
	}

	if c == "" {
		runes := []rune(a)
		if index < 1 || index > len(runes) {
			return u.setRes(r, "")
		}

		return u.setRes(r, string(runes[index-1]))
	}

	fields := strings.Split(a, c)
	if index < 1 || index > len(fields) {
		return u.setRes(r, "")
	}

	return u.setRes(r, fields[index-1])
}

// replaceColumn implements OP_REPLACE_COLUMN: the same split/index semantics as getColumn, but the
// selected character or field is replaced by d and the string reconstructed.
func (u *Unit) replaceColumn(r *ram.RAM, a, b, c, d string) error {
	index, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return &OperandTypeError{Wrapped: ErrNonInteger, Value: b}
	}

	if c == "" {
		runes := []rune(a)
		if index < 1 || index > len(runes) {
			return u.setRes(r, a)
		}

		replacement := []rune(d)
		if len(replacement) == 0 {
			return u.setRes(r, string(runes))
		}

		runes[index-1] = replacement[0]

		return u.setRes(r, string(runes))
	}

	fields := strings.Split(a, c)
	if index < 1 || index > len(fields) {
		return u.setRes(r, a)
	}

	fields[index-1] = d

	return u.setRes(r, strings.Join(fields, c))
}
