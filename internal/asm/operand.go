package asm

// operand.go implements the addressing resolver: the rules for interpreting the operand syntax
// (@v, N, *N) that the copy and jump control primitives use, per the three addressing modes of the
// machine.

import (
	"strconv"
	"strings"

	"github.com/cellmach/cellmach/internal/ram"
)

// parseDirectAddr parses a bare decimal address token, such as the "N" in direct addressing, or the
// address left after resolving an indirection. It is emulator-fatal (a malformed operand) if the
// token is not a positive integer.
func parseDirectAddr(token string) (ram.Addr, error) {
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 {
		return 0, &OperandError{Token: token}
	}

	return ram.Addr(n), nil
}

// ResolveSource evaluates an operand token used as the source of a copy, returning the value it
// denotes:
//
//   - @v yields the literal v;
//   - *N yields RAM[RAM[N]] (RAM[N] must itself be a direct address);
//   - N yields RAM[N].
func ResolveSource(r *ram.RAM, token string) (string, error) {
	switch {
	case strings.HasPrefix(token, "@"):
		return token[1:], nil

	case strings.HasPrefix(token, "*"):
		n, err := parseDirectAddr(token[1:])
		if err != nil {
			return "", err
		}

		inner, err := r.Read(n)
		if err != nil {
			return "", err
		}

		addr, err := parseDirectAddr(inner)
		if err != nil {
			return "", err
		}

		return r.Read(addr)

	default:
		addr, err := parseDirectAddr(token)
		if err != nil {
			return "", err
		}

		return r.Read(addr)
	}
}

// ResolveAddr evaluates an operand token used where an address is required (a copy destination or a
// jump target). An immediate (@v) is invalid in this position and is rejected.
func ResolveAddr(r *ram.RAM, token string) (ram.Addr, error) {
	switch {
	case strings.HasPrefix(token, "@"):
		return 0, &OperandError{Token: token}

	case strings.HasPrefix(token, "*"):
		n, err := parseDirectAddr(token[1:])
		if err != nil {
			return 0, err
		}

		inner, err := r.Read(n)
		if err != nil {
			return 0, err
		}

		return parseDirectAddr(inner)

	default:
		return parseDirectAddr(token)
	}
}

// Copy implements "copy SRC to DST": resolve the destination address, then either write an
// immediate literal or the value read from the resolved source address.
func Copy(r *ram.RAM, srcTok, dstTok string) error {
	dst, err := ResolveAddr(r, dstTok)
	if err != nil {
		return err
	}

	if strings.HasPrefix(srcTok, "@") {
		return r.Write(dst, srcTok[1:])
	}

	val, err := ResolveSource(r, srcTok)
	if err != nil {
		return err
	}

	return r.Write(dst, val)
}
