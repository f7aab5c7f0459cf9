package asm

import (
	"errors"
	"fmt"
)

// ErrOperand is returned, wrapped, when an operand token is malformed: not a number where one is
// required, an immediate used where a destination is required, and so on. It is an
// emulator-fatal condition: the driver does not try to recover from it.
var ErrOperand = errors.New("malformed operand")

// ErrSyntax is returned, wrapped, when a source line does not match any instruction grammar.
var ErrSyntax = errors.New("syntax error")

// ErrSymbol is returned, wrapped, when a label or variable reference cannot be resolved.
var ErrSymbol = errors.New("undefined symbol")

// SyntaxError reports a malformed source line, with its location for diagnostics.
type SyntaxError struct {
	Loc  int
	Line string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: line %d: %q", ErrSyntax, e.Loc, e.Line)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// OperandError reports a malformed operand token.
type OperandError struct {
	Token string
}

func (e *OperandError) Error() string {
	return fmt.Sprintf("%s: %q", ErrOperand, e.Token)
}

func (e *OperandError) Unwrap() error { return ErrOperand }

// SymbolError reports a label or variable that was referenced but never defined.
type SymbolError struct {
	Name string
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("%s: %q", ErrSymbol, e.Name)
}

func (e *SymbolError) Unwrap() error { return ErrSymbol }
