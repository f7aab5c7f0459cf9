// Package asm implements the instruction grammar, the operand addressing resolver, and the
// assembler/loader for guest programs.
//
// Label and variable resolution happens here, out of the core, exactly as the machine's driver
// expects: by the time a program is loaded into RAM, every "label:NAME" and "var:NAME" token has
// been replaced by a decimal address, and the driver never sees a symbolic name.
package asm
