package alu

import (
	"fmt"

	"github.com/cellmach/cellmach/internal/display"
	"github.com/cellmach/cellmach/internal/ram"
	"github.com/cellmach/cellmach/internal/reg"
)

// readInput implements OP_READ_INPUT: mode selects which Keyboard method reads the next keystroke
// or line, the result landing in KEYBOARD_BUFFER.
func (u *Unit) readInput(r *ram.RAM, mode string) error {
	if u.Keyboard == nil {
		return u.setError(r, "no keyboard attached")
	}

	var (
		value string
		err   error
	)

	switch mode {
	case KeyboardReadChar:
		value, err = u.Keyboard.ReadChar()
	case KeyboardReadCharSilent:
		value, err = u.Keyboard.ReadCharSilent()
	case KeyboardReadLine:
		value, err = u.Keyboard.ReadLine()
	case KeyboardReadLineSilent:
		value, err = u.Keyboard.ReadLineSilent()
	default:
		return u.setError(r, fmt.Sprintf("unknown input mode %q", mode))
	}

	if err != nil {
		return err
	}

	return r.Write(u.Regs.Addr(reg.KeyboardBuffer), value)
}

// display implements OP_DISPLAY and OP_DISPLAY_LN: DISPLAY_BUFFER is written to Out in the
// foreground color named by DISPLAY_COLOR.
func (u *Unit) display(r *ram.RAM, newline bool) error {
	text, err := r.Read(u.Regs.Addr(reg.DisplayBuffer))
	if err != nil {
		return err
	}

	colorName, err := r.Read(u.Regs.Addr(reg.DisplayColor))
	if err != nil {
		return err
	}

	if err := display.Write(u.Out, text, colorName, newline); err != nil {
		return u.setError(r, err.Error())
	}

	return nil
}

// setBackground implements OP_SET_BACKGROUND_COLOR.
func (u *Unit) setBackground(r *ram.RAM) error {
	colorName, err := r.Read(u.Regs.Addr(reg.DisplayBackground))
	if err != nil {
		return err
	}

	if err := display.SetBackground(u.Out, colorName); err != nil {
		return u.setError(r, err.Error())
	}

	return nil
}

// renderBitmap implements OP_RENDER_BITMAP: a and b are cell addresses delimiting the half-open
// range [a, b) of bitmap rows, rendered against the current DISPLAY_BACKGROUND.
func (u *Unit) renderBitmap(r *ram.RAM, a, b string) error {
	start, err := parseInteger(a)
	if err != nil {
		return err
	}

	end, err := parseInteger(b)
	if err != nil {
		return err
	}

	lo, hi := int(start.Int64()), int(end.Int64())

	rows := make([]string, 0, hi-lo)

	for addr := lo; addr < hi; addr++ {
		row, err := r.Read(ram.Addr(addr))
		if err != nil {
			return err
		}

		rows = append(rows, row)
	}

	colorName, err := r.Read(u.Regs.Addr(reg.DisplayBackground))
	if err != nil {
		return err
	}

	if err := display.RenderBitmap(u.Out, rows, colorName); err != nil {
		return u.setError(r, err.Error())
	}

	return nil
}
