// Package display renders the machine's terminal output: colored text, a colored background, and a
// simple character-indexed bitmap, all over ANSI escape sequences provided by fatih/color.
package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Named color constants, exposed the way guest programs reference them.
const (
	ColorMagenta = "COLOR_MAGENTA"
	ColorGreen   = "COLOR_GREEN"
	ColorYellow  = "COLOR_YELLOW"
	ColorRed     = "COLOR_RED"
	ColorBlack   = "COLOR_BLACK"
	ColorBlue    = "COLOR_BLUE"
	ColorCyan    = "COLOR_CYAN"
	ColorWhite   = "COLOR_WHITE"
)

var foreground = map[string]color.Attribute{
	ColorMagenta: color.FgMagenta,
	ColorGreen:   color.FgGreen,
	ColorYellow:  color.FgYellow,
	ColorRed:     color.FgRed,
	ColorBlack:   color.FgBlack,
	ColorBlue:    color.FgBlue,
	ColorCyan:    color.FgCyan,
	ColorWhite:   color.FgWhite,
}

var background = map[string]color.Attribute{
	ColorMagenta: color.BgMagenta,
	ColorGreen:   color.BgGreen,
	ColorYellow:  color.BgYellow,
	ColorRed:     color.BgRed,
	ColorBlack:   color.BgBlack,
	ColorBlue:    color.BgBlue,
	ColorCyan:    color.BgCyan,
	ColorWhite:   color.BgWhite,
}

// palette maps a bitmap character to the foreground color it selects, per the fixed eight-color
// scheme.
var palette = map[byte]string{
	'm': ColorMagenta,
	'g': ColorGreen,
	'y': ColorYellow,
	'r': ColorRed,
	'B': ColorBlack,
	'b': ColorBlue,
	'c': ColorCyan,
	'w': ColorWhite,
}

// ErrUnknownColor is returned when a color register holds a name that isn't one of the eight named
// colors.
type ErrUnknownColor string

func (e ErrUnknownColor) Error() string {
	return fmt.Sprintf("display: unknown color %q", string(e))
}

// Write renders text to w in the given foreground color, optionally followed by a newline.
func Write(w io.Writer, text, colorName string, newline bool) error {
	attr, ok := foreground[colorName]
	if !ok {
		return ErrUnknownColor(colorName)
	}

	c := color.New(attr)

	if newline {
		_, err := c.Fprintln(w, text)
		return err
	}

	_, err := c.Fprint(w, text)

	return err
}

// SetBackground emits the ANSI background code for colorName and clears the screen, in the manner
// of a terminal that has just switched its canvas color.
func SetBackground(w io.Writer, colorName string) error {
	attr, ok := background[colorName]
	if !ok {
		return ErrUnknownColor(colorName)
	}

	c := color.New(attr)
	if _, err := c.Fprint(w, "\x1b[2J\x1b[H"); err != nil {
		return err
	}

	return nil
}

// RenderBitmap prints rows of palette characters as colored cells against the given background
// color. Each character in each row selects a foreground color from the palette; unrecognized
// characters render as a single blank cell.
func RenderBitmap(w io.Writer, rows []string, backgroundName string) error {
	bg, ok := background[backgroundName]
	if !ok {
		return ErrUnknownColor(backgroundName)
	}

	for _, row := range rows {
		for i := 0; i < len(row); i++ {
			fg, known := palette[row[i]]
			if !known {
				if _, err := fmt.Fprint(w, " "); err != nil {
					return err
				}

				continue
			}

			c := color.New(foreground[fg], bg)
			if _, err := c.Fprint(w, " "); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}
