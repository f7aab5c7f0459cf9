package display_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cellmach/cellmach/internal/display"
)

func TestWriteUnknownColor(t *testing.T) {
	var buf bytes.Buffer

	err := display.Write(&buf, "hi", "COLOR_NOT_REAL", false)

	var unknown display.ErrUnknownColor
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want ErrUnknownColor", err)
	}
}

func TestWriteKnownColorProducesText(t *testing.T) {
	var buf bytes.Buffer

	if err := display.Write(&buf, "hello", display.ColorRed, true); err != nil {
		t.Fatalf("write: %s", err)
	}

	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("output %q does not contain %q", buf.String(), "hello")
	}
}

func TestRenderBitmapUnknownBackground(t *testing.T) {
	var buf bytes.Buffer

	err := display.RenderBitmap(&buf, []string{"rgb"}, "COLOR_NOT_REAL")

	var unknown display.ErrUnknownColor
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want ErrUnknownColor", err)
	}
}

func TestRenderBitmapRendersEveryRow(t *testing.T) {
	var buf bytes.Buffer

	if err := display.RenderBitmap(&buf, []string{"rgb", "m "}, display.ColorBlack); err != nil {
		t.Fatalf("render: %s", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
}
