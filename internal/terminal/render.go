package terminal

import (
	"io"
	"strings"

	"github.com/retroenv/chip8emu/internal/chip8"
)

// Escape sequences for redrawing in place.
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
)

// halfBlocks indexed by top pixel | bottom pixel<<1.
var halfBlocks = [4]string{" ", "▀", "▄", "█"}

// Render writes the framebuffer as text, combining two pixel rows into one
// line of half block characters. Lines end in \r\n so that output stays
// aligned while the terminal is in raw mode.
func Render(w io.Writer, display *chip8.Display) error {
	var sb strings.Builder
	sb.Grow((chip8.DisplayWidth*3 + 2) * chip8.DisplayHeight / 2)

	for y := 0; y < chip8.DisplayHeight; y += 2 {
		for x := 0; x < chip8.DisplayWidth; x++ {
			index := 0
			if display.Pixel(x, y) {
				index |= 1
			}
			if display.Pixel(x, y+1) {
				index |= 2
			}
			sb.WriteString(halfBlocks[index])
		}
		sb.WriteString("\r\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
