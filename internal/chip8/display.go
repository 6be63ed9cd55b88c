package chip8

import "math/bits"

// Display resolution of the base instruction set.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// SpriteWidth is the fixed pixel width of every sprite row.
const SpriteWidth = 8

// Display is the monochrome framebuffer. Every row is stored as a 64 bit
// word with the leftmost pixel in the most significant bit.
type Display struct {
	rows [DisplayHeight]uint64
}

// Clear turns all pixels off.
func (d *Display) Clear() {
	d.rows = [DisplayHeight]uint64{}
}

// Draw XORs the sprite onto the framebuffer with its top left corner at
// (x mod width, y mod height). Pixels past an edge wrap around to the
// opposite side. It returns whether any lit pixel was turned off.
func (d *Display) Draw(x, y byte, sprite []byte) bool {
	col := int(x) % DisplayWidth
	row := int(y) % DisplayHeight

	collision := false
	for i, line := range sprite {
		// place the sprite byte at the left edge, then rotate it into position
		// so that bits leaving the right edge reappear on the left
		mask := bits.RotateLeft64(uint64(line)<<(DisplayWidth-SpriteWidth), -col)
		r := (row + i) % DisplayHeight
		if d.rows[r]&mask != 0 {
			collision = true
		}
		d.rows[r] ^= mask
	}
	return collision
}

// Pixel returns whether the pixel at the given position is lit.
// Coordinates outside the display return false.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return d.rows[y]&(1<<(DisplayWidth-1-x)) != 0
}

// Rows returns a copy of the framebuffer as row bitmasks.
func (d *Display) Rows() [DisplayHeight]uint64 {
	return d.rows
}

// Lit returns the number of lit pixels.
func (d *Display) Lit() int {
	n := 0
	for _, r := range d.rows {
		n += bits.OnesCount64(r)
	}
	return n
}
