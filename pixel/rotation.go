package pixel

import (
	"fmt"
	"image"
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// Geometry is the physical panel size.
//
// Width counts the source lines (columns) and Height the gate lines (rows). The controller
// RAM stores every column as ceil(Height/8) consecutive bytes, most significant bit first,
// with the last column at the start of the buffer.
type Geometry struct {
	Width  int
	Height int
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// Valid reports whether the geometry fits the controller's single byte window registers.
func (g Geometry) Valid() bool {
	return g.Width > 0 && g.Width <= 255 && g.Height > 0 && g.Height <= 255
}

// Stride is the number of bytes per column.
func (g Geometry) Stride() int {
	return (g.Height + 7) / 8
}

// BufferLen is the size of one bit plane in bytes.
func (g Geometry) BufferLen() int {
	return g.Stride() * g.Width
}

// Bounds returns the logical bounding box for the rotation. Quarter turns swap the axes.
func (g Geometry) Bounds(r Rotation) image.Rectangle {
	switch r % 4 {
	case Rotate90, Rotate270:
		return image.Rect(0, 0, g.Height, g.Width)
	default:
		return image.Rect(0, 0, g.Width, g.Height)
	}
}

// Physical maps the logical point (x, y) to the physical column and row.
func (g Geometry) Physical(x, y int, r Rotation) (col, row int) {
	switch r % 4 {
	case Rotate90:
		return y, g.Height - 1 - x
	case Rotate180:
		return g.Width - 1 - x, g.Height - 1 - y
	case Rotate270:
		return g.Width - 1 - y, x
	default:
		return x, y
	}
}

// Locate returns the byte index and bit mask holding the logical pixel (x, y). Points outside
// the logical bounds report ok == false.
func (g Geometry) Locate(x, y int, r Rotation) (index int, mask byte, ok bool) {
	if !(image.Point{X: x, Y: y}).In(g.Bounds(r)) {
		return 0, 0, false
	}
	col, row := g.Physical(x, y, r)
	index = row/8 + g.Stride()*(g.Width-1-col)
	if index < 0 || index >= g.BufferLen() {
		return 0, 0, false
	}
	return index, 0x80 >> uint(row%8), true
}
