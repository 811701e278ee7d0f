package ssd1680

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
)

// Pixel is a colored point.
type Pixel struct {
	image.Point
	Color color.Color
}

// Canvas adapts a Display to pixel streaming drawing libraries, such as TinyGo's
// tinyfont and tinydraw.
type Canvas struct {
	d Display
}

// NewCanvas returns a canvas drawing onto d.
func NewCanvas(d Display) *Canvas {
	return &Canvas{d: d}
}

// Size returns the logical display size.
func (c *Canvas) Size() (x, y int16) {
	size := c.d.Bounds().Size()
	return int16(size.X), int16(size.Y)
}

// SetPixel sets a single pixel, points outside the bounds are ignored.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.DrawPixels([]Pixel{{Point: image.Pt(int(x), int(y)), Color: col}})
}

// DrawPixels sets every pixel inside the display bounds and skips the others.
func (c *Canvas) DrawPixels(pixels []Pixel) {
	bounds := c.d.Bounds()
	for _, p := range pixels {
		if p.In(bounds) {
			c.d.Set(p.X, p.Y, p.Color)
		}
	}
}

// Display flushes the frame buffer to the panel.
func (c *Canvas) Display() error {
	return c.d.Refresh()
}

var _ drivers.Displayer = (*Canvas)(nil)
