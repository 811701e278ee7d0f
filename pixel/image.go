package pixel

import (
	"image"
	"image/color"
	"image/draw"
)

type Image interface {
	draw.Image

	// Clear the image to the blank paper color.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer is a single bit plane in controller RAM order, addressed through a rotation.
type Buffer struct {
	// Geometry is the physical panel size.
	Geometry Geometry

	// Rotation maps logical coordinates onto the panel.
	Rotation Rotation

	// Pix are the packed pixels, ceil(Height/8) bytes per column.
	Pix []byte
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Geometry.Bounds(p.Rotation)
}

// SetRotation changes the logical orientation. The stored pixels are not moved.
func (p *Buffer) SetRotation(r Rotation) {
	p.Rotation = r % 4
}

func makeBuffer(g Geometry, r Rotation, fill byte) Buffer {
	pix := make([]byte, g.BufferLen())
	for i := range pix {
		pix[i] = fill
	}
	return Buffer{
		Geometry: g,
		Rotation: r % 4,
		Pix:      pix,
	}
}

// MonoImage is a 1-bit per pixel e-paper image. A set bit is blank paper, a cleared bit is ink.
type MonoImage struct {
	Buffer
}

// NewMonoImage returns a blank (all bits set) image.
func NewMonoImage(g Geometry, r Rotation) *MonoImage {
	return &MonoImage{
		Buffer: makeBuffer(g, r, 0xff),
	}
}

func (p *MonoImage) ColorModel() color.Model {
	return MonoModel
}

// Bytes returns the plane as it is written to the controller RAM.
func (p *MonoImage) Bytes() []byte {
	return p.Pix
}

func (p *MonoImage) At(x, y int) color.Color {
	index, mask, ok := p.Geometry.Locate(x, y, p.Rotation)
	if !ok {
		return color.Transparent
	}
	return Mono{On: p.Pix[index]&mask == 0}
}

func (p *MonoImage) Set(x, y int, c color.Color) {
	p.SetPixel(x, y, monoModel(c).(Mono))
}

// SetPixel sets a single pixel, points outside the bounds are ignored.
func (p *MonoImage) SetPixel(x, y int, c Mono) {
	index, mask, ok := p.Geometry.Locate(x, y, p.Rotation)
	if !ok {
		return
	}
	if c.On {
		p.Pix[index] &^= mask
	} else {
		p.Pix[index] |= mask
	}
}

func (p *MonoImage) Fill(c color.Color) {
	var value byte = 0xff
	if monoModel(c).(Mono).On {
		value = 0x00
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

func (p *MonoImage) Clear() {
	p.Fill(Off)
}

// TriColorImage is a two plane black, white and chromatic image.
//
// The embedded Buffer is the black/white plane, written with WriteRAM1. Color is the
// chromatic plane, written with WriteRAM2. Pixels are encoded as:
//
//	Black:     plane 0, color 0
//	White:     plane 1, color 0
//	Chromatic: plane 1, color 1
type TriColorImage struct {
	Buffer
	Color []byte
}

// NewTriColorImage returns an all white image.
func NewTriColorImage(g Geometry, r Rotation) *TriColorImage {
	return &TriColorImage{
		Buffer: makeBuffer(g, r, 0xff),
		Color:  make([]byte, g.BufferLen()),
	}
}

func (p *TriColorImage) ColorModel() color.Model {
	return TriColorModel
}

// Planes returns the black/white and chromatic planes, in RAM write order.
func (p *TriColorImage) Planes() [][]byte {
	return [][]byte{p.Pix, p.Color}
}

func (p *TriColorImage) At(x, y int) color.Color {
	index, mask, ok := p.Geometry.Locate(x, y, p.Rotation)
	if !ok {
		return color.Transparent
	}
	switch {
	case p.Pix[index]&mask == 0:
		return Black
	case p.Color[index]&mask != 0:
		return Chromatic
	default:
		return White
	}
}

func (p *TriColorImage) Set(x, y int, c color.Color) {
	p.SetPixel(x, y, triColorModel(c).(TriColor))
}

// SetPixel sets a single pixel, points outside the bounds are ignored.
func (p *TriColorImage) SetPixel(x, y int, c TriColor) {
	index, mask, ok := p.Geometry.Locate(x, y, p.Rotation)
	if !ok {
		return
	}
	switch c {
	case Black:
		p.Pix[index] &^= mask
		p.Color[index] &^= mask
	case Chromatic:
		p.Pix[index] |= mask
		p.Color[index] |= mask
	default:
		p.Pix[index] |= mask
		p.Color[index] &^= mask
	}
}

func (p *TriColorImage) Fill(c color.Color) {
	var plane, chroma byte
	switch triColorModel(c).(TriColor) {
	case Black:
	case Chromatic:
		plane, chroma = 0xff, 0xff
	default:
		plane = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = plane
		p.Color[i] = chroma
	}
}

func (p *TriColorImage) Clear() {
	p.Fill(White)
}

// Interface checks.
var (
	_ Image = (*MonoImage)(nil)
	_ Image = (*TriColorImage)(nil)
)
