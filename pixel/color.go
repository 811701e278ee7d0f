package pixel

import "image/color"

// Models for the panel color types.
var (
	MonoModel     color.Model = color.ModelFunc(monoModel)
	TriColorModel color.Model = color.ModelFunc(triColorModel)
)

var (
	Off = Mono{false}
	On  = Mono{true}
)

// Mono represents a 1-bit e-paper color. On is an inked (black) pixel.
type Mono struct {
	On bool
}

func (c Mono) RGBA() (r, g, b, a uint32) {
	if c.On {
		return 0, 0, 0, 0xffff
	}
	return 0xffff, 0xffff, 0xffff, 0xffff
}

func monoModel(c color.Color) color.Color {
	switch c := c.(type) {
	case Mono:
		return c
	case TriColor:
		return Mono{On: c == Black}
	}
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		// Transparent pixels leave the paper blank.
		return Off
	}

	// These coefficients (the fractions 0.299, 0.587 and 0.114) are the same
	// as those given by the JFIF specification and used by func RGBToYCbCr in
	// ycbcr.go.
	//
	// Note that 19595 + 38470 + 7471 equals 65536.
	//
	// The 31 is 16 + 15. The 16 is the same as used in RGBToYCbCr. The 15 is
	// because the return value is 1 bit color, not 16 bit color.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 31

	return Mono{On: y == 0}
}

// TriColor is a color of a black, white and chromatic (usually red or yellow) panel.
type TriColor uint8

// Tri-color panel colors.
const (
	White TriColor = iota
	Black
	Chromatic
)

// ChromaticRGBA is the color reported for Chromatic pixels.
var ChromaticRGBA = color.RGBA{R: 0xff, A: 0xff}

func (c TriColor) RGBA() (r, g, b, a uint32) {
	switch c {
	case Black:
		return 0, 0, 0, 0xffff
	case Chromatic:
		return ChromaticRGBA.RGBA()
	default:
		return 0xffff, 0xffff, 0xffff, 0xffff
	}
}

func (c TriColor) String() string {
	switch c {
	case Black:
		return "black"
	case Chromatic:
		return "chromatic"
	default:
		return "white"
	}
}

func triColorModel(c color.Color) color.Color {
	switch c := c.(type) {
	case TriColor:
		return c
	case Mono:
		if c.On {
			return Black
		}
		return White
	}
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		return White
	}

	// Saturated reds become chromatic, the rest is thresholded on luminance.
	r, g, b = r>>8, g>>8, b>>8
	if r > 0x80 && g < 0x60 && b < 0x60 {
		return Chromatic
	}
	if (299*r+587*g+114*b)/1000 < 0x80 {
		return Black
	}
	return White
}
