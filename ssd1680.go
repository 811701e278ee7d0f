package ssd1680

import (
	"fmt"

	"periph.io/x/conn/v3/display"

	"github.com/BeatGlow/ssd1680/pixel"
)

// Dev is a monochrome SSD1680 e-paper panel.
type Dev struct {
	baseDisplay
	image *pixel.MonoImage
}

// New returns a monochrome panel driver. Nothing is sent to the controller until the
// first Flush.
func New(c Conn, config *Config) (*Dev, error) {
	d := new(Dev)
	if err := d.init(c, config, func(g pixel.Geometry, r pixel.Rotation) frame {
		d.image = pixel.NewMonoImage(g, r)
		return d.image
	}); err != nil {
		return nil, err
	}
	d.planes = func() [][]byte {
		return [][]byte{d.image.Bytes()}
	}
	return d, nil
}

func (d *Dev) String() string {
	g := d.ctrl.Geometry()
	return fmt.Sprintf("SSD1680 e-paper %dx%d", g.Width, g.Height)
}

// SetPixel sets a single pixel, points outside the bounds are ignored.
func (d *Dev) SetPixel(x, y int, c pixel.Mono) {
	d.image.SetPixel(x, y, c)
}

// Image returns the frame buffer.
func (d *Dev) Image() *pixel.MonoImage {
	return d.image
}

// Interface checks.
var (
	_ Display        = (*Dev)(nil)
	_ display.Drawer = (*Dev)(nil)
)
