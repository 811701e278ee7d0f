package ssd1680

import (
	"fmt"

	"periph.io/x/conn/v3/display"

	"github.com/BeatGlow/ssd1680/pixel"
)

// TriColorDev is a black, white and chromatic SSD1680 e-paper panel.
type TriColorDev struct {
	baseDisplay
	image *pixel.TriColorImage
}

// NewTriColor returns a tri-color panel driver. Nothing is sent to the controller until
// the first Flush.
func NewTriColor(c Conn, config *Config) (*TriColorDev, error) {
	d := new(TriColorDev)
	if err := d.init(c, config, func(g pixel.Geometry, r pixel.Rotation) frame {
		d.image = pixel.NewTriColorImage(g, r)
		return d.image
	}); err != nil {
		return nil, err
	}
	d.planes = d.image.Planes
	return d, nil
}

func (d *TriColorDev) String() string {
	g := d.ctrl.Geometry()
	return fmt.Sprintf("SSD1680 tri-color e-paper %dx%d", g.Width, g.Height)
}

// SetPixel sets a single pixel, points outside the bounds are ignored.
func (d *TriColorDev) SetPixel(x, y int, c pixel.TriColor) {
	d.image.SetPixel(x, y, c)
}

// Image returns the frame buffer.
func (d *TriColorDev) Image() *pixel.TriColorImage {
	return d.image
}

// Interface checks.
var (
	_ Display        = (*TriColorDev)(nil)
	_ display.Drawer = (*TriColorDev)(nil)
)
