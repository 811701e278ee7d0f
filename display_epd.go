package ssd1680

import (
	"image"

	"github.com/BeatGlow/ssd1680/draw"
	"github.com/BeatGlow/ssd1680/pixel"
)

type frame interface {
	pixel.Image
	SetRotation(pixel.Rotation)
}

type baseDisplay struct {
	frame
	c      Conn
	ctrl   *Controller
	planes func() [][]byte
	halted bool
}

func (d *baseDisplay) init(c Conn, config *Config, newFrame func(pixel.Geometry, pixel.Rotation) frame) error {
	cfg, err := config.withDefaults()
	if err != nil {
		return err
	}
	if d.ctrl, err = NewController(c, &cfg); err != nil {
		return err
	}
	d.c = c
	d.frame = newFrame(cfg.geometry(), cfg.Rotation)
	return nil
}

// Controller returns the protocol controller, for callers sequencing phases themselves.
func (d *baseDisplay) Controller() *Controller {
	return d.ctrl
}

func (d *baseDisplay) SetRotation(rotation Rotation) error {
	d.frame.SetRotation(rotation)
	return nil
}

// FlushDisplay wakes the controller and transfers the frame buffer to RAM. The panel
// does not change until FlushUpdate.
func (d *baseDisplay) FlushDisplay() (err error) {
	d.halted = false
	if err = d.ctrl.PowerUp(); err != nil {
		return
	}
	if err = d.ctrl.SetAddressWindow(1, 0); err != nil {
		return
	}
	return d.ctrl.WriteFrame(d.planes()...)
}

// FlushUpdate refreshes the panel from RAM and puts the controller to sleep.
func (d *baseDisplay) FlushUpdate() error {
	if err := d.ctrl.Activate(); err != nil {
		return err
	}
	return d.Halt()
}

// Flush transfers the frame buffer and refreshes the panel.
func (d *baseDisplay) Flush() error {
	if err := d.FlushDisplay(); err != nil {
		return err
	}
	return d.FlushUpdate()
}

// Refresh redraws the display, it is the same as Flush.
func (d *baseDisplay) Refresh() error {
	return d.Flush()
}

// Draw draws src onto the frame buffer and refreshes the panel.
func (d *baseDisplay) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(d.frame, r, src, sp, draw.Src)
	return d.Refresh()
}

// Halt puts the controller in deep sleep.
func (d *baseDisplay) Halt() error {
	if err := d.ctrl.PowerDown(); err != nil {
		return err
	}
	d.halted = true
	return nil
}

func (d *baseDisplay) Close() error {
	if !d.halted {
		if err := d.Halt(); err != nil {
			_ = d.c.Close()
			return err
		}
	}
	return d.c.Close()
}
