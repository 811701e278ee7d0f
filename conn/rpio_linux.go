//go:build linux

package conn

import (
	"fmt"
	"time"

	"github.com/stianeikeland/go-rpio/v4"
	"periph.io/x/conn/v3/gpio"
)

// RPIO is a transport using memory mapped Raspberry Pi GPIO and SPI0.
//
// Only one RPIO transport can be open at a time.
type RPIO struct {
	reset     rpio.Pin
	hasReset  bool
	dc        rpio.Pin
	cs        rpio.Pin
	busy      rpio.Pin
	batchSize int
}

// OpenRPIO maps the GPIO registers and starts SPI0.
func OpenRPIO(config *RPIOConfig) (*RPIO, error) {
	cfg := config.withDefaults()

	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("conn: rpio open: %w", err)
	}
	if err := rpio.SpiBegin(rpio.Spi0); err != nil {
		_ = rpio.Close()
		return nil, fmt.Errorf("conn: rpio SPI begin: %w", err)
	}
	rpio.SpiSpeed(cfg.SpeedHz)

	c := &RPIO{
		hasReset:  cfg.Reset >= 0,
		dc:        rpio.Pin(cfg.DC),
		cs:        rpio.Pin(cfg.CS),
		busy:      rpio.Pin(cfg.Busy),
		batchSize: cfg.BatchSize,
	}
	if c.hasReset {
		c.reset = rpio.Pin(cfg.Reset)
		c.reset.Mode(rpio.Output)
	}
	c.dc.Mode(rpio.Output)
	c.cs.Mode(rpio.Output)
	c.cs.Write(rpio.High)
	c.busy.Mode(rpio.Input)
	return c, nil
}

func (c *RPIO) String() string {
	return fmt.Sprintf("rpio SPI0 DC=%d CS=%d BUSY=%d", c.dc, c.cs, c.busy)
}

// Close stops SPI0 and unmaps the GPIO registers.
func (c *RPIO) Close() error {
	rpio.SpiEnd(rpio.Spi0)
	return rpio.Close()
}

// HasReset reports whether the RST pin is wired.
func (c *RPIO) HasReset() bool {
	return c.hasReset
}

// Reset drives the RST pin, it returns ErrNoReset when no pin is wired.
func (c *RPIO) Reset(level gpio.Level) error {
	if !c.hasReset {
		return ErrNoReset
	}
	if level == gpio.High {
		c.reset.Write(rpio.High)
	} else {
		c.reset.Write(rpio.Low)
	}
	return nil
}

// Command sends a command byte followed by its optional arguments.
func (c *RPIO) Command(cmnd byte, data ...byte) error {
	c.dc.Write(rpio.Low)
	c.cs.Write(rpio.Low)
	rpio.SpiTransmit(cmnd)
	c.cs.Write(rpio.High)
	return c.Data(data...)
}

// Data sends data bytes.
func (c *RPIO) Data(data ...byte) error {
	if len(data) == 0 {
		return nil
	}
	c.dc.Write(rpio.High)
	c.cs.Write(rpio.Low)
	err := writeChunked(func(b []byte) error {
		rpio.SpiTransmit(b...)
		return nil
	}, data, c.batchSize)
	c.cs.Write(rpio.High)
	return err
}

// WaitUntilReady polls BUSY until it is low. A timeout of zero or less waits forever.
func (c *RPIO) WaitUntilReady(timeout time.Duration) error {
	return pollBusy(func() bool { return c.busy.Read() == rpio.High }, timeout)
}

// Delay sleeps for d.
func (c *RPIO) Delay(d time.Duration) {
	time.Sleep(d)
}
