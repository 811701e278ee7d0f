//go:build !linux

package conn

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// RPIO is only available on Linux.
type RPIO struct{}

func OpenRPIO(_ *RPIOConfig) (*RPIO, error) {
	return nil, ErrNotSupported
}

func (*RPIO) String() string                       { return "rpio (not supported)" }
func (*RPIO) Close() error                         { return ErrNotSupported }
func (*RPIO) HasReset() bool                       { return false }
func (*RPIO) Reset(gpio.Level) error               { return ErrNotSupported }
func (*RPIO) Command(byte, ...byte) error          { return ErrNotSupported }
func (*RPIO) Data(...byte) error                   { return ErrNotSupported }
func (*RPIO) WaitUntilReady(_ time.Duration) error { return ErrNotSupported }
func (*RPIO) Delay(d time.Duration)                { time.Sleep(d) }
