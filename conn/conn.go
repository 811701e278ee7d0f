// Package conn contains bus transports for SSD1680 e-paper controllers.
//
// Every transport drives the data/command (DC) select line, writes bytes over SPI, senses
// the BUSY line and optionally drives the RST line. The transports differ in the library
// used to reach the hardware:
//
//   - [Periph] uses periph.io SPI ports and GPIO pins, and waits for BUSY edges.
//   - [RPIO] uses direct Raspberry Pi register access and polls BUSY.
//   - [TinyGo] uses a TinyGo drivers.SPI bus and machine pins and polls BUSY.
package conn

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"
)

var debug bool

func init() {
	debug = os.Getenv("EPD_DEBUG") != ""
}

// Errors.
var (
	ErrBusyTimeout  = errors.New("conn: timeout waiting for busy line")
	ErrNoReset      = errors.New("conn: no reset line connected")
	ErrNotSupported = errors.New("conn: not supported on this platform")
)

// DefaultBatchSize is the largest single SPI write. Linux spidev defaults to 4096 bytes.
const DefaultBatchSize = 4096

const busyPollInterval = 5 * time.Millisecond

// PinError reports a failed GPIO level change.
type PinError struct {
	Pin string
	Err error
}

func (err *PinError) Error() string {
	return fmt.Sprintf("conn: %s pin: %v", err.Pin, err.Err)
}

func (err *PinError) Unwrap() error {
	return err.Err
}

// pollBusy blocks until busy reports false. A timeout of zero or less waits forever.
func pollBusy(busy func() bool, timeout time.Duration) error {
	start := time.Now()
	for busy() {
		if timeout > 0 && time.Since(start) >= timeout {
			return ErrBusyTimeout
		}
		time.Sleep(busyPollInterval)
	}
	if debug {
		log.Printf("conn: busy for %s", time.Since(start).Truncate(time.Millisecond))
	}
	return nil
}

func writeChunked(write func([]byte) error, data []byte, batchSize int) error {
	if batchSize <= 0 || len(data) <= batchSize {
		return write(data)
	}

	if debug {
		log.Printf("conn: write %d bytes of data in %d chunks", len(data), (len(data)+batchSize-1)/batchSize)
	}
	for len(data) > 0 {
		n := min(len(data), batchSize)
		if err := write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
