package conn

// RPIOConfig describes a Raspberry Pi wiring using BCM GPIO numbers.
type RPIOConfig struct {
	// SpeedHz is the SPI clock.
	SpeedHz int

	// BatchSize limits the size of a single SPI transaction.
	BatchSize int

	// Reset pin, use -1 when RST is not wired.
	Reset int

	// DC is the data/command select pin.
	DC int

	// CS is the chip select pin, driven in software.
	CS int

	// Busy is the BUSY status pin.
	Busy int
}

// DefaultRPIOConfig matches the Waveshare e-Paper HAT pinout.
var DefaultRPIOConfig = RPIOConfig{
	SpeedHz:   4_000_000,
	BatchSize: DefaultBatchSize,
	Reset:     17,
	DC:        25,
	CS:        8,
	Busy:      24,
}

func (config *RPIOConfig) withDefaults() RPIOConfig {
	if config == nil {
		return DefaultRPIOConfig
	}
	c := *config
	if c.SpeedHz <= 0 {
		c.SpeedHz = DefaultRPIOConfig.SpeedHz
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultRPIOConfig.BatchSize
	}
	return c
}
