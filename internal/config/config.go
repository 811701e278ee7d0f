// Package config holds the configuration shared by the command line tools.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/ssd1680"
	"github.com/BeatGlow/ssd1680/conn"
)

// Panel types.
const (
	PanelMono     = "mono"
	PanelTriColor = "tricolor"
)

// Backends.
const (
	BackendPeriph = "periph"
	BackendRPIO   = "rpio"
)

// SPIConfig are the periph.io port and pin names.
type SPIConfig struct {
	Port    string `yaml:"port"`
	SpeedHz int64  `yaml:"speed_hz"`
	Reset   string `yaml:"reset"`
	DC      string `yaml:"dc"`
	Busy    string `yaml:"busy"`
	CS      string `yaml:"cs"`
}

// RPIOConfig are the BCM pin numbers used by the rpio backend.
type RPIOConfig struct {
	SpeedHz int `yaml:"speed_hz"`
	Reset   int `yaml:"reset"`
	DC      int `yaml:"dc"`
	CS      int `yaml:"cs"`
	Busy    int `yaml:"busy"`
}

// Config is the tool configuration.
type Config struct {
	// Panel is either "mono" or "tricolor".
	Panel string `yaml:"panel"`

	// Width and Height are the physical panel size.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Rotation in degrees clock wise, one of 0, 90, 180 or 270.
	Rotation int `yaml:"rotation"`

	// Backend selects the transport, "periph" or "rpio".
	Backend string `yaml:"backend"`

	SPI  SPIConfig  `yaml:"spi"`
	RPIO RPIOConfig `yaml:"rpio"`

	// BusyTimeout bounds every busy wait.
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// SleepDelay is waited after entering deep sleep.
	SleepDelay time.Duration `yaml:"sleep_delay"`

	// Text is printed on the test card.
	Text string `yaml:"text"`

	// Interval between refreshes, zero draws once.
	Interval time.Duration `yaml:"interval"`

	// Metrics is the listen address for the Prometheus endpoint, empty disables it.
	Metrics string `yaml:"metrics"`
}

// Default returns the default configuration for a 2.13" panel on a Waveshare HAT.
func Default() *Config {
	return &Config{
		Panel:   PanelMono,
		Width:   ssd1680.DefaultWidth,
		Height:  ssd1680.DefaultHeight,
		Backend: BackendPeriph,
		SPI: SPIConfig{
			SpeedHz: int64(conn.DefaultSpeed / physic.Hertz),
			Reset:   ssd1680.DefaultSPIConfig.Reset,
			DC:      ssd1680.DefaultSPIConfig.DC,
			Busy:    ssd1680.DefaultSPIConfig.Busy,
		},
		RPIO: RPIOConfig{
			SpeedHz: conn.DefaultRPIOConfig.SpeedHz,
			Reset:   conn.DefaultRPIOConfig.Reset,
			DC:      conn.DefaultRPIOConfig.DC,
			CS:      conn.DefaultRPIOConfig.CS,
			Busy:    conn.DefaultRPIOConfig.Busy,
		},
		BusyTimeout: ssd1680.DefaultBusyTimeout,
		Text:        "SSD1680",
	}
}

// Normalize fills in zero values and validates the rest.
func (c *Config) Normalize() error {
	def := Default()
	switch c.Panel {
	case PanelMono, PanelTriColor:
	case "":
		c.Panel = def.Panel
	default:
		return fmt.Errorf("config: unknown panel %q", c.Panel)
	}
	switch c.Backend {
	case BackendPeriph, BackendRPIO:
	case "":
		c.Backend = def.Backend
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.Width == 0 {
		c.Width = def.Width
	}
	if c.Height == 0 {
		c.Height = def.Height
	}
	if c.Rotation%90 != 0 {
		return fmt.Errorf("config: rotation %d is not a multiple of 90", c.Rotation)
	}
	c.Rotation = ((c.Rotation % 360) + 360) % 360
	if c.SPI.SpeedHz <= 0 {
		c.SPI.SpeedHz = def.SPI.SpeedHz
	}
	if c.SPI.DC == "" {
		c.SPI.DC = def.SPI.DC
	}
	if c.SPI.Busy == "" {
		c.SPI.Busy = def.SPI.Busy
	}
	if c.RPIO.SpeedHz <= 0 {
		c.RPIO.SpeedHz = def.RPIO.SpeedHz
	}
	if c.BusyTimeout == 0 {
		c.BusyTimeout = def.BusyTimeout
	}
	if c.Interval < 0 {
		c.Interval = 0
	}
	return nil
}

// PanelRotation converts the configured degrees.
func (c *Config) PanelRotation() ssd1680.Rotation {
	return ssd1680.Rotation(c.Rotation / 90 % 4)
}

// Speed is the periph.io SPI clock.
func (c *SPIConfig) Speed() physic.Frequency {
	return physic.Frequency(c.SpeedHz) * physic.Hertz
}

// Display is the driver configuration.
func (c *Config) Display() *ssd1680.Config {
	return &ssd1680.Config{
		Width:       c.Width,
		Height:      c.Height,
		Rotation:    c.PanelRotation(),
		BusyTimeout: c.BusyTimeout,
		SleepDelay:  c.SleepDelay,
	}
}

// Load loads configuration from the given YAML path. A missing file yields the defaults,
// which are written to path.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			return cfg, Save(path, cfg)
		}
		return nil, err
	}

	cfg := Default()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err = cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path atomically, via a temporary file.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	if cfg == nil {
		return errors.New("config: config is nil")
	}
	if err := cfg.Normalize(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".epd-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
