package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/ssd1680"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "epd.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Panel != PanelMono || cfg.Width != 250 || cfg.Height != 122 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if _, err = os.Stat(path); err != nil {
		t.Fatalf("expected the default config to be written: %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *again != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, again)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epd.yaml")
	data := []byte(`
panel: tricolor
width: 96
height: 64
rotation: -90
backend: rpio
spi:
  port: SPI0.0
  reset: ""
busy_timeout: 3s
interval: 1m
metrics: ":9100"
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Panel != PanelTriColor {
		t.Errorf("expected panel %q, got %q", PanelTriColor, cfg.Panel)
	}
	if cfg.Rotation != 270 || cfg.PanelRotation() != ssd1680.Rotate270 {
		t.Errorf("expected rotation 270, got %d", cfg.Rotation)
	}
	if cfg.Backend != BackendRPIO {
		t.Errorf("expected backend %q, got %q", BackendRPIO, cfg.Backend)
	}
	if cfg.SPI.Port != "SPI0.0" || cfg.SPI.Reset != "" || cfg.SPI.DC != "GPIO25" {
		t.Errorf("unexpected SPI config %+v", cfg.SPI)
	}
	if cfg.BusyTimeout != 3*time.Second || cfg.Interval != time.Minute {
		t.Errorf("unexpected durations %s and %s", cfg.BusyTimeout, cfg.Interval)
	}
	if v := cfg.SPI.Speed(); v != 4*physic.MegaHertz {
		t.Errorf("expected 4MHz, got %s", v)
	}

	display := cfg.Display()
	if display.Width != 96 || display.Height != 64 || display.Rotation != ssd1680.Rotate270 {
		t.Errorf("unexpected display config %+v", display)
	}
}

func TestNormalizeRejects(t *testing.T) {
	for _, cfg := range []*Config{
		{Panel: "grayscale"},
		{Backend: "usb"},
		{Rotation: 45},
	} {
		if err := cfg.Normalize(); err == nil {
			t.Errorf("expected %+v to be rejected", cfg)
		}
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epd.yaml")
	if err := os.WriteFile(path, []byte("panel: [nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a YAML error")
	}
	if _, err := Load(""); err == nil {
		t.Error("expected an error for an empty path")
	}
}
