package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"periph.io/x/host/v3"
	"tinygo.org/x/tinyfont"

	"github.com/BeatGlow/ssd1680"
	"github.com/BeatGlow/ssd1680/conn"
	"github.com/BeatGlow/ssd1680/draw"
	"github.com/BeatGlow/ssd1680/internal/config"
	"github.com/BeatGlow/ssd1680/internal/metrics"
	"github.com/BeatGlow/ssd1680/pixel"
)

var (
	ink    = color.Black
	accent = color.RGBA{R: 0xff, A: 0xff}
)

func main() {
	configFlag := flag.String("config", "", "YAML configuration file (created when missing)")
	panelFlag := flag.String("panel", "", "Panel type, mono or tricolor")
	backendFlag := flag.String("backend", "", "Transport backend, periph or rpio")
	rotateFlag := flag.String("rotate", "", "Display rotation")
	textFlag := flag.String("text", "", "Heading text")
	fontFlag := flag.String("font", "", "TrueType/OpenType font file for the heading (default: Go Regular)")
	imageFlag := flag.String("image", "", "PNG or JPEG image to dither onto the panel instead of the test card")
	intervalFlag := flag.Duration("interval", -1, "Redraw interval, zero draws once")
	metricsFlag := flag.String("metrics", "", "Listen address for Prometheus metrics")
	flag.Parse()

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			fatal(err)
		}
	}
	if *panelFlag != "" {
		cfg.Panel = *panelFlag
	}
	if *backendFlag != "" {
		cfg.Backend = *backendFlag
	}
	if *textFlag != "" {
		cfg.Text = *textFlag
	}
	if *intervalFlag >= 0 {
		cfg.Interval = *intervalFlag
	}
	if *metricsFlag != "" {
		cfg.Metrics = *metricsFlag
	}
	switch *rotateFlag {
	case "":
	case "no", "0":
		cfg.Rotation = 0
	case "90", "right", "cw":
		cfg.Rotation = 90
	case "180", "flip":
		cfg.Rotation = 180
	case "270", "left", "ccw":
		cfg.Rotation = 270
	default:
		fatal(fmt.Errorf("invalid rotation %q specified", *rotateFlag))
	}
	if err := cfg.Normalize(); err != nil {
		fatal(err)
	}
	fmt.Printf("using rotation: %s\n", cfg.PanelRotation())

	heading, err := headingFace(*fontFlag)
	if err != nil {
		fatal(err)
	}

	displayConfig := cfg.Display()
	if cfg.Metrics != "" {
		m := metrics.New()
		displayConfig.Observer = m.Observer()
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", m.Handler())
			if err := http.ListenAndServe(cfg.Metrics, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fatal(err)
			}
		}()
		fmt.Printf("serving metrics on http://%s/metrics\n", cfg.Metrics)
	}

	c, err := openConn(cfg)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using connection: %s\n", c)

	var output interface {
		ssd1680.Display
		fmt.Stringer
	}
	switch cfg.Panel {
	case config.PanelTriColor:
		output, err = ssd1680.NewTriColor(c, displayConfig)
	default:
		output, err = ssd1680.New(c, displayConfig)
	}
	if err != nil {
		_ = c.Close()
		fatal(err)
	}
	defer output.Close()
	fmt.Printf("using driver: %s\n", output)

	if *imageFlag != "" {
		if err = showImage(output, *imageFlag); err != nil {
			fatal(err)
		}
		return
	}

	if cfg.Interval <= 0 {
		if err = testCard(output, heading, cfg.Text, time.Now()); err != nil {
			fatal(err)
		}
		return
	}

	var (
		ticker = time.NewTicker(cfg.Interval)
		stop   = make(chan os.Signal, 1)
	)
	defer ticker.Stop()
	signal.Notify(stop, os.Interrupt)

	fmt.Println("hit control-c to stop...")
	for {
		if err = testCard(output, heading, cfg.Text, time.Now()); err != nil {
			fatal(err)
		}
		select {
		case <-ticker.C:
		case <-stop:
			return
		}
	}
}

func openConn(cfg *config.Config) (ssd1680.Conn, error) {
	switch cfg.Backend {
	case config.BackendRPIO:
		return conn.OpenRPIO(&conn.RPIOConfig{
			SpeedHz: cfg.RPIO.SpeedHz,
			Reset:   cfg.RPIO.Reset,
			DC:      cfg.RPIO.DC,
			CS:      cfg.RPIO.CS,
			Busy:    cfg.RPIO.Busy,
		})
	default:
		if _, err := host.Init(); err != nil {
			return nil, err
		}
		return ssd1680.OpenSPI(&ssd1680.SPIConfig{
			Port:  cfg.SPI.Port,
			Speed: cfg.SPI.Speed(),
			Reset: cfg.SPI.Reset,
			DC:    cfg.SPI.DC,
			Busy:  cfg.SPI.Busy,
			CS:    cfg.SPI.CS,
		})
	}
}

func headingFace(name string) (font.Face, error) {
	const (
		size = 18 // points
		dpi  = 72
	)
	if name == "" {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("parsing font data: %w", err)
		}
		return truetype.NewFace(f, &truetype.Options{Size: size, DPI: dpi, Hinting: font.HintingFull}), nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("loading font file: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font data: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: dpi, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("making font face: %w", err)
	}
	return face, nil
}

// testCard draws a border, a heading, an accent bar and a time stamp footer, then
// refreshes the panel.
func testCard(output ssd1680.Display, heading font.Face, text string, now time.Time) error {
	output.Clear()

	r := output.Bounds()
	draw.Rectangle(output, r, ink)
	draw.Rectangle(output, r.Inset(2), ink)

	top := image.Rect(r.Min.X+4, r.Min.Y+6, r.Max.X-4, r.Max.Y/2)
	draw.CenteredText(output, top, heading, ink, text)

	bar := image.Rect(r.Min.X+8, r.Max.Y/2+4, r.Max.X-8, r.Max.Y/2+10)
	if output.ColorModel() == pixel.TriColorModel {
		draw.Box(output, bar, accent)
	} else {
		draw.RoundedBox(output, bar, 3, ink)
	}

	footer := now.Format("2006-01-02 15:04")
	_, width := tinyfont.LineWidth(&tinyfont.TomThumb, footer)
	tinyfont.WriteLine(ssd1680.NewCanvas(output), &tinyfont.TomThumb,
		int16(r.Max.X-4)-int16(width), int16(r.Max.Y-6), footer, color.RGBA{A: 0xff})

	return output.Refresh()
}

func showImage(output ssd1680.Display, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	src, _, err := image.Decode(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}

	output.Clear()
	var (
		r   = output.Bounds()
		pos = src.Bounds().Min.Add(image.Pt(src.Bounds().Dx()-r.Dx(), src.Bounds().Dy()-r.Dy()).Div(2))
	)
	draw.Dither(output, r, src, pos)
	return output.Refresh()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
