package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"periph.io/x/host/v3"

	"github.com/BeatGlow/ssd1680"
)

func main() {
	portFlag := flag.String("port", "", "SPI port (default: first available)")
	resetFlag := flag.String("reset", ssd1680.DefaultSPIConfig.Reset, "Reset GPIO pin, empty when not wired")
	dcFlag := flag.String("dc", ssd1680.DefaultSPIConfig.DC, "Data/Command GPIO pin (DC)")
	busyFlag := flag.String("busy", ssd1680.DefaultSPIConfig.Busy, "Busy GPIO pin")
	csFlag := flag.String("cs", "", "Software chip select GPIO pin")
	timeoutFlag := flag.Duration("timeout", ssd1680.DefaultBusyTimeout, "Busy wait timeout")
	configureFlag := flag.Bool("configure", false, "Also load the panel configuration")
	flag.Parse()

	if _, err := host.Init(); err != nil {
		log.Fatalln("host init failed:", err)
	}

	c, err := ssd1680.OpenSPI(&ssd1680.SPIConfig{
		Port:  *portFlag,
		Reset: *resetFlag,
		DC:    *dcFlag,
		Busy:  *busyFlag,
		CS:    *csFlag,
	})
	if err != nil {
		log.Fatalln("open failed:", err)
	}
	fmt.Println("connected using", c)

	ctrl, err := ssd1680.NewController(c, &ssd1680.Config{
		BusyTimeout: *timeoutFlag,
		Observer: func(phase ssd1680.State, took time.Duration, err error) {
			if err != nil {
				fmt.Printf("%-16s failed after %s: %v\n", phase, took, err)
				return
			}
			fmt.Printf("%-16s %s\n", phase, took)
		},
	})
	if err != nil {
		log.Fatalln("controller failed:", err)
	}

	steps := []func() error{ctrl.HardwareReset, ctrl.SoftwareReset}
	if *configureFlag {
		steps = append(steps, ctrl.Configure)
	}
	steps = append(steps, ctrl.PowerDown)
	for _, step := range steps {
		if err = step(); err != nil {
			_ = c.Close()
			log.Fatalln("probe failed:", err)
		}
	}

	if err = c.Close(); err != nil {
		log.Fatalln("close failed:", err)
	}
}
