//go:build nrf52840 && pca10056

package main

import (
	"context"
	"machine"
	"runtime"

	"wdtgroom/bus"
	"wdtgroom/drivers/nrfwdt"
	"wdtgroom/drivers/resetreas"
	"wdtgroom/services/config"
	"wdtgroom/services/indicator"
	"wdtgroom/services/watchdog"
)

// Set with -ldflags "-X main.device=nrf52840dk-bad-dog" to stop grooming.
var device = "nrf52840dk"

// Set with -ldflags "-X main.expander=1" when the LEDs sit behind an
// MCP23017 at 0x20 on I2C0.
var expander = ""

const expanderAddr = 0x20

func main() {
	println("[init]")
	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, device)

	cfg, err := config.Lookup(ctx)
	if err != nil {
		println("[init] config:", err.Error(), "- using defaults")
		cfg = config.Default()
	}

	b := bus.NewBus(8)
	wdConn := b.NewConnection("watchdog")
	cfgConn := b.NewConnection("config")

	// The watchdog is claimed before anything slow: after a soft reset it
	// is already counting.
	groomers, report := watchdog.Boot(wdConn, &watchdog.Registry{}, nrfwdt.Take(), resetreas.Default(), cfg, leds())
	println("[init] watchdog", string(report.Outcome), "handles:", report.Handles)

	config.NewConfigService().Start(ctx, cfgConn)
	if err := watchdog.NewService(groomers, cfg).Start(ctx, wdConn); err != nil {
		println("[init] watchdog service:", err.Error())
	}
	println("[init] starting")
	printMem()

	select {}
}

// leds returns the four DK LEDs (active-low) or the first four expander
// outputs.
func leds() []indicator.Indicator {
	if expander != "" {
		inds, err := expanderLEDs()
		if err == nil {
			return inds
		}
		println("[init] expander:", err.Error(), "- using board LEDs")
	}
	pins := []machine.Pin{machine.LED1, machine.LED2, machine.LED3, machine.LED4}
	out := make([]indicator.Indicator, len(pins))
	for i, p := range pins {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.High()
		out[i] = indicator.ActiveLow(indicator.FromPin(p))
	}
	return out
}

func expanderLEDs() ([]indicator.Indicator, error) {
	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz}); err != nil {
		return nil, err
	}
	exp, err := indicator.NewExpander(i2c, expanderAddr)
	if err != nil {
		return nil, err
	}
	out := make([]indicator.Indicator, 4)
	for i := range out {
		if out[i], err = exp.Indicator(i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// printMem prints a compact snapshot of TinyGo runtime memory stats.
func printMem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	println(
		"[mem]",
		"alloc:", uint32(ms.Alloc),
		"heapSys:", uint32(ms.HeapSys),
		"mallocs:", uint32(ms.Mallocs),
	)
}
