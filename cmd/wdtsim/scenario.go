//go:build !tinygo

package main

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"wdtgroom/drivers/nrfwdt"
	"wdtgroom/drivers/resetreas"
	"wdtgroom/services/config"
	"wdtgroom/services/indicator"
	"wdtgroom/services/watchdog"
	"wdtgroom/types"
	"wdtgroom/x/conv"
	"wdtgroom/x/timex"
)

// Stall stops the groomer of Handle from step From onwards. The stall
// survives resets, like a task stuck on a bug would.
type Stall struct {
	Handle int `toml:"handle"`
	From   int `toml:"from"`
}

// Scenario describes one simulated run.
type Scenario struct {
	Device   string               `toml:"device"`
	Watchdog types.WatchdogConfig `toml:"watchdog"`
	Steps    int                  `toml:"steps"`
	// StepMs is the simulated time between groom rounds. Zero uses the
	// config period.
	StepMs int     `toml:"step_ms"`
	Stalls []Stall `toml:"stalls"`
	// SoftResetAt re-enters init at that step with the watchdog still
	// counting. Zero disables it.
	SoftResetAt int `toml:"soft_reset_at"`
	// RecoverHandles is the count the soft-reset boot asks for. Zero means
	// the configured count; anything else exercises the mismatch halt.
	RecoverHandles int `toml:"recover_handles"`
}

// DefaultScenario is the "sim" device config run for 20 steps with no
// faults.
func DefaultScenario() Scenario {
	sc := Scenario{Device: "sim", Steps: 20}
	if c, ok := config.EmbeddedConfigLookup(sc.Device); ok {
		sc.Watchdog = c
	} else {
		sc.Watchdog = config.Default()
	}
	return sc
}

// LoadScenario decodes a TOML file over the default scenario, so omitted
// keys keep their defaults.
func LoadScenario(path string) (Scenario, error) {
	sc := DefaultScenario()
	if _, err := toml.DecodeFile(path, &sc); err != nil {
		return Scenario{}, fmt.Errorf("load scenario %s: %w", path, err)
	}
	return sc, nil
}

// Result summarises a run.
type Result struct {
	Steps      int
	Resets     int
	Recoveries int
	Halts      int
	Boots      []types.BootReport
}

func (sc Scenario) stalled(handle, step int) bool {
	for _, s := range sc.Stalls {
		if s.Handle == handle && step >= s.From {
			return true
		}
	}
	return false
}

// Simulate runs sc to completion. Each step grooms every handle that is
// not stalled and then advances the countdown by one step. A watchdog
// reset reboots into a fresh claim; a halted boot leaves nothing grooming
// until the watchdog fires.
func Simulate(sc Scenario, log func(string)) (Result, error) {
	if log == nil {
		log = func(string) {}
	}
	cfg, err := config.Normalize(sc.Watchdog)
	if err != nil {
		return Result{}, err
	}
	if sc.Steps <= 0 {
		return Result{}, fmt.Errorf("steps must be positive, got %d", sc.Steps)
	}
	stepMs := sc.StepMs
	if stepMs <= 0 {
		stepMs = cfg.PeriodMs
	}
	stepTicks := timex.LFTicks(time.Duration(stepMs) * time.Millisecond)

	sim := nrfwdt.NewSim()
	rr := resetreas.NewSim()
	reset := false
	sim.OnReset(func() {
		rr.Record(resetreas.Dog)
		reset = true
	})

	var (
		res      Result
		groomers []*watchdog.Groomer
		step     int
	)
	boot := func(handles int) {
		halted := false
		reg := &watchdog.Registry{
			Log: func(s string) { log(stamp(step) + s) },
			Halt: func(err error) {
				halted = true
				log(stamp(step) + "[wdtsim] halted: " + err.Error())
			},
		}
		c := cfg
		c.Handles = handles
		inds := make([]indicator.Indicator, handles)
		for i := range inds {
			inds[i] = &indicator.Recorder{}
		}
		var report types.BootReport
		groomers, report = watchdog.Boot(nil, reg, sim.Boot(), resetreas.New(rr), c, inds)
		if halted {
			res.Halts++
			groomers = nil
			return
		}
		res.Boots = append(res.Boots, report)
	}

	boot(cfg.Handles)
	for step = 0; step < sc.Steps; step++ {
		if sc.SoftResetAt > 0 && step == sc.SoftResetAt {
			log(stamp(step) + "[wdtsim] soft reset")
			handles := cfg.Handles
			if sc.RecoverHandles != 0 {
				handles = sc.RecoverHandles
			}
			boot(handles)
			if groomers != nil {
				res.Recoveries++
			}
		}

		if cfg.Groom {
			for _, g := range groomers {
				if sc.stalled(g.Index(), step) {
					continue
				}
				g.Groom()
			}
		}

		sim.Advance(stepTicks)
		if reset {
			reset = false
			res.Resets++
			log(stamp(step) + "[wdtsim] watchdog reset")
			boot(cfg.Handles)
		}
	}
	res.Steps = step
	return res, nil
}

func stamp(step int) string {
	return "[" + conv.I(step) + "] "
}
