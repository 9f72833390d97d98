// Package nrfwdt drives the nRF52 watchdog timer as a set of independent
// reload-request channels.
//
// Ownership moves one way: Peripheral -> Watchdog (configurable) ->
// Parts (running watchdog plus one handle per channel). A peripheral left
// running by a soft reset skips configuration and is reclaimed with
// TryRecover.
package nrfwdt

import "wdtgroom/x/mathx"

// Behaviour selects whether the counter runs while the CPU sleeps or is
// halted by a debugger.
type Behaviour uint8

const (
	RunWhileSleeping Behaviour = 1 << iota
	RunWhileHalted

	DefaultBehaviour = RunWhileSleeping
)

func (b Behaviour) config() uint32 {
	var v uint32
	if b&RunWhileSleeping != 0 {
		v |= cfgSleepRun
	}
	if b&RunWhileHalted != 0 {
		v |= cfgHaltRun
	}
	return v
}

func behaviourOf(cfg uint32) Behaviour {
	var b Behaviour
	if cfg&cfgSleepRun != 0 {
		b |= RunWhileSleeping
	}
	if cfg&cfgHaltRun != 0 {
		b |= RunWhileHalted
	}
	return b
}

// Watchdog is a stopped WDT that can still be configured.
type Watchdog struct {
	regs Regs
}

// TryNew claims a stopped peripheral. If the WDT is already running it
// returns ErrAlreadyActive and p is left for TryRecover.
func TryNew(p *Peripheral) (*Watchdog, error) {
	if p == nil || p.consumed {
		return nil, ErrConsumed
	}
	if p.regs.Running() {
		return nil, ErrAlreadyActive
	}
	regs, err := p.claim()
	if err != nil {
		return nil, err
	}
	return &Watchdog{regs: regs}, nil
}

// SetLFOscTicks sets the countdown in 32.768 kHz ticks. Values below
// MinReloadTicks are raised to it.
func (w *Watchdog) SetLFOscTicks(ticks uint32) {
	w.mustLive().SetReloadValue(mathx.Max(ticks, MinReloadTicks))
}

// LFOscTicks returns the configured countdown.
func (w *Watchdog) LFOscTicks() uint32 { return w.mustLive().ReloadValue() }

func (w *Watchdog) SetBehaviour(b Behaviour) { w.mustLive().SetConfig(b.config()) }

func (w *Watchdog) Behaviour() Behaviour { return behaviourOf(w.mustLive().Config()) }

// Activate enables c channels and starts the counter. The Watchdog is
// consumed; configuration is fixed until the next chip reset.
func (w *Watchdog) Activate(c Count) (Parts, error) {
	if !c.Valid() {
		return Parts{}, ErrInvalidCount
	}
	if w == nil || w.regs == nil {
		return Parts{}, ErrConsumed
	}
	regs := w.regs
	w.regs = nil

	regs.SetReloadEnable(c.Mask())
	regs.Start()
	return newParts(regs, c), nil
}

func (w *Watchdog) mustLive() Regs {
	if w == nil || w.regs == nil {
		panic("nrfwdt: " + ErrConsumed.Error())
	}
	return w.regs
}

// TryRecover reclaims a WDT that is already running, for example after a
// soft reset re-entered main. The channel count is fixed in RREN, so c
// must match the count used at activation. CRV and CONFIG are left alone.
func TryRecover(p *Peripheral, c Count) (Parts, error) {
	if !c.Valid() {
		return Parts{}, ErrInvalidCount
	}
	if p == nil || p.consumed {
		return Parts{}, ErrConsumed
	}
	if !p.regs.Running() {
		return Parts{}, ErrNotRunning
	}
	if p.regs.ReloadEnable() != c.Mask() {
		return Parts{}, ErrCountMismatch
	}
	regs, err := p.claim()
	if err != nil {
		return Parts{}, err
	}
	return newParts(regs, c), nil
}

// Active is the running half of Parts. It can only be inspected.
type Active struct {
	regs  Regs
	count Count
}

func (a *Active) Count() Count         { return a.count }
func (a *Active) Timeout() uint32      { return a.regs.ReloadValue() }
func (a *Active) Behaviour() Behaviour { return behaviourOf(a.regs.Config()) }
func (a *Active) State() State         { return stateOf(a.regs) }
func (a *Active) Outstanding() uint8   { return a.regs.RequestStatus() & a.count.Mask() }

// Parts is what activation or recovery yields.
type Parts struct {
	Watchdog *Active
	Handles  Handles
}

func newParts(regs Regs, c Count) Parts {
	return Parts{
		Watchdog: &Active{regs: regs, count: c},
		Handles:  newHandles(regs, c),
	}
}
