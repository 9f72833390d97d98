// Package indicator provides the binary health outputs driven by the
// watchdog groomers. Drive errors are reported to the caller, which is free
// to ignore them; nothing here retries.
package indicator

import "sync"

// Indicator is a binary output. on=true lights it.
type Indicator interface {
	Set(on bool) error
}

// Pin is the subset of machine.Pin an indicator needs.
type Pin interface {
	Set(level bool)
}

type pinIndicator struct{ p Pin }

// FromPin drives p high for on.
func FromPin(p Pin) Indicator { return pinIndicator{p: p} }

func (pi pinIndicator) Set(on bool) error {
	pi.p.Set(on)
	return nil
}

type activeLow struct{ ind Indicator }

// ActiveLow inverts ind, for LEDs wired to the supply rail.
func ActiveLow(ind Indicator) Indicator { return activeLow{ind: ind} }

func (a activeLow) Set(on bool) error { return a.ind.Set(!on) }

type discard struct{}

func (discard) Set(bool) error { return nil }

// Discard accepts and drops every state.
var Discard Indicator = discard{}

// Recorder keeps the last state written. Used by host builds and tests.
type Recorder struct {
	mu   sync.Mutex
	on   bool
	sets int
	err  error
}

func (r *Recorder) Set(on bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets++
	if r.err != nil {
		return r.err
	}
	r.on = on
	return nil
}

// FailWith makes later Set calls return err without changing state.
// A nil err restores normal behaviour.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
}

func (r *Recorder) On() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.on
}

// Sets counts Set calls, failed ones included.
func (r *Recorder) Sets() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sets
}
