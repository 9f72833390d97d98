// Package watchdog claims the hardware watchdog at boot and keeps it fed
// from one groomer task per reload-request channel.
package watchdog

import (
	"errors"

	"wdtgroom/drivers/nrfwdt"
	"wdtgroom/errcode"
	"wdtgroom/types"
	"wdtgroom/x/conv"
)

// Registry runs the activate-or-recover protocol. The zero value logs with
// println and halts by panicking.
type Registry struct {
	// Log receives diagnostic lines.
	Log func(string)
	// Halt must not return on target. If it does (tests), ClaimAndActivate
	// returns a Claim without handles.
	Halt func(error)
	// Behaviour applies to fresh activation only; a recovered watchdog
	// keeps what it was started with.
	Behaviour nrfwdt.Behaviour
}

// Claim is the result of ClaimAndActivate.
type Claim struct {
	Outcome  types.Outcome
	Watchdog *nrfwdt.Active
	Handles  nrfwdt.Handles
}

// ClaimAndActivate takes the watchdog for this boot. A stopped peripheral
// is configured with timeoutTicks and started with count channels. A
// peripheral still running from before a soft reset is recovered with the
// same count and every handle is petted once so the rest of init starts
// with a full window. Anything else halts.
func (r *Registry) ClaimAndActivate(p *nrfwdt.Peripheral, timeoutTicks uint32, count nrfwdt.Count) Claim {
	w, err := nrfwdt.TryNew(p)
	if err == nil {
		w.SetLFOscTicks(timeoutTicks)
		w.SetBehaviour(r.behaviour())
		parts, err := w.Activate(count)
		if err != nil {
			r.log("[watchdog] activation failed: " + string(errcode.Of(err)))
			return r.halt(errcode.Wrap("watchdog.activate", err))
		}
		r.log("[watchdog] activated " + conv.I(count.Int()) + " handles, timeout " + conv.U(uint64(parts.Watchdog.Timeout())) + " ticks")
		return Claim{Outcome: types.OutcomeFresh, Watchdog: parts.Watchdog, Handles: parts.Handles}
	}
	if !errors.Is(err, nrfwdt.ErrAlreadyActive) {
		r.log("[watchdog] cannot claim: " + string(errcode.Of(err)))
		return r.halt(errcode.Wrap("watchdog.claim", err))
	}

	parts, err := nrfwdt.TryRecover(p, count)
	if err != nil {
		r.log("[watchdog] already active, cannot recover: " + string(errcode.Of(err)))
		return r.halt(&errcode.E{C: errcode.RecoveryFailed, Op: "watchdog.recover", Msg: string(errcode.Of(err)), Err: err})
	}
	parts.Handles.PetAll()
	r.log("[watchdog] already active, recovered " + conv.I(count.Int()) + " handles")
	return Claim{Outcome: types.OutcomeRecovered, Watchdog: parts.Watchdog, Handles: parts.Handles}
}

func (r *Registry) behaviour() nrfwdt.Behaviour {
	if r.Behaviour == 0 {
		return nrfwdt.DefaultBehaviour
	}
	return r.Behaviour
}

func (r *Registry) log(s string) {
	if r.Log != nil {
		r.Log(s)
		return
	}
	println(s)
}

func (r *Registry) halt(err error) Claim {
	if r.Halt != nil {
		r.Halt(err)
	} else {
		panic(err.Error())
	}
	return Claim{Outcome: types.OutcomeHalted}
}
