package watchdog

import (
	"wdtgroom/bus"
	"wdtgroom/drivers/nrfwdt"
	"wdtgroom/drivers/resetreas"
	"wdtgroom/errcode"
	"wdtgroom/services/indicator"
	"wdtgroom/types"
)

// CheckResetReason reports whether the previous reset came from the
// watchdog and clears the flag so the next boot starts clean.
func CheckResetReason(r *resetreas.Register, log func(string)) bool {
	dog := r.WatchdogCaused()
	if dog {
		r.ClearWatchdog()
		log("[init] restarted by the watchdog")
	} else {
		log("[init] not restarted by the watchdog")
	}
	return dog
}

// Boot runs the watchdog part of init: claim, reset reason, boot report.
// It returns one groomer per handle, paired with indicators in order;
// missing indicators discard. A handle count outside 1..4 halts before the
// peripheral is touched.
func Boot(conn *bus.Connection, reg *Registry, p *nrfwdt.Peripheral, rr *resetreas.Register, cfg types.WatchdogConfig, inds []indicator.Indicator) ([]*Groomer, types.BootReport) {
	var claim Claim
	if count, err := nrfwdt.CountOf(cfg.Handles); err != nil {
		reg.log("[watchdog] cannot claim: " + string(errcode.Of(err)))
		claim = reg.halt(errcode.Wrap("watchdog.claim", err))
	} else {
		claim = reg.ClaimAndActivate(p, cfg.TimeoutTicks, count)
	}

	report := types.BootReport{
		Outcome:         claim.Outcome,
		ResetByWatchdog: CheckResetReason(rr, reg.log),
		TimeoutTicks:    cfg.TimeoutTicks,
	}
	if claim.Watchdog != nil {
		report.TimeoutTicks = claim.Watchdog.Timeout()
	}

	handles := claim.Handles.Degrade()
	report.Handles = len(handles)
	groomers := make([]*Groomer, len(handles))
	for i, h := range handles {
		var ind indicator.Indicator
		if i < len(inds) {
			ind = inds[i]
		}
		groomers[i] = NewGroomer(int(h.Channel()), h, ind)
	}

	if conn != nil {
		conn.Publish(conn.NewMessage(TopicBoot, report, true))
	}
	return groomers, report
}
