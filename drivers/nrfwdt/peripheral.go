package nrfwdt

import "errors"

var (
	ErrAlreadyActive = errors.New("watchdog already active")
	ErrNotRunning    = errors.New("watchdog not running")
	ErrCountMismatch = errors.New("handle count does not match running watchdog")
	ErrConsumed      = errors.New("watchdog resource already consumed")
	ErrInvalidCount  = errors.New("invalid handle count")
)

// State is the lifecycle of the peripheral as seen from its registers.
type State uint8

const (
	Unconfigured State = iota
	Activated
	ResetPending
)

func (s State) String() string {
	switch s {
	case Unconfigured:
		return "unconfigured"
	case Activated:
		return "activated"
	case ResetPending:
		return "reset_pending"
	}
	return "unknown"
}

func stateOf(r Regs) State {
	switch {
	case !r.Running():
		return Unconfigured
	case r.TimedOut():
		return ResetPending
	}
	return Activated
}

// Peripheral is the exclusive claim on the WDT block for one boot. It is
// consumed by a successful TryNew or TryRecover; a failed attempt leaves it
// usable so the caller can take the other path.
type Peripheral struct {
	regs     Regs
	consumed bool
}

// NewPeripheral wraps a register block. On target use Take instead.
func NewPeripheral(regs Regs) *Peripheral {
	return &Peripheral{regs: regs}
}

// State reads the peripheral lifecycle. It stays readable after the
// peripheral has been consumed.
func (p *Peripheral) State() State { return stateOf(p.regs) }

// Consumed reports whether ownership has moved to a Watchdog or Parts.
func (p *Peripheral) Consumed() bool { return p.consumed }

func (p *Peripheral) claim() (Regs, error) {
	if p == nil || p.consumed {
		return nil, ErrConsumed
	}
	p.consumed = true
	return p.regs, nil
}
