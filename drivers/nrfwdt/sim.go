package nrfwdt

import "sync"

// Sim is a host model of the WDT register block. It keeps its state across
// soft resets (a new Peripheral on the same Sim) and returns to power-on
// values when the countdown expires or on PowerCycle.
//
// Time only moves through Advance.
type Sim struct {
	mu sync.Mutex

	running bool
	timeout bool
	crv     uint32
	rren    uint8
	config  uint32
	req     uint8
	counter uint32
	delay   uint32

	resets  int
	onReset []func()
}

func NewSim() *Sim {
	s := &Sim{}
	s.powerOn()
	return s
}

func (s *Sim) powerOn() {
	s.running = false
	s.timeout = false
	s.crv = resetCRV
	s.rren = resetRREN
	s.config = resetConfig
	s.req = 0
	s.counter = 0
	s.delay = 0
}

// Boot returns a fresh claim on the block, as Take would after a reset.
func (s *Sim) Boot() *Peripheral { return NewPeripheral(s) }

// OnReset registers fn to run after each watchdog-triggered chip reset.
func (s *Sim) OnReset(fn func()) {
	s.mu.Lock()
	s.onReset = append(s.onReset, fn)
	s.mu.Unlock()
}

// PowerCycle drops all state, as removing power would.
func (s *Sim) PowerCycle() {
	s.mu.Lock()
	s.powerOn()
	s.mu.Unlock()
}

// Advance moves the LFCLK forward by ticks. It reports whether the
// watchdog reset the chip.
func (s *Sim) Advance(ticks uint32) bool {
	s.mu.Lock()
	fired := s.advance(ticks)
	hooks := s.onReset
	s.mu.Unlock()

	if fired {
		for _, fn := range hooks {
			fn()
		}
	}
	return fired
}

func (s *Sim) advance(ticks uint32) bool {
	if !s.running {
		return false
	}
	if !s.timeout {
		if ticks < s.counter {
			s.counter -= ticks
			return false
		}
		ticks -= s.counter
		s.counter = 0
		s.timeout = true
		s.delay = TimeoutResetDelay
	}
	if ticks < s.delay {
		s.delay -= ticks
		return false
	}
	s.resets++
	s.powerOn()
	return true
}

// Counter is the remaining countdown in ticks.
func (s *Sim) Counter() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counter
}

// Resets counts watchdog-triggered chip resets.
func (s *Sim) Resets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resets
}

// ---- Regs ----

func (s *Sim) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Sim) TimedOut() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeout
}

func (s *Sim) ReloadValue() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.crv
}

func (s *Sim) SetReloadValue(ticks uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		s.crv = ticks
	}
}

func (s *Sim) ReloadEnable() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rren
}

func (s *Sim) SetReloadEnable(mask uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		s.rren = mask
	}
}

func (s *Sim) Config() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

func (s *Sim) SetConfig(v uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		s.config = v & (cfgSleepRun | cfgHaltRun)
	}
}

func (s *Sim) RequestStatus() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.req
}

func (s *Sim) Reload(ch uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.timeout || ch >= HardwareChannels {
		return
	}
	bit := uint8(1) << ch
	if s.rren&bit == 0 {
		return
	}
	s.req &^= bit
	if s.req == 0 {
		s.counter = s.crv
		s.req = s.rren
	}
}

func (s *Sim) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.counter = s.crv
	s.req = s.rren
}
