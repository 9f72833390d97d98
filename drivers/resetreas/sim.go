package resetreas

import "sync"

// Sim is a host RESETREAS register.
type Sim struct {
	mu   sync.Mutex
	bits uint32
}

func NewSim() *Sim { return &Sim{} }

// Record sets reason bits, as the reset logic would.
func (s *Sim) Record(r Reason) {
	s.mu.Lock()
	s.bits |= uint32(r)
	s.mu.Unlock()
}

func (s *Sim) Get() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bits
}

func (s *Sim) Clear(mask uint32) {
	s.mu.Lock()
	s.bits &^= mask
	s.mu.Unlock()
}
