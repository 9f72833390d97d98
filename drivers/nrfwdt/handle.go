package nrfwdt

// Index tags a handle with its channel at the type level.
type Index interface {
	Hdl0 | Hdl1 | Hdl2 | Hdl3
	Channel() uint8
}

type (
	Hdl0 struct{}
	Hdl1 struct{}
	Hdl2 struct{}
	Hdl3 struct{}
)

func (Hdl0) Channel() uint8 { return 0 }
func (Hdl1) Channel() uint8 { return 1 }
func (Hdl2) Channel() uint8 { return 2 }
func (Hdl3) Channel() uint8 { return 3 }

// Handle services one reload-request channel. Handles are handed out by
// pointer and must not be copied or shared between tasks.
type Handle[I Index] struct {
	regs Regs
}

// Channel is the RR register index this handle drives.
func (h *Handle[I]) Channel() uint8 {
	var i I
	return i.Channel()
}

// Pet services the channel. Once every enabled channel has been serviced
// the hardware reloads the counter.
func (h *Handle[I]) Pet() { h.live().Reload(h.Channel()) }

// IsPet reports whether the channel has been serviced since the last
// counter reload.
func (h *Handle[I]) IsPet() bool {
	return h.live().RequestStatus()&(1<<h.Channel()) == 0
}

// Degrade erases the channel type. The typed handle is invalid afterwards.
func (h *Handle[I]) Degrade() *HandleN {
	regs := h.live()
	h.regs = nil
	return &HandleN{regs: regs, ch: h.Channel()}
}

func (h *Handle[I]) live() Regs {
	if h == nil || h.regs == nil {
		panic("nrfwdt: " + ErrConsumed.Error())
	}
	return h.regs
}

// HandleN is a handle whose channel is only known at run time, so handles
// for different channels can share one task type.
type HandleN struct {
	regs Regs
	ch   uint8
}

func (h *HandleN) Channel() uint8 { return h.ch }
func (h *HandleN) Pet()           { h.regs.Reload(h.ch) }
func (h *HandleN) IsPet() bool    { return h.regs.RequestStatus()&(1<<h.ch) == 0 }

// Handles holds one typed handle per enabled channel. Fields past Count
// are nil.
type Handles struct {
	H0 *Handle[Hdl0]
	H1 *Handle[Hdl1]
	H2 *Handle[Hdl2]
	H3 *Handle[Hdl3]

	count Count
}

func newHandles(regs Regs, c Count) Handles {
	hs := Handles{count: c}
	hs.H0 = &Handle[Hdl0]{regs: regs}
	if c >= Two {
		hs.H1 = &Handle[Hdl1]{regs: regs}
	}
	if c >= Three {
		hs.H2 = &Handle[Hdl2]{regs: regs}
	}
	if c >= Four {
		hs.H3 = &Handle[Hdl3]{regs: regs}
	}
	return hs
}

func (hs Handles) Count() Count { return hs.count }

// PetAll services every channel once, restarting the countdown at the full
// window.
func (hs Handles) PetAll() {
	if hs.H0 != nil {
		hs.H0.Pet()
	}
	if hs.H1 != nil {
		hs.H1.Pet()
	}
	if hs.H2 != nil {
		hs.H2.Pet()
	}
	if hs.H3 != nil {
		hs.H3.Pet()
	}
}

// Degrade erases every handle, in channel order.
func (hs Handles) Degrade() []*HandleN {
	out := make([]*HandleN, 0, hs.count)
	if hs.H0 != nil {
		out = append(out, hs.H0.Degrade())
	}
	if hs.H1 != nil {
		out = append(out, hs.H1.Degrade())
	}
	if hs.H2 != nil {
		out = append(out, hs.H2.Degrade())
	}
	if hs.H3 != nil {
		out = append(out, hs.H3.Degrade())
	}
	return out
}
