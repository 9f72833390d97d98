package watchdog

import (
	"wdtgroom/services/indicator"
	"wdtgroom/types"
	"wdtgroom/x/timex"
)

// Handle is one reload-request channel. Satisfied by *nrfwdt.HandleN and
// the typed *nrfwdt.Handle[I].
type Handle interface {
	Pet()
	IsPet() bool
}

// CheckAndGroom services h if nothing has serviced it since the last
// reload and lights ind to show the groomer did the work. If h was already
// serviced, ind goes dark and h is left alone. Either way h ends the call
// serviced for this period. Indicator errors are dropped.
func CheckAndGroom(ind indicator.Indicator, h Handle) (alreadyPetted bool) {
	if !h.IsPet() {
		h.Pet()
		_ = ind.Set(true)
		return false
	}
	_ = ind.Set(false)
	return true
}

// Record is what a groomer remembers between periods. Only the latest
// check feeds the health judgement.
type Record struct {
	LastCheckWasPetted bool
	Checks             uint32
	SelfServiced       uint32
}

// Groomer owns one handle and its indicator. A Groomer must only be driven
// from one task.
type Groomer struct {
	index  int
	handle Handle
	ind    indicator.Indicator
	rec    Record
}

// NewGroomer binds handle h to its indicator. A nil ind is replaced by
// indicator.Discard.
func NewGroomer(index int, h Handle, ind indicator.Indicator) *Groomer {
	if ind == nil {
		ind = indicator.Discard
	}
	return &Groomer{index: index, handle: h, ind: ind}
}

func (g *Groomer) Index() int     { return g.index }
func (g *Groomer) Record() Record { return g.rec }

// Groom runs one period's check.
func (g *Groomer) Groom() types.HandleHealth {
	petted := CheckAndGroom(g.ind, g.handle)
	g.rec.LastCheckWasPetted = petted
	g.rec.Checks++
	if !petted {
		g.rec.SelfServiced++
	}
	return types.HandleHealth{
		Index:         g.index,
		AlreadyPetted: petted,
		Seq:           g.rec.Checks,
		TsMs:          timex.NowMs(),
	}
}
