// Package resetreas reads and clears the nRF52 POWER.RESETREAS register.
//
// Bits are sticky across resets and cleared by writing 1.
package resetreas

// Reason is a RESETREAS bitmask.
type Reason uint32

const (
	Pin    Reason = 1 << 0
	Dog    Reason = 1 << 1
	SReq   Reason = 1 << 2
	Lockup Reason = 1 << 3
	Off    Reason = 1 << 16
	LPComp Reason = 1 << 17
	DIF    Reason = 1 << 18
	NFC    Reason = 1 << 19
	VBUS   Reason = 1 << 20
)

var names = [...]struct {
	r    Reason
	name string
}{
	{Pin, "pin"},
	{Dog, "dog"},
	{SReq, "sreq"},
	{Lockup, "lockup"},
	{Off, "off"},
	{LPComp, "lpcomp"},
	{DIF, "dif"},
	{NFC, "nfc"},
	{VBUS, "vbus"},
}

// String joins the set reason names with '|'. No bits means power-on.
func (r Reason) String() string {
	if r == 0 {
		return "power_on"
	}
	s := ""
	for _, n := range names {
		if r&n.r == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += n.name
	}
	if s == "" {
		return "unknown"
	}
	return s
}

// Regs is the RESETREAS register.
type Regs interface {
	Get() uint32
	// Clear writes mask; set bits are cleared.
	Clear(mask uint32)
}

type Register struct {
	regs Regs
}

func New(regs Regs) *Register { return &Register{regs: regs} }

func (r *Register) Reasons() Reason { return Reason(r.regs.Get()) }

// WatchdogCaused reports whether the DOG bit is set.
func (r *Register) WatchdogCaused() bool { return r.Reasons()&Dog != 0 }

// ClearWatchdog clears the DOG bit only.
func (r *Register) ClearWatchdog() { r.regs.Clear(uint32(Dog)) }

// ClearAll clears every recorded reason.
func (r *Register) ClearAll() { r.regs.Clear(r.regs.Get()) }
