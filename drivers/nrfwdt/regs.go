package nrfwdt

// Regs is the WDT register block. The nrf52840 build maps it onto MMIO;
// Sim models it for host builds and tests.
//
// CRV, RREN and CONFIG are write-locked once the counter is running.
type Regs interface {
	Running() bool
	TimedOut() bool

	ReloadValue() uint32
	SetReloadValue(ticks uint32)

	ReloadEnable() uint8
	SetReloadEnable(mask uint8)

	Config() uint32
	SetConfig(v uint32)

	// RequestStatus has bit n set while channel n still owes a reload
	// in the current period.
	RequestStatus() uint8

	// Reload writes ReloadMagic to RR[ch].
	Reload(ch uint8)

	// Start triggers TASKS_START.
	Start()
}
