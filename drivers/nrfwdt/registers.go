// Package nrfwdt constants for the nRF52 WDT register block.
package nrfwdt

const (
	// Written to RR[n] to service reload-request channel n.
	ReloadMagic uint32 = 0x6E524635

	// LFOscHz is the tick rate of CRV (LFCLK).
	LFOscHz = 32768

	// MinReloadTicks is the smallest CRV the hardware accepts.
	MinReloadTicks uint32 = 0xF

	// HardwareChannels is the number of RR registers in the block.
	HardwareChannels = 8

	// TimeoutResetDelay is the LFCLK cycles between the TIMEOUT event and
	// the chip reset.
	TimeoutResetDelay uint32 = 2

	// RUNSTATUS
	runStatusRunning = 1 << 0

	// CONFIG
	cfgSleepRun = 1 << 0
	cfgHaltRun  = 1 << 3

	// Register values after power-on or watchdog reset.
	resetCRV    uint32 = 0xFFFFFFFF
	resetRREN   uint8  = 0x01
	resetConfig uint32 = cfgSleepRun
)
