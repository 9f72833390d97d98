//go:build nrf52840

package nrfwdt

import (
	"device/nrf"
	"sync/atomic"
)

type hwRegs struct{}

func (hwRegs) Running() bool  { return nrf.WDT.RUNSTATUS.HasBits(runStatusRunning) }
func (hwRegs) TimedOut() bool { return nrf.WDT.EVENTS_TIMEOUT.Get() != 0 }

func (hwRegs) ReloadValue() uint32     { return nrf.WDT.CRV.Get() }
func (hwRegs) SetReloadValue(v uint32) { nrf.WDT.CRV.Set(v) }
func (hwRegs) ReloadEnable() uint8     { return uint8(nrf.WDT.RREN.Get()) }
func (hwRegs) SetReloadEnable(m uint8) { nrf.WDT.RREN.Set(uint32(m)) }
func (hwRegs) Config() uint32          { return nrf.WDT.CONFIG.Get() }
func (hwRegs) SetConfig(v uint32)      { nrf.WDT.CONFIG.Set(v) }
func (hwRegs) RequestStatus() uint8    { return uint8(nrf.WDT.REQSTATUS.Get()) }
func (hwRegs) Reload(ch uint8)         { nrf.WDT.RR[ch].Set(ReloadMagic) }
func (hwRegs) Start()                  { nrf.WDT.TASKS_START.Set(1) }

var taken uint32

// Take hands out the WDT peripheral. Only the first call per boot gets it;
// later calls return nil.
func Take() *Peripheral {
	if !atomic.CompareAndSwapUint32(&taken, 0, 1) {
		return nil
	}
	return NewPeripheral(hwRegs{})
}
