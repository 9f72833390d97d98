//go:build nrf52840

package resetreas

import "device/nrf"

type hwRegs struct{}

func (hwRegs) Get() uint32       { return nrf.POWER.RESETREAS.Get() }
func (hwRegs) Clear(mask uint32) { nrf.POWER.RESETREAS.Set(mask) }

// Default is the on-chip register.
func Default() *Register { return New(hwRegs{}) }
