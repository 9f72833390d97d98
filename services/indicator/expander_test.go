package indicator

import (
	"errors"
	"testing"

	"wdtgroom/errcode"
)

const (
	expAddr = 0x20
	regGPIO = 0x12
	regDir  = 0x00
)

var errBus = errors.New("i2c nack")

// hostI2C models an MCP23017 register file with sequential addressing.
type hostI2C struct {
	regs [0x16]byte
	fail bool
	txs  int
}

func newHostI2C() *hostI2C {
	h := &hostI2C{}
	h.regs[regDir], h.regs[regDir+1] = 0xFF, 0xFF // power-on: all inputs
	return h
}

func (h *hostI2C) Tx(addr uint16, w, r []byte) error {
	h.txs++
	if h.fail || addr != expAddr {
		return errBus
	}
	reg := int(w[0])
	if len(r) > 0 {
		for i := range r {
			r[i] = h.regs[reg+i]
		}
		return nil
	}
	for i, b := range w[1:] {
		h.regs[reg+i] = b
	}
	return nil
}

func TestExpanderIndicator(t *testing.T) {
	bus := newHostI2C()
	exp, err := NewExpander(bus, expAddr)
	if err != nil {
		t.Fatalf("NewExpander: %v", err)
	}
	ind, err := exp.Indicator(9)
	if err != nil {
		t.Fatalf("Indicator: %v", err)
	}
	if bus.regs[regDir+1]&(1<<1) != 0 {
		t.Fatal("pin 9 not configured as output")
	}

	if err := ind.Set(true); err != nil {
		t.Fatal(err)
	}
	if bus.regs[regGPIO+1] != 1<<1 {
		t.Fatalf("GPIOB = %#08b, want pin 1 high", bus.regs[regGPIO+1])
	}
	if err := ActiveLow(ind).Set(true); err != nil {
		t.Fatal(err)
	}
	if bus.regs[regGPIO+1] != 0 {
		t.Fatalf("GPIOB = %#08b, want low", bus.regs[regGPIO+1])
	}
}

func TestExpanderFaults(t *testing.T) {
	bus := newHostI2C()
	bus.fail = true
	if _, err := NewExpander(bus, expAddr); errcode.Of(err) != errcode.IndicatorFault {
		t.Fatalf("probe err = %v", err)
	}

	bus.fail = false
	exp, err := NewExpander(bus, expAddr)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := exp.Indicator(16); err != errcode.UnknownPin {
		t.Fatalf("err = %v, want unknown_pin", err)
	}
	ind, err := exp.Indicator(0)
	if err != nil {
		t.Fatal(err)
	}

	bus.fail = true
	if err := ind.Set(true); !errors.Is(err, errBus) {
		t.Fatalf("Set err = %v, want bus error", err)
	}
}
