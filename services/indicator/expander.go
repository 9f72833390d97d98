package indicator

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/mcp23017"

	"wdtgroom/errcode"
)

// Expander drives indicators through an MCP23017 I²C port expander, for
// boards whose status LEDs are not on MCU GPIOs.
type Expander struct {
	dev *mcp23017.Device
}

// NewExpander probes the MCP23017 at addr (0x20..0x27).
func NewExpander(bus drivers.I2C, addr uint8) (*Expander, error) {
	dev, err := mcp23017.NewI2C(bus, addr)
	if err != nil {
		return nil, &errcode.E{C: errcode.IndicatorFault, Op: "expander.probe", Err: err}
	}
	return &Expander{dev: dev}, nil
}

// Indicator configures pin (0..15) as an output and returns it.
func (e *Expander) Indicator(pin int) (Indicator, error) {
	if pin < 0 || pin >= mcp23017.PinCount {
		return nil, errcode.UnknownPin
	}
	p := e.dev.Pin(pin)
	if err := p.SetMode(mcp23017.Output); err != nil {
		return nil, &errcode.E{C: errcode.IndicatorFault, Op: "expander.mode", Err: err}
	}
	return p, nil
}
