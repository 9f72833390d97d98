package config

import (
	"context"
	"time"

	"wdtgroom/bus"
	"wdtgroom/drivers/nrfwdt"
	"wdtgroom/errcode"
	"wdtgroom/types"
	"wdtgroom/x/mathx"
	"wdtgroom/x/timex"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	serviceName  = "config"
	configPrefix = "config"
	KeyWatchdog  = "watchdog"
)

type ctxKey string

// CtxDeviceKey is the context key carrying the device ID.
const CtxDeviceKey ctxKey = "device"

// TopicWatchdog carries the retained types.WatchdogConfig.
var TopicWatchdog = bus.T(configPrefix, KeyWatchdog)

const (
	DefaultHandles  = 4
	DefaultPeriodMs = 1000
	MinPeriodMs     = 10
)

// DefaultTimeoutTicks is five seconds of LFCLK.
var DefaultTimeoutTicks = timex.LFTicks(5 * time.Second)

// Default is the reference sizing: four groomers petting once a second
// against a five second window.
func Default() types.WatchdogConfig {
	return types.WatchdogConfig{
		TimeoutTicks: DefaultTimeoutTicks,
		Handles:      DefaultHandles,
		PeriodMs:     DefaultPeriodMs,
		Groom:        true,
	}
}

// Normalize fills zero fields with defaults and clamps the rest into what
// the hardware accepts. The groomer period is kept to at most half the
// window so one late tick cannot trip the reset.
func Normalize(c types.WatchdogConfig) (types.WatchdogConfig, error) {
	if c.TimeoutTicks == 0 {
		c.TimeoutTicks = DefaultTimeoutTicks
	}
	c.TimeoutTicks = mathx.Max(c.TimeoutTicks, nrfwdt.MinReloadTicks)

	if c.Handles == 0 {
		c.Handles = DefaultHandles
	}
	if _, err := nrfwdt.CountOf(c.Handles); err != nil {
		return c, &errcode.E{C: errcode.InvalidCount, Op: "config.normalize", Msg: "handles must be 1..4", Err: err}
	}

	if c.PeriodMs == 0 {
		c.PeriodMs = DefaultPeriodMs
	}
	windowMs := int(timex.FromLFTicks(c.TimeoutTicks) / time.Millisecond)
	c.PeriodMs = mathx.Clamp(c.PeriodMs, MinPeriodMs, mathx.Max(windowMs/2, MinPeriodMs))
	return c, nil
}

// Period is c.PeriodMs as a duration.
func Period(c types.WatchdogConfig) time.Duration {
	return time.Duration(c.PeriodMs) * time.Millisecond
}

// FromPayload accepts the payload shapes seen on config/watchdog: the typed
// struct, a pointer to it, or a decoded JSON object.
func FromPayload(p any) (types.WatchdogConfig, bool) {
	switch v := p.(type) {
	case types.WatchdogConfig:
		return v, true
	case *types.WatchdogConfig:
		if v == nil {
			return types.WatchdogConfig{}, false
		}
		return *v, true
	case map[string]any:
		var c types.WatchdogConfig
		if f, ok := v["timeout_ticks"].(float64); ok {
			c.TimeoutTicks = uint32(f)
		}
		if f, ok := v["handles"].(float64); ok {
			c.Handles = int(f)
		}
		if f, ok := v["period_ms"].(float64); ok {
			c.PeriodMs = int(f)
		}
		c.Groom = true
		if b, ok := v["groom"].(bool); ok {
			c.Groom = b
		}
		return c, true
	}
	return types.WatchdogConfig{}, false
}

// -----------------------------------------------------------------------------
// Embedded configuration
// -----------------------------------------------------------------------------

var embeddedConfigs = map[string]types.WatchdogConfig{
	"nrf52840dk": Default(),
	// Groomers never pet: demonstrates the watchdog reset.
	"nrf52840dk-bad-dog": {
		TimeoutTicks: DefaultTimeoutTicks,
		Handles:      DefaultHandles,
		PeriodMs:     DefaultPeriodMs,
	},
	"sim": {
		TimeoutTicks: timex.LFTicks(time.Second),
		Handles:      DefaultHandles,
		PeriodMs:     100,
		Groom:        true,
	},
}

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) (types.WatchdogConfig, bool) {
	c, ok := embeddedConfigs[device]
	return c, ok
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// Lookup resolves and normalises the config for the device in ctx.
func Lookup(ctx context.Context) (types.WatchdogConfig, error) {
	device, _ := ctx.Value(CtxDeviceKey).(string)
	if device == "" {
		return types.WatchdogConfig{}, &errcode.E{C: errcode.InvalidParams, Op: "config.lookup", Msg: "missing device ID in context"}
	}
	c, ok := EmbeddedConfigLookup(device)
	if !ok {
		return types.WatchdogConfig{}, &errcode.E{C: errcode.InvalidParams, Op: "config.lookup", Msg: "no embedded config for device: " + device}
	}
	return Normalize(c)
}

// Publish publishes the device config as a retained message.
func (s *ConfigService) Publish(ctx context.Context, conn *bus.Connection) error {
	c, err := Lookup(ctx)
	if err != nil {
		return err
	}
	conn.Publish(conn.NewMessage(TopicWatchdog, c, true))
	return nil
}

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.Publish(ctx, conn); err != nil {
			println("[config] publish failed:", err.Error())
		}
	}()
}
