// config/config_test.go
package config

import (
	"context"
	"testing"
	"time"

	"wdtgroom/bus"
	"wdtgroom/errcode"
	"wdtgroom/types"
)

func TestDefaultMatchesReferenceSizing(t *testing.T) {
	c := Default()
	if c.TimeoutTicks != 163840 || c.Handles != 4 || c.PeriodMs != 1000 || !c.Groom {
		t.Fatalf("Default() = %+v", c)
	}
	if n, err := Normalize(c); err != nil || n != c {
		t.Fatalf("Normalize(Default()) = %+v, %v", n, err)
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   types.WatchdogConfig
		want types.WatchdogConfig
	}{
		{
			name: "zero fills defaults",
			in:   types.WatchdogConfig{},
			want: types.WatchdogConfig{TimeoutTicks: 163840, Handles: 4, PeriodMs: 1000},
		},
		{
			name: "tiny timeout raised to hardware minimum",
			in:   types.WatchdogConfig{TimeoutTicks: 3, Handles: 1, PeriodMs: 500},
			want: types.WatchdogConfig{TimeoutTicks: 15, Handles: 1, PeriodMs: MinPeriodMs},
		},
		{
			name: "period capped at half the window",
			in:   types.WatchdogConfig{TimeoutTicks: 32768, Handles: 2, PeriodMs: 900, Groom: true},
			want: types.WatchdogConfig{TimeoutTicks: 32768, Handles: 2, PeriodMs: 500, Groom: true},
		},
		{
			name: "period floor",
			in:   types.WatchdogConfig{Handles: 3, PeriodMs: 1},
			want: types.WatchdogConfig{TimeoutTicks: 163840, Handles: 3, PeriodMs: MinPeriodMs},
		},
	}
	for _, c := range cases {
		got, err := Normalize(c.in)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got != c.want {
			t.Fatalf("%s: got %+v, want %+v", c.name, got, c.want)
		}
	}
}

func TestNormalizeRejectsHandleCount(t *testing.T) {
	for _, n := range []int{-1, 5, 8} {
		_, err := Normalize(types.WatchdogConfig{Handles: n})
		if errcode.Of(err) != errcode.InvalidCount {
			t.Fatalf("handles=%d: err = %v", n, err)
		}
	}
}

func TestFromPayload(t *testing.T) {
	want := types.WatchdogConfig{TimeoutTicks: 32768, Handles: 2, PeriodMs: 250, Groom: false}
	for _, p := range []any{
		want,
		&want,
		map[string]any{"timeout_ticks": 32768.0, "handles": 2.0, "period_ms": 250.0, "groom": false},
	} {
		got, ok := FromPayload(p)
		if !ok || got != want {
			t.Fatalf("FromPayload(%T) = %+v, %v", p, got, ok)
		}
	}
	if _, ok := FromPayload("nope"); ok {
		t.Fatal("string payload accepted")
	}
	if _, ok := FromPayload((*types.WatchdogConfig)(nil)); ok {
		t.Fatal("nil pointer accepted")
	}
	if got, _ := FromPayload(map[string]any{}); !got.Groom {
		t.Fatal("groom must default to true for JSON objects")
	}
}

func TestConfig_PublishEmbedded_Retained(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) (types.WatchdogConfig, bool) {
		if device != "bench" {
			return types.WatchdogConfig{}, false
		}
		return types.WatchdogConfig{Handles: 2, PeriodMs: 200, Groom: true}, true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	b := bus.NewBus(4)
	conn := b.NewConnection("test-config")
	svc := NewConfigService()

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "bench")
	svc.Start(ctx, conn)

	sub := conn.Subscribe(bus.T(configPrefix, "#"))
	deadline := time.After(500 * time.Millisecond)
	for {
		select {
		case m := <-sub.Channel():
			c, ok := m.Payload.(types.WatchdogConfig)
			if !ok {
				t.Fatalf("payload %T", m.Payload)
			}
			if !m.Retained || c.Handles != 2 || c.PeriodMs != 200 || c.TimeoutTicks != DefaultTimeoutTicks {
				t.Fatalf("unexpected config message: %+v retained=%v", c, m.Retained)
			}
			return
		case <-deadline:
			t.Fatal("timeout waiting for retained config")
		}
	}
}

func TestConfig_LookupErrors(t *testing.T) {
	if _, err := Lookup(context.Background()); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("missing device: %v", err)
	}
	ctx := context.WithValue(context.Background(), CtxDeviceKey, "no-such-board")
	if _, err := Lookup(ctx); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("unknown device: %v", err)
	}
	ctx = context.WithValue(context.Background(), CtxDeviceKey, "sim")
	c, err := Lookup(ctx)
	if err != nil || c.TimeoutTicks != 32768 || c.PeriodMs != 100 {
		t.Fatalf("sim config = %+v, %v", c, err)
	}
}
