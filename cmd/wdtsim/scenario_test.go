//go:build !tinygo

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wdtgroom/types"
)

// Five second window, groomed once a second.
func slowScenario(steps int) Scenario {
	return Scenario{
		Device: "test",
		Watchdog: types.WatchdogConfig{
			TimeoutTicks: 5 * 32768,
			Handles:      4,
			PeriodMs:     1000,
			Groom:        true,
		},
		Steps:  steps,
		StepMs: 1000,
	}
}

func TestDefaultScenarioStaysUp(t *testing.T) {
	res, err := Simulate(DefaultScenario(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Steps != 20 || res.Resets != 0 || res.Halts != 0 {
		t.Fatalf("result = %+v", res)
	}
	if len(res.Boots) != 1 || res.Boots[0].Outcome != types.OutcomeFresh || res.Boots[0].ResetByWatchdog {
		t.Fatalf("boots = %+v", res.Boots)
	}
}

func TestStalledHandleResetsDevice(t *testing.T) {
	sc := slowScenario(10)
	sc.Stalls = []Stall{{Handle: 2, From: 3}}

	var lines []string
	res, err := Simulate(sc, func(s string) { lines = append(lines, s) })
	if err != nil {
		t.Fatal(err)
	}
	if res.Resets != 1 {
		t.Fatalf("resets = %d, want 1", res.Resets)
	}
	if len(res.Boots) != 2 || !res.Boots[1].ResetByWatchdog || res.Boots[1].Outcome != types.OutcomeFresh {
		t.Fatalf("boots = %+v", res.Boots)
	}
	// Last reload at step 2, five seconds of countdown, then the two tick
	// reset delay lands in step 7.
	want := "[7] [wdtsim] watchdog reset"
	found := false
	for _, l := range lines {
		if l == want {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing %q in log:\n%s", want, strings.Join(lines, "\n"))
	}
}

func TestSoftResetRecovers(t *testing.T) {
	sc := slowScenario(10)
	sc.SoftResetAt = 5

	res, err := Simulate(sc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Recoveries != 1 || res.Resets != 0 || res.Halts != 0 {
		t.Fatalf("result = %+v", res)
	}
	if got := res.Boots[1]; got.Outcome != types.OutcomeRecovered || got.Handles != 4 || got.TimeoutTicks != 5*32768 {
		t.Fatalf("recovered boot = %+v", got)
	}
}

func TestSoftResetWithWrongCountHaltsThenResets(t *testing.T) {
	sc := slowScenario(12)
	sc.SoftResetAt = 5
	sc.RecoverHandles = 3

	res, err := Simulate(sc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Halts != 1 || res.Recoveries != 0 {
		t.Fatalf("result = %+v", res)
	}
	// Nothing grooms after the halt, so the running watchdog fires.
	if res.Resets != 1 {
		t.Fatalf("resets = %d, want 1", res.Resets)
	}
}

func TestGroomDisabledResets(t *testing.T) {
	sc := slowScenario(10)
	sc.Watchdog.Groom = false

	res, err := Simulate(sc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Resets != 1 {
		t.Fatalf("resets = %d, want 1", res.Resets)
	}
}

func TestSimulateRejectsBadInput(t *testing.T) {
	sc := slowScenario(10)
	sc.Watchdog.Handles = 5
	if _, err := Simulate(sc, nil); err == nil {
		t.Fatal("expected error for 5 handles")
	}

	sc = slowScenario(0)
	if _, err := Simulate(sc, nil); err == nil {
		t.Fatal("expected error for zero steps")
	}
}

func TestLoadScenarioKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stall.toml")
	body := `
steps = 7

[[stalls]]
handle = 1
from = 2
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Steps != 7 || sc.Device != "sim" {
		t.Fatalf("scenario = %+v", sc)
	}
	if len(sc.Stalls) != 1 || sc.Stalls[0] != (Stall{Handle: 1, From: 2}) {
		t.Fatalf("stalls = %+v", sc.Stalls)
	}
	if sc.Watchdog != DefaultScenario().Watchdog {
		t.Fatalf("watchdog = %+v", sc.Watchdog)
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunCommand(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"run", "--steps", "5"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "steps=5 resets=0 recoveries=0 halts=0") {
		t.Fatalf("output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "[watchdog] activated 4 handles") {
		t.Fatalf("output:\n%s", out.String())
	}
}

func TestConfigCommandPrintsTOML(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"config"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`device = "sim"`, "[watchdog]", "timeout_ticks = 32768"} {
		if !strings.Contains(out.String(), key) {
			t.Fatalf("missing %q in:\n%s", key, out.String())
		}
	}
}

func TestSoftResetWithOutOfRangeCountHalts(t *testing.T) {
	sc := slowScenario(6)
	sc.SoftResetAt = 2
	sc.RecoverHandles = 260

	var lines []string
	res, err := Simulate(sc, func(s string) { lines = append(lines, s) })
	if err != nil {
		t.Fatal(err)
	}
	if res.Halts != 1 || res.Recoveries != 0 {
		t.Fatalf("result = %+v", res)
	}
	want := "[2] [watchdog] cannot claim: invalid_count"
	found := false
	for _, l := range lines {
		if l == want {
			found = true
		}
		if strings.Contains(l, "recovered") {
			t.Fatalf("unexpected recovery: %q", l)
		}
	}
	if !found {
		t.Fatalf("missing %q in log:\n%s", want, strings.Join(lines, "\n"))
	}
}
