package errcode

import (
	"errors"
	"testing"

	"wdtgroom/drivers/nrfwdt"
)

func TestMapDriverErr(t *testing.T) {
	cases := []struct {
		err  error
		want Code
	}{
		{nil, OK},
		{nrfwdt.ErrAlreadyActive, AlreadyActive},
		{nrfwdt.ErrNotRunning, NotRunning},
		{nrfwdt.ErrCountMismatch, CountMismatch},
		{nrfwdt.ErrConsumed, Consumed},
		{nrfwdt.ErrInvalidCount, InvalidCount},
		{errors.New("bus stuck"), Error},
	}
	for _, c := range cases {
		if got := MapDriverErr(c.err); got != c.want {
			t.Errorf("MapDriverErr(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	if Wrap("op", nil) != nil {
		t.Fatal("Wrap(nil) must be nil")
	}
	err := Wrap("watchdog.recover", nrfwdt.ErrCountMismatch)
	if !errors.Is(err, nrfwdt.ErrCountMismatch) {
		t.Fatal("cause lost")
	}
	if Of(err) != CountMismatch {
		t.Fatalf("Of = %q", Of(err))
	}
	if got := err.Error(); got != "watchdog.recover: count_mismatch" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Fatal("nil is OK")
	}
	if Of(UnknownPin) != UnknownPin {
		t.Fatal("bare code")
	}
	e := &E{C: RecoveryFailed, Op: "watchdog.recover", Msg: "count_mismatch"}
	if Of(e) != RecoveryFailed {
		t.Fatal("wrapped code")
	}
	if e.Error() != "watchdog.recover: recovery_failed: count_mismatch" {
		t.Fatalf("Error() = %q", e.Error())
	}
}
