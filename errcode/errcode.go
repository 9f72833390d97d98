package errcode

import (
	"errors"

	"wdtgroom/drivers/nrfwdt"
)

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	InvalidParams Code = "invalid_params"

	// Watchdog lifecycle.
	AlreadyActive  Code = "already_active"
	NotRunning     Code = "not_running"
	CountMismatch  Code = "count_mismatch"
	RecoveryFailed Code = "recovery_failed"
	Consumed       Code = "consumed"
	InvalidCount   Code = "invalid_count"

	// Indicator sinks.
	UnknownPin     Code = "unknown_pin"
	IndicatorFault Code = "indicator_fault"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap attaches op and a code derived from err. Nil stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: MapDriverErr(err), Op: op, Err: err}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return MapDriverErr(err)
}

// MapDriverErr maps low-level driver errors to a Code.
func MapDriverErr(err error) Code {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, nrfwdt.ErrAlreadyActive):
		return AlreadyActive
	case errors.Is(err, nrfwdt.ErrNotRunning):
		return NotRunning
	case errors.Is(err, nrfwdt.ErrCountMismatch):
		return CountMismatch
	case errors.Is(err, nrfwdt.ErrConsumed):
		return Consumed
	case errors.Is(err, nrfwdt.ErrInvalidCount):
		return InvalidCount
	}
	return Error
}
