package types

// Watchdog configuration supplied on topic "config/watchdog".
type WatchdogConfig struct {
	// Countdown window in 32.768 kHz ticks.
	TimeoutTicks uint32 `json:"timeout_ticks" toml:"timeout_ticks"`
	// Reload-request channels, one per groomer (1..4). Must match the
	// running hardware on recovery.
	Handles int `json:"handles" toml:"handles"`
	// Groomer period in milliseconds.
	PeriodMs int `json:"period_ms" toml:"period_ms"`
	// Groom=false stops the groomers from petting, letting the watchdog
	// reset the device.
	Groom bool `json:"groom" toml:"groom"`
}

// Outcome of claiming the watchdog at boot.
type Outcome string

const (
	OutcomeFresh     Outcome = "fresh"
	OutcomeRecovered Outcome = "recovered"
	OutcomeHalted    Outcome = "halted"
)

// BootReport is retained on "hal/watchdog/boot".
type BootReport struct {
	Outcome         Outcome `json:"outcome"`
	ResetByWatchdog bool    `json:"reset_by_watchdog"`
	Handles         int     `json:"handles"`
	TimeoutTicks    uint32  `json:"timeout_ticks"`
}

// HandleHealth is retained on "hal/watchdog/<i>/health" after every groom.
type HandleHealth struct {
	Index int `json:"index"`
	// AlreadyPetted: the channel had been serviced before the groomer
	// checked it. False means the groomer serviced it itself.
	AlreadyPetted bool   `json:"already_petted"`
	Seq           uint32 `json:"seq"`
	TsMs          int64  `json:"ts_ms"`
}
