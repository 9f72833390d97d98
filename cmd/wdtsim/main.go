//go:build !tinygo

// Command wdtsim runs the watchdog boot and grooming sequence against the
// simulated register bank, with the countdown fast-forwarded per step.
package main

import (
	"os"
)

func main() {
	if err := mainE(); err != nil {
		os.Exit(1)
	}
}

func mainE() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("wdtsim:", err)
		return err
	}
	return nil
}
