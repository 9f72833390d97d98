//go:build !tinygo

package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wdtsim SUBCOMMAND",
		Short: "Simulate watchdog claim, recovery and grooming on the host",

		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

func newRunCmd() *cobra.Command {
	var (
		path   string
		steps  int
		stepMs int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario and print the event log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := DefaultScenario()
			if path != "" {
				var err error
				if sc, err = LoadScenario(path); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("steps") {
				sc.Steps = steps
			}
			if cmd.Flags().Changed("step-ms") {
				sc.StepMs = stepMs
			}

			out := cmd.OutOrStdout()
			res, err := Simulate(sc, func(line string) { fmt.Fprintln(out, line) })
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "steps=%d resets=%d recoveries=%d halts=%d\n",
				res.Steps, res.Resets, res.Recoveries, res.Halts)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "config", "", "scenario TOML file (defaults when empty)")
	cmd.Flags().IntVar(&steps, "steps", 0, "override the number of steps")
	cmd.Flags().IntVar(&stepMs, "step-ms", 0, "override the step length in milliseconds")
	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the default scenario as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(DefaultScenario())
		},
	}
}
