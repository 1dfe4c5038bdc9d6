package cmd

import (
	"github.com/keydoro/keydoro/internal/adapters/tui"
	"github.com/keydoro/keydoro/internal/ports"
	"github.com/spf13/cobra"
)

var simulateInstance string

// simulateCmd drives one timer instance from an interactive terminal.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Drive a timer from the terminal without hardware",
	Long: `Simulate runs an interactive terminal front end against a single
timer instance: space taps the key, h holds it, q quits. The timer
behaves exactly as it would behind a hardware key.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simulateInstance, "instance", "simulator", "Instance id to drive")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := setupSignalHandler()

	reg := newRegistry(discardSink{})
	defer reg.Close()

	// Materialize the instance as a hardware appearance would.
	reg.Dispatch(ports.Event{Type: ports.EventAppear, Instance: simulateInstance})

	return tui.NewSimulator(reg, simulateInstance).Run(ctx)
}
