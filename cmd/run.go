package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/keydoro/keydoro/internal/adapters/hostio"
	"github.com/keydoro/keydoro/internal/ports"
	"github.com/spf13/cobra"
)

// runCmd serves a key-pad host over stdin/stdout.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Serve a key-pad host over stdin/stdout",
	Long: `Run reads newline-delimited JSON events from stdin and writes
setTitle/setImage operations to stdout until stdin closes or the
process is interrupted.

Each event carries an opaque instance id; instances appear and
disappear as the host binds and unbinds keys.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := setupSignalHandler()

	sink := hostio.NewSink(os.Stdout)
	reg := newRegistry(sink)
	defer reg.Close()

	err := hostio.Listen(ctx, os.Stdin, reg.Dispatch, func(err error) {
		warnf("%v", err)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("host stream error: %w", err)
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// discardSink drops host operations. Used by front ends that render
// their own view of the timer instead of consuming key-face frames.
type discardSink struct{}

var _ ports.HostSink = discardSink{}

func (discardSink) SetTitle(instance, title string) error { return nil }
func (discardSink) SetImage(instance, image string) error { return nil }
