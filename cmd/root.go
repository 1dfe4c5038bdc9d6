// Package cmd provides the CLI commands for the Keydoro daemon.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/keydoro/keydoro/internal/adapters/clock"
	"github.com/keydoro/keydoro/internal/adapters/notification"
	"github.com/keydoro/keydoro/internal/adapters/storage"
	"github.com/keydoro/keydoro/internal/config"
	"github.com/keydoro/keydoro/internal/engine"
	"github.com/keydoro/keydoro/internal/ports"
	"github.com/keydoro/keydoro/internal/render"
	"github.com/spf13/cobra"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath    string
	noHistory bool

	// Global dependencies
	appConfig    *config.Config
	notifier     *notification.Notifier
	historyStore ports.History
	renderer     *render.Renderer
	registry     *engine.Registry
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "keydoro",
	Short: "Keydoro - A single-button Pomodoro timer for key-pad hosts",
	Long: `Keydoro drives Pomodoro interval timers behind single hardware keys.
It consumes host events (appear, press, settings) on stdin, renders a
72x72 key face with a progress ring and countdown, and emits title and
image operations on stdout.

Run "keydoro run" to serve a host, or "keydoro simulate" to drive a
timer from the terminal without hardware.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the history database file (default: ~/.keydoro/keydoro.db)")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Disable the phase-completion history log")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Keydoro\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(historyCmd)
}

// initializeServices sets up all the required adapters and the engine
// registry shared by the subcommands.
func initializeServices() error {
	// Load configuration
	var err error
	appConfig, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		appConfig = config.DefaultConfig()
	}

	// Initialize notifier
	notifier = notification.New(appConfig.Notifications.Enabled)

	// Initialize history storage (optional)
	if appConfig.Storage.Enabled && !noHistory {
		if dbPath == "" {
			dbPath = config.GetDBPath(appConfig)
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		historyStore, err = storage.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
	}

	// Initialize the renderer from the configured theme
	renderer = render.New(appConfig.Theme.ToRenderTheme())

	return nil
}

// newRegistry builds the engine registry against the given host sink.
// Subcommands that never render (history) pass nil and skip this.
func newRegistry(sink ports.HostSink) *engine.Registry {
	var recorder ports.HistoryRecorder
	if historyStore != nil {
		recorder = historyStore
	}
	registry = engine.NewRegistry(engine.Config{
		Clock:    clock.New(),
		Sink:     sink,
		Sound:    notifier,
		History:  recorder,
		Renderer: renderer,
	}, appConfig.Defaults.RawSettings())
	return registry
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if registry != nil {
		registry.Close()
	}
	if historyStore != nil {
		return historyStore.Close()
	}
	return nil
}

// warnf logs a non-fatal problem to stderr without disturbing the
// stdout protocol stream.
func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
