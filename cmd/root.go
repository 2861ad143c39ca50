// Package cmd provides the CLI commands for the focusdial application.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/focusdial/internal/adapters/sim"
	"github.com/xvierd/focusdial/internal/adapters/sound"
	"github.com/xvierd/focusdial/internal/adapters/tui"
	"github.com/xvierd/focusdial/internal/domain"
	"github.com/xvierd/focusdial/internal/services"
)

var (
	// Version info (set at build time via ldflags)
	Version = "dev"

	// Global flags
	dbPath  string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "focusdial",
	Short: "focusdial - a rotary-dial desk gadget and its terminal simulator",
	Long: `focusdial drives a desk gadget built around one rotary encoder: an
edge light, a motorised arm and a focus timer, all picked from a ring of LEDs.

Run "focusdial" with no arguments to operate the gadget in a terminal
simulator. Turn the dial with ←/→ and press it with space.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runSimulator,
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
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.focusdial/focusdial.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every dial movement to the log file")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("focusdial\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(actuatorCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
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

// runSimulator runs the controller against the simulated board until the
// user quits.
func runSimulator(cmd *cobra.Command, args []string) error {
	ctx := setupSignalHandler()

	ui := tui.NewSimulator()
	emitter := sound.New(app.config.Sound, nil, app.logger)
	board := sim.NewBoard(domain.RingSize,
		sim.WithListener(ui.OnBoard),
		sim.WithToneEmitter(emitter),
	)

	ctl := services.NewController(services.Dependencies{
		Input:    board,
		Board:    board,
		Settings: app.storage.Settings(),
		Sessions: app.storage.Sessions(),
		Notifier: app.notifier,
		OnStatus: ui.OnStatus,
	}, app.config.ToSettings(), app.logger)

	app.logger.Info("simulator starting", "db", dbPath, "version", Version)
	return ui.Run(ctx, board, ctl.Run)
}

// formatMinutes formats a duration as a compact string like "45m" or "1h30m".
// Sub-minute durations keep their seconds.
func formatMinutes(d time.Duration) string {
	if d < time.Minute {
		return d.Round(time.Second).String()
	}
	if d >= time.Hour {
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", int(d.Minutes()))
}
