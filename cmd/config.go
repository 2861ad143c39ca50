package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/focusdial/internal/config"
	"github.com/xvierd/focusdial/internal/domain"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long:  `Show the configuration file location and the values the gadget runs with.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		cfg := app.config

		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		onOff := func(b bool) string {
			if b {
				return "on"
			}
			return "off"
		}

		fmt.Fprintf(out, "Config file:  %s\n", path)
		fmt.Fprintf(out, "Database:     %s\n", dbPath)
		fmt.Fprintf(out, "Log file:     %s\n", config.GetLogPath(cfg))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Dial:")
		fmt.Fprintf(out, "  Poll interval:   %s\n", cfg.Encoder.PollInterval)
		fmt.Fprintf(out, "  Debounce:        %s\n", cfg.Encoder.Debounce)
		fmt.Fprintln(out, "Motor:")
		fmt.Fprintf(out, "  Idle timeout:    %s\n", cfg.Motor.IdleTimeout)
		fmt.Fprintln(out, "Focus lengths:")
		for _, a := range []struct {
			pos int
			d   config.Duration
		}{
			{domain.FocusPosShort, cfg.Focus.Short},
			{domain.FocusPosMedium, cfg.Focus.Medium},
			{domain.FocusPosLong, cfg.Focus.Long},
		} {
			fmt.Fprintf(out, "  Position %-2d      %s\n", a.pos, formatMinutes(time.Duration(a.d)))
		}
		fmt.Fprintf(out, "Sound:           %s\n", onOff(cfg.Sound.Enabled))
		fmt.Fprintf(out, "Notifications:   %s\n", onOff(cfg.Notifications.Enabled))
		return nil
	},
}
