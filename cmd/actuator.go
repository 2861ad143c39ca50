package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xvierd/focusdial/internal/domain"
)

// actuatorCmd represents the actuator command
var actuatorCmd = &cobra.Command{
	Use:   "actuator",
	Short: "Show the stored actuator position",
	Long: `Show the actuator position restored when the dial enters Motor mode.
A missing or unreadable value falls back to 0.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()

		v, err := app.actuator.Load(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(out, "Actuator position: %d\n", v)
		case errors.Is(err, domain.ErrNotFound):
			fmt.Fprintln(out, "No actuator position stored (defaults to 0).")
		default:
			fmt.Fprintf(out, "Stored actuator position is unusable (%v); the gadget will use 0.\n", err)
		}
		return nil
	},
}

// actuatorSetCmd represents the actuator set command
var actuatorSetCmd = &cobra.Command{
	Use:   "set <0-100>",
	Short: "Store a new actuator position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid position %q: must be a whole number", args[0])
		}

		if err := app.actuator.Save(context.Background(), v); err != nil {
			if errors.Is(err, domain.ErrInvalidPosition) {
				return fmt.Errorf("invalid position %d: must be between 0 and 100", v)
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Actuator position set to %d.\n", v)
		return nil
	},
}

func init() {
	actuatorCmd.AddCommand(actuatorSetCmd)
}
