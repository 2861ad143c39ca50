package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/focusdial/internal/domain"
)

var (
	historyLimit int
	historyJSON  bool
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished focus sessions",
	Long:  `List the most recent focus sessions, newest first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()

		sessions, err := app.storage.Sessions().FindRecent(ctx, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		if historyJSON {
			list := make([]map[string]interface{}, 0, len(sessions))
			for _, s := range sessions {
				list = append(list, map[string]interface{}{
					"id":         s.ID,
					"length":     s.Length.String(),
					"focused":    s.Focused().String(),
					"paused":     s.Paused.String(),
					"outcome":    string(s.Outcome),
					"started_at": s.StartedAt.Local().Format("2006-01-02T15:04:05"),
					"ended_at":   s.EndedAt.Local().Format("2006-01-02T15:04:05"),
				})
			}
			data := map[string]interface{}{
				"sessions": list,
				"count":    len(list),
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal sessions: %w", err)
			}
			fmt.Fprintln(out, string(jsonData))
			return nil
		}

		if len(sessions) == 0 {
			fmt.Fprintln(out, "No focus sessions yet.")
			return nil
		}

		fmt.Fprintf(out, "Focus sessions (%d):\n\n", len(sessions))
		for _, s := range sessions {
			fmt.Fprintf(out, "%s %s  %-6s %-9s focused %s",
				getOutcomeIcon(s.Outcome),
				s.StartedAt.Local().Format("2006-01-02 15:04"),
				formatMinutes(s.Length),
				domain.GetOutcomeLabel(s.Outcome),
				formatMinutes(s.Focused()),
			)
			if s.Paused > 0 {
				fmt.Fprintf(out, ", paused %s", formatMinutes(s.Paused))
			}
			fmt.Fprintln(out)
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of sessions to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output results in JSON format")
}

func getOutcomeIcon(o domain.SessionOutcome) string {
	switch o {
	case domain.SessionOutcomeCompleted:
		return "✅"
	case domain.SessionOutcomeStopped:
		return "⏹"
	default:
		return "❓"
	}
}
