package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/keydoro/keydoro/internal/domain"
	"github.com/spf13/cobra"
)

var (
	historyDays int
	historyJSON bool
)

// historyCmd shows the phase-completion log.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show completed phases and today's summary",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyDays, "days", 7, "How many days back to list")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output results in JSON format")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyStore == nil {
		return fmt.Errorf("history is disabled (storage.enabled = false or --no-history)")
	}

	ctx := context.Background()
	since := time.Now().AddDate(0, 0, -historyDays)

	completions, err := historyStore.ListRecent(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to list completions: %w", err)
	}

	summary, err := historyStore.GetDailySummary(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to summarize today: %w", err)
	}

	if historyJSON {
		return printHistoryJSON(completions, summary)
	}

	fmt.Printf("Today: %d work phases (%s focused), %d breaks, %d skipped\n\n",
		summary.WorkCompleted,
		formatWorkTime(summary.TotalWorkTime),
		summary.BreaksTaken,
		summary.ForcedSkips)

	if len(completions) == 0 {
		fmt.Printf("No completed phases in the last %d days.\n", historyDays)
		return nil
	}

	fmt.Printf("Last %d days:\n", historyDays)
	for _, c := range completions {
		marker := " "
		if c.Forced {
			marker = "»"
		}
		fmt.Printf("  %s %s %-5s %3dm  cycle %d  %s\n",
			marker,
			c.CompletedAt.Local().Format("Jan 02 15:04"),
			c.Family,
			c.PlannedSeconds/60,
			c.CycleIndex+1,
			c.Instance)
	}

	return nil
}

func printHistoryJSON(completions []domain.PhaseCompletion, summary *domain.DailySummary) error {
	out := map[string]any{
		"today": map[string]any{
			"work_completed":  summary.WorkCompleted,
			"breaks_taken":    summary.BreaksTaken,
			"total_work_time": summary.TotalWorkTime.String(),
			"forced_skips":    summary.ForcedSkips,
		},
		"completions": completions,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// formatWorkTime formats a duration as a human-friendly string like
// "25m" or "1h30m".
func formatWorkTime(d time.Duration) string {
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
