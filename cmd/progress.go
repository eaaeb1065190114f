package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/activity"
	"github.com/abhisek/lingua/internal/api"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Print progress at the current level",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer w.Close()

		ctx := cmd.Context()
		if err := w.authenticate(ctx); err != nil {
			return err
		}
		ov, err := activity.NewProgress(w.client).Load(ctx)
		if err != nil {
			return w.explain(ctx, err)
		}
		printProgress(cmd, ov)
		return nil
	},
}

func printProgress(cmd *cobra.Command, ov activity.Overview) {
	out := cmd.OutOrStdout()
	s := ov.Summary

	fmt.Fprintf(out, "Level %s", orDash(s.CurrentLevel))
	if s.NextLevel != nil {
		fmt.Fprintf(out, " → %s", *s.NextLevel)
	}
	fmt.Fprintf(out, "   %d XP   %.0f%% overall\n", s.TotalXP, s.OverallProgress)

	if len(s.Modules) > 0 {
		fmt.Fprintf(out, "\n%-14s  %-8s  %-6s  %s\n", "Module", "Attempts", "Score", "Ready")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		for _, m := range s.Modules {
			fmt.Fprintf(out, "%-14s  %-8d  %-6s  %s\n",
				m.Module, m.TotalAttempts, fmt.Sprintf("%.0f%%", m.Score), mark(m.MeetsThreshold && m.MeetsMinimumAttempts))
		}
	}
	if e := s.ConversationEngagement; e != nil {
		fmt.Fprintf(out, "%-14s  %-8d  %-6s  %s\n", "conversation", e.TotalMessages, "-", mark(e.MeetsThreshold))
	}

	switch {
	case s.CanAdvance:
		fmt.Fprintln(out, "\nReady to advance. Open Progress in the app to move up.")
	case s.AdvancementReason != nil && *s.AdvancementReason != "":
		fmt.Fprintf(out, "\n%s\n", *s.AdvancementReason)
	}

	printHistory(cmd, ov.History)
}

func printHistory(cmd *cobra.Command, history []api.LevelHistoryItem) {
	if len(history) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nCompleted levels")
	for _, h := range history {
		score := "-"
		if h.WeightedScore != nil {
			score = fmt.Sprintf("%.0f%%", *h.WeightedScore)
		}
		fmt.Fprintf(out, "  %-3s  %3d days  %s\n", h.Level, h.DaysAtLevel, score)
	}
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
