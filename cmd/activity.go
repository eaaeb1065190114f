package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/store"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "List recent API requests from the local log",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		label, _ := cmd.Flags().GetString("label")

		w, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer w.Close()

		events, err := w.store.EventRepo().RecentRequests(cmd.Context(), store.QueryOpts{Limit: limit, Activity: label})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		printEvents(cmd, events)
		return nil
	},
}

func init() {
	activityCmd.Flags().Int("limit", 20, "Maximum number of requests to show")
	activityCmd.Flags().String("label", "", "Only show requests for this activity (e.g. vocabulary)")
}

func printEvents(cmd *cobra.Command, events []store.RequestEvent) {
	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No requests recorded.")
		return
	}

	fmt.Fprintf(out, "%-5s  %-19s  %-13s  %-6s  %-32s  %-6s  %-6s  %s\n",
		"ID", "Timestamp", "Activity", "Method", "Path", "Status", "Ms", "OK")
	fmt.Fprintln(out, strings.Repeat("─", 104))

	for _, e := range events {
		path := e.Path
		if len(path) > 32 {
			path = path[:31] + "…"
		}
		status := "-"
		if e.Status != 0 {
			status = fmt.Sprint(e.Status)
		}
		fmt.Fprintf(out, "%-5d  %-19s  %-13s  %-6s  %-32s  %-6s  %-6d  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Activity,
			e.Method,
			path,
			status,
			e.LatencyMs,
			mark(e.Success),
		)
		if !e.Success && e.ErrorMessage != "" {
			fmt.Fprintf(out, "       %s\n", e.ErrorMessage)
		}
	}
}
