package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/activity"
	"github.com/abhisek/lingua/internal/api"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in learner",
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
		u, err := activity.NewAccount(w.client).Me(ctx)
		if err != nil {
			return w.explain(ctx, err)
		}
		printUser(cmd, u)
		return nil
	},
}

func printUser(cmd *cobra.Command, u *api.User) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-10s %s\n", "User:", u.DisplayName())
	fmt.Fprintf(out, "%-10s %s\n", "Username:", u.Username)
	fmt.Fprintf(out, "%-10s %s\n", "Language:", orDash(u.TargetLanguage))
	fmt.Fprintf(out, "%-10s %s\n", "Level:", orDash(u.Level))
	placed := "no"
	if u.PlacementTestCompleted {
		placed = "yes"
	}
	fmt.Fprintf(out, "%-10s %s\n", "Placed:", placed)
	fmt.Fprintf(out, "%-10s %d\n", "XP:", u.TotalXP)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
