package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "lingua",
	Short: "Language practice in the terminal",
	Long:  "Lingua: a terminal client for practising vocabulary, grammar, writing, conversation and pronunciation against the learning API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("api", "", "API base URL (overrides LINGUA_API_URL)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGUA_DB)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log at debug level")
	rootCmd.Flags().Bool("ephemeral", false, "Keep the session in memory only and record nothing")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig loads the configuration and applies flag overrides. Flags
// win over the environment, which wins over defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return applyFlags(cmd, cfg), nil
}

func applyFlags(cmd *cobra.Command, cfg config.Config) config.Config {
	flags := cmd.Flags()
	if u, _ := flags.GetString("api"); u != "" {
		cfg.APIBaseURL = strings.TrimRight(u, "/")
	}
	if p, _ := flags.GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	return cfg
}
