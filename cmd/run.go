package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/app"
	"github.com/abhisek/lingua/internal/logging"
	"github.com/abhisek/lingua/internal/store"
)

// runApp opens the store, builds the logger, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
		logger.Info("ephemeral session")
		return app.Run(cfg, logger, store.NewMemoryCredentials(), nil)
	}

	st, err := store.OpenPath(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	logger.Debug("store opened", zap.String("path", cfg.DBPath))

	return app.Run(cfg, logger, st.CredentialRepo(), st.EventRepo())
}
