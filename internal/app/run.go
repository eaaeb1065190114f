package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/audio"
	"github.com/abhisek/lingua/internal/config"
	"github.com/abhisek/lingua/internal/store"
)

// NewClient builds the API client for cfg, recording every request in
// events when it is not nil.
func NewClient(cfg config.Config, logger *zap.Logger, events store.EventRepo) *api.Client {
	opts := []api.Option{
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithLogger(logger),
	}
	if events != nil {
		opts = append(opts, api.WithRecorder(events))
	}
	return api.NewClient(cfg.APIBaseURL, opts...)
}

// Run starts the terminal UI and blocks until the learner quits. events
// may be nil, in which case requests are not recorded.
func Run(cfg config.Config, logger *zap.Logger, creds store.CredentialRepo, events store.EventRepo) error {
	model := New(Deps{
		API:         NewClient(cfg, logger, events),
		Credentials: creds,
		Recorder:    audio.NewCommandRecorder(cfg.RecordCommand, ""),
		Logger:      logger,
	})

	logger.Info("starting", zap.String("api", cfg.APIBaseURL))
	p := tea.NewProgram(model)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
