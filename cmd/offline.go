package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/app"
	"github.com/abhisek/lingua/internal/config"
	"github.com/abhisek/lingua/internal/logging"
	"github.com/abhisek/lingua/internal/store"
)

var errNotSignedIn = errors.New("not signed in; run `lingua login <username>` first")

// workspace is what the one-shot commands share: the store, a logger and
// an API client recording into the store's request log.
type workspace struct {
	cfg    config.Config
	logger *zap.Logger
	store  *store.Store
	client *api.Client
}

func openWorkspace(cmd *cobra.Command) (*workspace, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	st, err := store.OpenPath(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &workspace{
		cfg:    cfg,
		logger: logger,
		store:  st,
		client: app.NewClient(cfg, logger, st.EventRepo()),
	}, nil
}

func (w *workspace) Close() {
	_ = w.logger.Sync()
	w.store.Close()
}

// authenticate loads the saved token into the client.
func (w *workspace) authenticate(ctx context.Context) error {
	token, ok, err := w.store.CredentialRepo().Load(ctx)
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}
	if !ok {
		return errNotSignedIn
	}
	w.client.SetToken(token)
	return nil
}

// explain turns an API error into the message printed to the user. A
// rejected token is deleted so the next run starts clean.
func (w *workspace) explain(ctx context.Context, err error) error {
	if api.IsUnauthorized(err) {
		if cerr := w.store.CredentialRepo().Clear(ctx); cerr != nil {
			w.logger.Warn("clear saved credential", zap.Error(cerr))
		}
		return errors.New(app.ExpiredNotice)
	}
	return errors.New(api.Describe(err))
}
