package activity

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/lingua/internal/api"
)

// ProgressAPI is the subset of the API progress tracking needs.
type ProgressAPI interface {
	ProgressSummary(ctx context.Context) (*api.ProgressSummary, error)
	LevelHistory(ctx context.Context) ([]api.LevelHistoryItem, error)
	AdvanceLevel(ctx context.Context) (*api.AdvancementResult, error)
	ApplyCheatCode(ctx context.Context, code string) (*api.CheatCodeResult, error)
	Me(ctx context.Context) (*api.User, error)
}

// Progress reads and advances the learner's level progress.
type Progress struct {
	api ProgressAPI
}

// NewProgress creates a Progress controller.
func NewProgress(c ProgressAPI) *Progress {
	return &Progress{api: c}
}

// Overview is the summary and history together.
type Overview struct {
	Summary *api.ProgressSummary
	History []api.LevelHistoryItem
}

// Summary returns the learner's standing at the current level.
func (p *Progress) Summary(ctx context.Context) (*api.ProgressSummary, error) {
	s, err := p.api.ProgressSummary(label(ctx, LabelProgress))
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return s, nil
}

// History lists completed levels.
func (p *Progress) History(ctx context.Context) ([]api.LevelHistoryItem, error) {
	h, err := p.api.LevelHistory(label(ctx, LabelProgress))
	if err != nil {
		return nil, fmt.Errorf("load level history: %w", err)
	}
	return h, nil
}

// Load fetches the summary and the history.
func (p *Progress) Load(ctx context.Context) (Overview, error) {
	s, err := p.Summary(ctx)
	if err != nil {
		return Overview{}, err
	}
	h, err := p.History(ctx)
	if err != nil {
		return Overview{}, err
	}
	return Overview{Summary: s, History: h}, nil
}

// Advancement is the result of moving up a level along with the refreshed
// profile.
type Advancement struct {
	Result *api.AdvancementResult
	User   *api.User
}

// Advance moves the learner to the next level and refreshes their profile,
// whose level has changed on the server.
func (p *Progress) Advance(ctx context.Context) (Advancement, error) {
	ctx = label(ctx, LabelProgress)
	res, err := p.api.AdvanceLevel(ctx)
	if err != nil {
		return Advancement{}, fmt.Errorf("advance level: %w", err)
	}
	u, err := p.api.Me(ctx)
	if err != nil {
		// The advancement stands; only the refresh failed.
		if api.IsUnauthorized(err) {
			return Advancement{}, err
		}
		return Advancement{Result: res}, nil
	}
	return Advancement{Result: res, User: u}, nil
}

// CheatCode applies a demo code.
func (p *Progress) CheatCode(ctx context.Context, code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrEmptyText
	}
	res, err := p.api.ApplyCheatCode(label(ctx, LabelProgress), code)
	if err != nil {
		return "", fmt.Errorf("apply code: %w", err)
	}
	return res.Message, nil
}
