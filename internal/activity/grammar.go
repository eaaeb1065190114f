package activity

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/api"
)

// GrammarAPI is the subset of the API grammar drills need.
type GrammarAPI interface {
	NextGrammarQuestion(ctx context.Context) (*api.GrammarQuestion, error)
	RecordGrammarAnswer(ctx context.Context, answer api.GrammarAnswer) error
}

// Grammar serves grammar drills.
type Grammar struct {
	api    GrammarAPI
	logger *zap.Logger
}

// NewGrammar creates a Grammar controller.
func NewGrammar(c GrammarAPI, logger *zap.Logger) *Grammar {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Grammar{api: c, logger: logger}
}

// Next fetches a question on the general topic.
func (g *Grammar) Next(ctx context.Context) (*api.GrammarQuestion, error) {
	q, err := g.api.NextGrammarQuestion(label(ctx, LabelGrammar))
	if err != nil {
		return nil, fmt.Errorf("load grammar question: %w", err)
	}
	return q, nil
}

// Check computes the outcome of choosing selected on q.
func (g *Grammar) Check(q *api.GrammarQuestion, selected int) (Outcome, error) {
	return check(q.Options, q.CorrectOptionIndex, selected)
}

// Record reports the attempt for progress tracking. Failures are logged
// and swallowed; the learner never sees them. Unauthorized is the
// exception and is returned so the session can be reset.
func (g *Grammar) Record(ctx context.Context, q *api.GrammarQuestion, o Outcome) error {
	err := g.api.RecordGrammarAnswer(label(ctx, LabelGrammar), api.GrammarAnswer{
		QuestionID:          q.QuestionID,
		SelectedOptionIndex: o.Selected,
		CorrectOptionIndex:  o.Correct,
		Explanation:         q.Explanation,
	})
	if err == nil {
		return nil
	}
	if api.IsUnauthorized(err) {
		return err
	}
	g.logger.Debug("record grammar answer",
		zap.String("category", "degraded"),
		zap.String("question_id", q.QuestionID.String()),
		zap.Error(err))
	return nil
}
