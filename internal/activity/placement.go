package activity

import (
	"context"
	"fmt"

	"github.com/abhisek/lingua/internal/api"
)

// PlacementAPI is the subset of the API the placement test needs.
type PlacementAPI interface {
	StartPlacement(ctx context.Context, language string) (*api.PlacementStart, error)
	PlacementQuestion(ctx context.Context, testID api.ID) (*api.QuestionEnvelope, bool, error)
	AnswerPlacement(ctx context.Context, testID api.ID, answer api.PlacementAnswer) (*api.AnswerAck, error)
	CompletePlacement(ctx context.Context, testID api.ID) (*api.PlacementResult, error)
}

// PlacementState is the lifecycle of a placement test.
type PlacementState int

const (
	NotStarted PlacementState = iota
	InProgress
	Completed
)

func (s PlacementState) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case InProgress:
		return "in-progress"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// PlacementStep is what the learner should see after an operation: either
// a question or the final result.
type PlacementStep struct {
	Question *api.TestQuestion
	Current  int
	Total    int
	Result   *api.PlacementResult
}

// Done reports whether the step carries the final result.
func (s PlacementStep) Done() bool { return s.Result != nil }

// Placement runs one placement test at a time.
type Placement struct {
	api PlacementAPI

	state    PlacementState
	testID   api.ID
	total    int
	current  int
	question *api.TestQuestion
	result   *api.PlacementResult
}

// NewPlacement creates a controller in the NotStarted state.
func NewPlacement(c PlacementAPI) *Placement {
	return &Placement{api: c}
}

// State returns the lifecycle state.
func (p *Placement) State() PlacementState { return p.state }

// Progress returns the current question number and the total.
func (p *Placement) Progress() (current, total int) { return p.current, p.total }

// Start begins a new test in language and fetches the first question.
// Calling Start again discards any previous test.
func (p *Placement) Start(ctx context.Context, language string) (PlacementStep, error) {
	ctx = label(ctx, LabelPlacement)
	started, err := p.api.StartPlacement(ctx, language)
	if err != nil {
		return PlacementStep{}, fmt.Errorf("start placement test: %w", err)
	}

	*p = Placement{
		api:    p.api,
		state:  InProgress,
		testID: started.TestID,
		total:  started.TotalQuestions,
	}
	return p.next(ctx)
}

// Answer submits the option index for the current question and moves on.
func (p *Placement) Answer(ctx context.Context, option int) (PlacementStep, error) {
	if p.state != InProgress || p.question == nil {
		return PlacementStep{}, ErrNotStarted
	}
	if option < 0 || option >= len(p.question.Options) {
		return PlacementStep{}, ErrInvalidOption
	}
	ctx = label(ctx, LabelPlacement)

	ack, err := p.api.AnswerPlacement(ctx, p.testID, api.PlacementAnswer{
		QuestionNumber: p.question.QuestionNumber,
		SelectedOption: option,
	})
	if err != nil {
		return PlacementStep{}, fmt.Errorf("submit answer: %w", err)
	}
	if ack.HasNext {
		return p.next(ctx)
	}
	return p.complete(ctx)
}

// Results returns the final result, fetching it if an earlier attempt
// failed. The result is requested at most once per successful test.
func (p *Placement) Results(ctx context.Context) (PlacementStep, error) {
	if p.state != Completed {
		return PlacementStep{}, ErrNotStarted
	}
	return p.complete(label(ctx, LabelPlacement))
}

func (p *Placement) next(ctx context.Context) (PlacementStep, error) {
	env, done, err := p.api.PlacementQuestion(ctx, p.testID)
	if err != nil {
		return PlacementStep{}, fmt.Errorf("load question: %w", err)
	}
	if done {
		return p.complete(ctx)
	}

	q := env.Question
	p.question = &q
	p.current = clamp(env.CurrentQuestionNumber, 0, p.total)
	return PlacementStep{Question: p.question, Current: p.current, Total: p.total}, nil
}

func (p *Placement) complete(ctx context.Context) (PlacementStep, error) {
	p.state = Completed
	p.question = nil
	if p.result == nil {
		res, err := p.api.CompletePlacement(ctx, p.testID)
		if err != nil {
			return PlacementStep{}, fmt.Errorf("complete placement test: %w", err)
		}
		p.result = res
	}
	return PlacementStep{Current: p.current, Total: p.total, Result: p.result}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
