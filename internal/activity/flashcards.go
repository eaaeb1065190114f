package activity

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/prefetch"
)

// VocabularyAPI is the subset of the API flashcards need.
type VocabularyAPI interface {
	NextFlashcard(ctx context.Context) (*api.Flashcard, error)
	AnswerFlashcard(ctx context.Context, answer api.FlashcardAnswer) (*api.Explanation, error)
}

// Outcome is the locally computed result of answering a multiple-choice item.
type Outcome struct {
	Selected int
	Correct  int
}

// IsCorrect reports whether the selected option was the right one.
func (o Outcome) IsCorrect() bool { return o.Selected == o.Correct }

// check validates selected against options and computes the outcome.
func check(options []string, correct, selected int) (Outcome, error) {
	if selected < 0 || selected >= len(options) {
		return Outcome{}, ErrInvalidOption
	}
	return Outcome{Selected: selected, Correct: correct}, nil
}

// Flashcards serves vocabulary cards with one card prefetched ahead.
type Flashcards struct {
	api  VocabularyAPI
	next *prefetch.Slot[*api.Flashcard]
}

// NewFlashcards creates a Flashcards controller.
func NewFlashcards(c VocabularyAPI, logger *zap.Logger) *Flashcards {
	return &Flashcards{
		api:  c,
		next: prefetch.NewSlot[*api.Flashcard](logger),
	}
}

func (f *Flashcards) fetch(ctx context.Context) (*api.Flashcard, error) {
	card, err := f.api.NextFlashcard(label(ctx, LabelVocabulary))
	if err != nil {
		return nil, fmt.Errorf("load flashcard: %w", err)
	}
	return card, nil
}

// LoadFirst fetches the first card directly, dropping anything prefetched.
func (f *Flashcards) LoadFirst(ctx context.Context) (*api.Flashcard, error) {
	f.next.Reset()
	return f.fetch(ctx)
}

// Prefetch starts fetching the card after the one just shown. Call it once
// the current card has been rendered.
func (f *Flashcards) Prefetch(ctx context.Context) {
	f.next.Arm(ctx, f.fetch)
}

// Advance returns the next card, using the prefetched one when it arrived
// intact.
func (f *Flashcards) Advance(ctx context.Context) (*api.Flashcard, error) {
	return f.next.ConsumeOrFetch(ctx, f.fetch)
}

// Check computes the outcome of choosing selected on card.
func (f *Flashcards) Check(card *api.Flashcard, selected int) (Outcome, error) {
	return check(card.Options, card.CorrectOptionIndex, selected)
}

// Explain records the answer and returns the server's explanation.
func (f *Flashcards) Explain(ctx context.Context, card *api.Flashcard, o Outcome) (string, error) {
	exp, err := f.api.AnswerFlashcard(label(ctx, LabelVocabulary), api.FlashcardAnswer{
		Word:                card.Word,
		SelectedOptionIndex: o.Selected,
		CorrectOptionIndex:  o.Correct,
	})
	if err != nil {
		return "", fmt.Errorf("explain answer: %w", err)
	}
	return exp.Explanation, nil
}
