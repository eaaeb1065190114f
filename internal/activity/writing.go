package activity

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/lingua/internal/api"
)

// WritingAPI is the subset of the API writing practice needs.
type WritingAPI interface {
	WritingFeedback(ctx context.Context, text string) (*api.WritingFeedback, error)
}

// Writing submits free text for review.
type Writing struct {
	api WritingAPI
}

// NewWriting creates a Writing controller.
func NewWriting(c WritingAPI) *Writing {
	return &Writing{api: c}
}

// Submit sends text for feedback. Blank text is rejected without a request.
func (w *Writing) Submit(ctx context.Context, text string) (*api.WritingFeedback, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	fb, err := w.api.WritingFeedback(label(ctx, LabelWriting), text)
	if err != nil {
		return nil, fmt.Errorf("writing feedback: %w", err)
	}
	return fb, nil
}
