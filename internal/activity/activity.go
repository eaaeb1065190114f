// Package activity drives the learning activities. Each controller owns the
// transient state of one activity and talks to the API through a narrow
// interface that *api.Client satisfies. Controllers do not lock; callers
// must not run two operations on the same controller at once.
package activity

import (
	"context"
	"errors"

	"github.com/abhisek/lingua/internal/api"
)

// Activity labels, attached to each request for the request log.
const (
	LabelAuth          = "auth"
	LabelPlacement     = "placement"
	LabelVocabulary    = "vocabulary"
	LabelConversation  = "conversation"
	LabelGrammar       = "grammar"
	LabelWriting       = "writing"
	LabelPronunciation = "pronunciation"
	LabelProgress      = "progress"
)

var (
	// ErrEmptyText is returned when there is nothing to send.
	ErrEmptyText = errors.New("please enter some text first")

	// ErrNotStarted is returned when an operation needs a prior Start.
	ErrNotStarted = errors.New("activity not started")

	// ErrInvalidOption is returned for an option index out of range.
	ErrInvalidOption = errors.New("invalid option")
)

func label(ctx context.Context, activity string) context.Context {
	return api.WithActivity(ctx, activity)
}
