package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	Activity string    // exact activity match ("" = any)
	From     time.Time // timestamp >= From
}

// CredentialRepo persists the single bearer token.
//
// All operations are idempotent: Clear on an empty store is a no-op and a
// second Save overwrites the first.
type CredentialRepo interface {
	Save(ctx context.Context, token string) error

	// Load returns the saved token. ok is false when none is stored.
	Load(ctx context.Context) (token string, ok bool, err error)

	Clear(ctx context.Context) error
}

// RequestEventData captures a single API call.
type RequestEventData struct {
	RequestID    string
	Activity     string
	Method       string
	Path         string
	Status       int // 0 when the server was unreachable
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestEvent is a stored RequestEventData.
type RequestEvent struct {
	ID        int64
	Timestamp time.Time
	RequestEventData
}

// EventRepo provides append and query access to the request log.
type EventRepo interface {
	AppendRequest(ctx context.Context, data RequestEventData) error

	// RecentRequests returns events newest first.
	RecentRequests(ctx context.Context, opts QueryOpts) ([]RequestEvent, error)
}
