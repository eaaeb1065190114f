package api

import "context"

type contextKey string

const activityKey contextKey = "api_activity"

// WithActivity attaches an activity label to the context for request logging.
func WithActivity(ctx context.Context, activity string) context.Context {
	return context.WithValue(ctx, activityKey, activity)
}

// ActivityFrom extracts the activity label from the context.
func ActivityFrom(ctx context.Context) string {
	if v, ok := ctx.Value(activityKey).(string); ok {
		return v
	}
	return "unknown"
}
