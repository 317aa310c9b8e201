package core

import "context"

// Context keys for generation options
type contextKey string

const suppressHistoryKey contextKey = "suppressHistory"

// WithSuppressHistory marks the context so generated pick lists are not recorded
func WithSuppressHistory(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHistoryKey, true)
}

// shouldSuppressHistory returns whether history recording is disabled for the context
func shouldSuppressHistory(ctx context.Context) bool {
	val := ctx.Value(suppressHistoryKey)
	if val == nil {
		return false // default: record when a history store exists
	}
	suppress, ok := val.(bool)
	return ok && suppress
}
