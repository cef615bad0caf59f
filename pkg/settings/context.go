package settings

import (
	"context"
)

type contextKey string

const (
	runContextKey contextKey = "run-settings"
)

// IntoContext stores the run settings in the context.
func IntoContext(ctx context.Context, s *Run) context.Context {
	return context.WithValue(ctx, runContextKey, s)
}

// FromContext retrieves the run settings from the context.
func FromContext(ctx context.Context) (*Run, bool) {
	s, ok := ctx.Value(runContextKey).(*Run)
	return s, ok
}
