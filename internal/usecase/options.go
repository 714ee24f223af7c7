package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Timeouts bounds every call to an external collaborator.
type Timeouts struct {
	LLM    time.Duration
	Search time.Duration
	Email  time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		LLM:    60 * time.Second,
		Search: 15 * time.Second,
		Email:  30 * time.Second,
	}
}

func (t Timeouts) withDefaults() Timeouts {
	d := DefaultTimeouts()
	if t.LLM <= 0 {
		t.LLM = d.LLM
	}
	if t.Search <= 0 {
		t.Search = d.Search
	}
	if t.Email <= 0 {
		t.Email = d.Email
	}
	return t
}

// Clock returns the current time. Tests inject a fixed one.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func callWithTimeout[T any](ctx context.Context, d time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	cctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return fn(cctx)
}
