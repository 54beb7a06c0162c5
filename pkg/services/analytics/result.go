package analytics

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Result is the outcome of a single aggregation.
type Result[T any] struct {
	Name  string
	Value T
	Err   error
}

// Run evaluates fn and turns a panic into an error, so a failing
// aggregation never takes down its siblings.
func Run[T any](name string, fn func() T) (res Result[T]) {
	res.Name = name
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("aggregation %s: %v", name, r)
		}
	}()
	res.Value = fn()
	return res
}

// Unwrap returns the value, or empty after logging the failure.
func (r Result[T]) Unwrap(ctx context.Context, empty T) T {
	if r.Err != nil {
		zerolog.Ctx(ctx).Error().Err(r.Err).Str("aggregation", r.Name).Msg("aggregation failed")
		return empty
	}
	return r.Value
}

// Safe runs fn and unwraps the result in one step.
func Safe[T any](ctx context.Context, name string, empty T, fn func() T) T {
	return Run(name, fn).Unwrap(ctx, empty)
}
