// pattern: Functional Core

// Package race provides the race-to-success combinator: run independent
// attempts concurrently, resolve with the first to succeed, and fail only
// when every attempt has failed.
package race

import (
	"context"
	"fmt"
)

// Attempt is one independent asynchronous try producing an S.
type Attempt[S any] func(ctx context.Context) (S, error)

// AllFailedError reports that every attempt failed. Failures holds one
// error per attempt, in input order regardless of completion order.
type AllFailedError struct {
	Failures []error
}

func (e *AllFailedError) Error() string {
	return fmt.Sprintf("all %d attempts failed", len(e.Failures))
}

// Unwrap exposes the per-attempt failures to errors.Is/As.
func (e *AllFailedError) Unwrap() []error {
	return e.Failures
}

// First runs every attempt concurrently and returns the value of the first
// one to succeed, in completion order. Once the race is decided the shared
// context is cancelled; attempts still in flight run out on their own and
// their outcomes are discarded. If all attempts fail, First returns an
// *AllFailedError. Zero attempts resolve deterministically to an
// *AllFailedError with an empty failure list.
func First[S any](ctx context.Context, attempts []Attempt[S]) (S, error) {
	var zero S
	if len(attempts) == 0 {
		return zero, &AllFailedError{Failures: []error{}}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		index int
		value S
		err   error
	}
	// Buffered to capacity so stragglers never block after an early return.
	results := make(chan outcome, len(attempts))
	for i, attempt := range attempts {
		i, attempt := i, attempt
		go func() {
			v, err := attempt(ctx)
			results <- outcome{index: i, value: v, err: err}
		}()
	}

	failures := make([]error, len(attempts))
	for range attempts {
		out := <-results
		if out.err == nil {
			return out.value, nil
		}
		failures[out.index] = out.err
	}
	return zero, &AllFailedError{Failures: failures}
}
