package race

import (
	"context"
	"errors"
	"testing"
	"time"
)

func succeedAfter(d time.Duration, v int) Attempt[int] {
	return func(ctx context.Context) (int, error) {
		select {
		case <-time.After(d):
			return v, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

func failAfter(d time.Duration, err error) Attempt[int] {
	return func(ctx context.Context) (int, error) {
		select {
		case <-time.After(d):
			return 0, err
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

func TestFirstReturnsTheOnlySuccess(t *testing.T) {
	errA := errors.New("A")
	errB := errors.New("B")

	// Vary delays so the success is neither first nor last to complete.
	attempts := []Attempt[int]{
		failAfter(1*time.Millisecond, errA),
		succeedAfter(10*time.Millisecond, 1),
		failAfter(30*time.Millisecond, errB),
	}

	got, err := First(context.Background(), attempts)
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if got != 1 {
		t.Errorf("value: got %d, want 1", got)
	}
}

func TestFirstPicksEarliestCompletion(t *testing.T) {
	// Two successes: the later one in input order completes first and wins.
	attempts := []Attempt[int]{
		succeedAfter(50*time.Millisecond, 1),
		succeedAfter(1*time.Millisecond, 2),
	}

	got, err := First(context.Background(), attempts)
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if got != 2 {
		t.Errorf("value: got %d, want 2 (earliest completion)", got)
	}
}

func TestFirstAllFailedKeepsInputOrder(t *testing.T) {
	errA := errors.New("A")
	errB := errors.New("B")

	// B completes before A; the aggregate must still be in input order.
	attempts := []Attempt[int]{
		failAfter(20*time.Millisecond, errA),
		failAfter(1*time.Millisecond, errB),
	}

	_, err := First(context.Background(), attempts)
	var all *AllFailedError
	if !errors.As(err, &all) {
		t.Fatalf("got %v, want *AllFailedError", err)
	}
	if len(all.Failures) != 2 {
		t.Fatalf("failures: got %d, want 2", len(all.Failures))
	}
	if all.Failures[0] != errA || all.Failures[1] != errB {
		t.Errorf("failure order: got [%v %v], want [A B]", all.Failures[0], all.Failures[1])
	}
}

func TestFirstZeroAttempts(t *testing.T) {
	_, err := First[int](context.Background(), nil)
	var all *AllFailedError
	if !errors.As(err, &all) {
		t.Fatalf("got %v, want *AllFailedError", err)
	}
	if len(all.Failures) != 0 {
		t.Errorf("failures: got %d, want 0", len(all.Failures))
	}
}

func TestFirstCancelsStragglers(t *testing.T) {
	cancelled := make(chan struct{})

	attempts := []Attempt[int]{
		succeedAfter(1*time.Millisecond, 1),
		func(ctx context.Context) (int, error) {
			<-ctx.Done()
			close(cancelled)
			return 0, ctx.Err()
		},
	}

	got, err := First(context.Background(), attempts)
	if err != nil || got != 1 {
		t.Fatalf("First: got (%d, %v), want (1, nil)", got, err)
	}

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Error("straggler never observed cancellation")
	}
}

func TestFirstErrorsIsFindsFailures(t *testing.T) {
	sentinel := errors.New("sentinel")
	_, err := First(context.Background(), []Attempt[int]{
		failAfter(time.Millisecond, sentinel),
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("errors.Is through AllFailedError: got %v", err)
	}
}
