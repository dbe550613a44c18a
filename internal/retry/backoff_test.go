package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBackoff_SucceedsFirstTry(t *testing.T) {
	b := &Backoff{InitialDelay: time.Millisecond, MaxAttempts: 3}
	calls := 0
	err := b.Do(context.Background(), func(attempt int) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestBackoff_RetriesUntilSuccess(t *testing.T) {
	b := &Backoff{InitialDelay: time.Millisecond, MaxAttempts: 5}
	calls := 0
	err := b.Do(context.Background(), func(attempt int) error {
		calls++
		if attempt < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestBackoff_ExhaustsBudget(t *testing.T) {
	b := &Backoff{InitialDelay: time.Millisecond, MaxAttempts: 3}
	sentinel := errors.New("still down")
	calls := 0
	err := b.Do(context.Background(), func(attempt int) error {
		calls++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want last error %v", err, sentinel)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestBackoff_ContextCancel(t *testing.T) {
	b := &Backoff{InitialDelay: 50 * time.Millisecond, MaxAttempts: 10, Jitter: false}
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- b.Do(ctx, func(attempt int) error {
			calls++
			if calls == 1 {
				cancel()
			}
			return errors.New("transient")
		})
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Do did not return after cancellation")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no attempt after cancel)", calls)
	}
}

func TestBackoff_AttemptNumbersAreOneBased(t *testing.T) {
	b := &Backoff{InitialDelay: time.Millisecond, MaxAttempts: 2}
	var seen []int
	_ = b.Do(context.Background(), func(attempt int) error {
		seen = append(seen, attempt)
		return errors.New("x")
	})
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("attempts = %v, want [1 2]", seen)
	}
}
