package background

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"pet-grooming/internal/platform/logger"
)

func TestRunner_SurvivesCallerCancellation(t *testing.T) {
	r := NewRunner(logger.NewNop(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	var sawCancel atomic.Bool
	var ran atomic.Bool

	r.Go(ctx, "remote-write", func(ctx context.Context) error {
		time.Sleep(10 * time.Millisecond)
		if ctx.Err() != nil {
			sawCancel.Store(true)
		}
		ran.Store(true)
		return nil
	})
	cancel()
	r.Wait()

	if !ran.Load() {
		t.Fatalf("task did not run")
	}
	if sawCancel.Load() {
		t.Fatalf("task context must not inherit caller cancellation")
	}
}

func TestRunner_ErrorsAndPanicsAreContained(t *testing.T) {
	r := NewRunner(logger.NewNop(), time.Second)

	r.Go(context.Background(), "fails", func(context.Context) error { return errors.New("boom") })
	r.Go(context.Background(), "panics", func(context.Context) error { panic("oops") })
	r.Wait()
}
