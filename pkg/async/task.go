package async

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/ordcheck/pkg/observability"
)

// Task is a handle on a goroutine started by Go or Every
type Task struct {
	name string
	done chan struct{}
	err  error
}

// Name returns the task name given at start
func (t *Task) Name() string {
	return t.name
}

// Done is closed once the goroutine has returned
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the task's error. It is only meaningful after Done is closed.
func (t *Task) Err() error {
	<-t.done
	return t.err
}

// Go runs fn in a goroutine. A panic is recovered and turned into the task error.
// Errors other than context cancellation are logged.
func Go(ctx context.Context, logger logrus.FieldLogger, name string, fn func(context.Context) error) *Task {
	t := &Task{name: name, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		defer func() {
			if perr := observability.MustRecover(recover()); perr != nil {
				logger.WithFields(logrus.Fields{
					"task":  name,
					"stack": string(debug.Stack()),
				}).WithError(perr).Error("PANIC recovered in background task")
				t.err = perr
			}
		}()

		t.err = fn(ctx)
		if t.err != nil && !errors.Is(t.err, context.Canceled) {
			logger.WithField("task", name).WithError(t.err).Error("Background task failed")
		}
	}()

	return t
}

// Every calls fn immediately and then once per interval until ctx is done. A panic
// inside fn stops the loop.
func Every(ctx context.Context, logger logrus.FieldLogger, name string, interval time.Duration, fn func(context.Context)) *Task {
	return Go(ctx, logger, name, func(ctx context.Context) error {
		if interval <= 0 {
			return fmt.Errorf("interval must be positive, got %v", interval)
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			fn(ctx)
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})
}

// Wait blocks until every task is done or ctx expires, returning the first task error
// that is not a cancellation
func Wait(ctx context.Context, tasks ...*Task) error {
	var first error
	for _, t := range tasks {
		if t == nil {
			continue
		}
		select {
		case <-t.done:
		case <-ctx.Done():
			return fmt.Errorf("waiting for %s: %w", t.name, ctx.Err())
		}
		if t.err != nil && first == nil && !errors.Is(t.err, context.Canceled) {
			first = fmt.Errorf("%s: %w", t.name, t.err)
		}
	}
	return first
}
