// Package loader runs data-loading calls as explicit asynchronous tasks.
// Each task exposes a snapshot result with an in-flight/succeeded/failed
// status, so callers can render or test loading states without a UI
// harness and without reaching into goroutine internals.
package loader

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Status is the lifecycle phase of a load task
type Status int

const (
	StatusInFlight Status = iota
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusInFlight:
		return "in-flight"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is a point-in-time snapshot of a task. Value is only meaningful
// when Status is StatusSucceeded, Err when StatusFailed.
type Result[T any] struct {
	TaskID uuid.UUID
	Status Status
	Value  T
	Err    error
}

// Task is a single in-progress or finished load
type Task[T any] struct {
	id   uuid.UUID
	done chan struct{}

	mu     sync.Mutex
	result Result[T]
}

// Start launches fn on its own goroutine and returns immediately. The
// context passed in is handed to fn; cancelling it is fn's signal to give
// up, the task itself never cancels anything.
func Start[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	t := &Task[T]{
		id:   uuid.New(),
		done: make(chan struct{}),
	}
	t.result = Result[T]{TaskID: t.id, Status: StatusInFlight}

	go func() {
		value, err := fn(ctx)

		t.mu.Lock()
		if err != nil {
			t.result = Result[T]{TaskID: t.id, Status: StatusFailed, Err: err}
		} else {
			t.result = Result[T]{TaskID: t.id, Status: StatusSucceeded, Value: value}
		}
		t.mu.Unlock()
		close(t.done)
	}()

	return t
}

// Result returns the task's current snapshot
func (t *Task[T]) Result() Result[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result
}

// Done is closed once the task has succeeded or failed
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes or ctx is cancelled, then returns
// the final value and error.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		r := t.Result()
		return r.Value, r.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
