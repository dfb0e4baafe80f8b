package advice

import (
	"context"
	"errors"
	"fmt"

	domaintypes "tripplanner/internal/domain/types"
)

// Result is the outcome of a Task. Exactly one of Text and Err is set.
type Result struct {
	Text string
	Err  error
}

// Task is one in-flight generation request.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	result Result
}

// Done is closed once the result is available.
func (t *Task) Done() <-chan struct{} { return t.done }

// Cancel aborts the request. Waiting afterwards reports context.Canceled.
func (t *Task) Cancel() { t.cancel() }

// Wait blocks until the task finishes or ctx ends. Leaving early through ctx
// does not cancel the task.
func (t *Task) Wait(ctx context.Context) Result {
	select {
	case <-t.done:
		return t.result
	case <-ctx.Done():
		return Result{Err: ctx.Err()}
	}
}

func (t *Task) finish(ctx context.Context, text string, err error) {
	defer close(t.done)
	cerr := ctx.Err()
	if err == nil && cerr == nil {
		t.result = Result{Text: text}
		return
	}
	// An answer that arrives after the deadline or a cancel is discarded.
	if err == nil {
		err = cerr
	}
	if !errors.Is(err, domaintypes.ErrInference) {
		err = fmt.Errorf("%w: %w", domaintypes.ErrInference, err)
	}
	if cerr != nil && !errors.Is(err, cerr) {
		err = fmt.Errorf("%w (%w)", err, cerr)
	}
	t.result = Result{Err: err}
}
