package round

import (
	"context"

	"go.uber.org/zap"

	"github.com/tickwise/base64-stream/errors"
)

// Status reports whether a task has more rounds of work left.
type Status int

const (
	StatusContinue Status = iota // input remains, expects another Step
	StatusDone                   // task complete
)

// Task is a resumable unit of work sliced into bounded rounds. Step processes
// at most one round's worth of input and reports whether input remains.
// Progress made by a round is never undone: a task that returned
// StatusContinue resumes exactly where its cursor left off, so output order
// matches input order no matter how many rounds were needed.
//
// Tasks suspend only between rounds, never inside one. Callers with their own
// event loop (timers, TUI frames, workers) invoke Step directly; everyone
// else uses Run.
type Task interface {
	Step(ctx context.Context) (Status, error)
}

// TaskFunc adapts a plain function to the Task interface.
type TaskFunc func(ctx context.Context) (Status, error)

// Step implements Task.
func (f TaskFunc) Step(ctx context.Context) (Status, error) {
	return f(ctx)
}

// Run drives a task to completion. Convenience wrapper over Step for callers
// without an external driver. Context cancellation is observed between
// rounds only, so a cancelled context never interrupts a round in flight.
func Run(ctx context.Context, t Task) error {
	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		status, err := t.Step(ctx)
		if err != nil {
			return err
		}

		switch status {
		case StatusDone:
			Logger().Debug("task complete", zap.Int("rounds", n+1))
			return nil
		case StatusContinue:
			Logger().Debug("round complete", zap.Int("round", n))
		default:
			return errors.Internal(errors.PhaseDrive, "task reported unknown status")
		}
	}
}

// Steps advances a task by at most n rounds and returns the last status.
// Used by drivers that interleave other work between rounds, and by tests
// that pin behavior at specific round boundaries.
func Steps(ctx context.Context, t Task, n int) (Status, error) {
	status := StatusContinue
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return status, err
		}

		var err error
		status, err = t.Step(ctx)
		if err != nil {
			return status, err
		}
		if status == StatusDone {
			return status, nil
		}
	}
	return status, nil
}
