package round

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/tickwise/base64-stream/errors"
)

// countingTask completes after target rounds, optionally failing at failAt.
type countingTask struct {
	steps  int
	target int
	failAt int // 0 = never fail
}

func (t *countingTask) Step(_ context.Context) (Status, error) {
	t.steps++
	if t.failAt > 0 && t.steps == t.failAt {
		return StatusContinue, stderrors.New("boom")
	}
	if t.steps >= t.target {
		return StatusDone, nil
	}
	return StatusContinue, nil
}

func TestRun_DrivesToCompletion(t *testing.T) {
	tests := []struct {
		name   string
		target int
	}{
		{"single round", 1},
		{"few rounds", 5},
		{"many rounds", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &countingTask{target: tt.target}
			if err := Run(context.Background(), task); err != nil {
				t.Fatalf("Run() error = %v, want nil", err)
			}
			if task.steps != tt.target {
				t.Errorf("steps = %d, want %d", task.steps, tt.target)
			}
		})
	}
}

func TestRun_PropagatesStepError(t *testing.T) {
	task := &countingTask{target: 10, failAt: 3}
	err := Run(context.Background(), task)
	if err == nil {
		t.Fatal("Run() error = nil, want step error")
	}
	if task.steps != 3 {
		t.Errorf("steps = %d, want 3 (no rounds after the failing one)", task.steps)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := &countingTask{target: 5}
	err := Run(ctx, task)
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if task.steps != 0 {
		t.Errorf("steps = %d, want 0 (cancellation observed before first round)", task.steps)
	}
}

func TestRun_UnknownStatus(t *testing.T) {
	task := TaskFunc(func(_ context.Context) (Status, error) {
		return Status(99), nil
	})

	err := Run(context.Background(), task)
	target := &errors.Error{Phase: errors.PhaseDrive, Kind: errors.KindInternal}
	if !stderrors.Is(err, target) {
		t.Errorf("Run() error = %v, want [drive] internal", err)
	}
}

func TestTaskFunc_Step(t *testing.T) {
	called := 0
	task := TaskFunc(func(_ context.Context) (Status, error) {
		called++
		return StatusDone, nil
	})

	status, err := task.Step(context.Background())
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if status != StatusDone {
		t.Errorf("status = %v, want StatusDone", status)
	}
	if called != 1 {
		t.Errorf("called = %d, want 1", called)
	}
}

func TestSteps_PartialDrive(t *testing.T) {
	task := &countingTask{target: 10}

	status, err := Steps(context.Background(), task, 3)
	if err != nil {
		t.Fatalf("Steps() error = %v", err)
	}
	if status != StatusContinue {
		t.Errorf("status = %v, want StatusContinue", status)
	}
	if task.steps != 3 {
		t.Errorf("steps = %d, want 3", task.steps)
	}

	// Resuming picks up where the previous drive stopped.
	status, err = Steps(context.Background(), task, 100)
	if err != nil {
		t.Fatalf("Steps() error = %v", err)
	}
	if status != StatusDone {
		t.Errorf("status = %v, want StatusDone", status)
	}
	if task.steps != 10 {
		t.Errorf("steps = %d, want 10", task.steps)
	}
}

func TestSteps_StopsAtDone(t *testing.T) {
	task := &countingTask{target: 2}

	status, err := Steps(context.Background(), task, 5)
	if err != nil {
		t.Fatalf("Steps() error = %v", err)
	}
	if status != StatusDone {
		t.Errorf("status = %v, want StatusDone", status)
	}
	if task.steps != 2 {
		t.Errorf("steps = %d, want 2 (no rounds after done)", task.steps)
	}
}
