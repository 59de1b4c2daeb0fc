package kitchen

import (
	"context"
	"time"
)

// Task is a validated, reusable task of a given kind.
type Task struct {
	spec TaskSpec
}

// NewTask validates spec and returns a Task for it.
func NewTask(spec TaskSpec) (*Task, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Task{spec: spec}, nil
}

// MustTask is like NewTask but panics on an invalid spec. It is intended for
// compiled-in menus only.
func MustTask(spec TaskSpec) *Task {
	t, err := NewTask(spec)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTasks builds tasks for every spec, stopping at the first invalid one.
func NewTasks(specs []TaskSpec) ([]*Task, error) {
	tasks := make([]*Task, 0, len(specs))
	for _, s := range specs {
		t, err := NewTask(s)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// DefaultTasks returns the tasks of DefaultMenu.
func DefaultTasks() []*Task {
	specs := DefaultMenu()
	tasks := make([]*Task, len(specs))
	for i, s := range specs {
		tasks[i] = MustTask(s)
	}
	return tasks
}

// Name returns the task name.
func (t *Task) Name() string { return t.spec.Name }

// Spec returns a copy of the task's spec.
func (t *Task) Spec() TaskSpec { return t.spec }

// Prepare draws the delay uniformly from [MinDelay, MaxDelay) and then,
// independently, whether the attempt fails. Both draws happen on the caller's
// goroutine, so a seeded source yields the same attempts whatever the
// scheduling of the tasks afterwards.
func (t *Task) Prepare(rng Rand) Attempt {
	span := t.spec.MaxDelay - t.spec.MinDelay
	delay := t.spec.MinDelay + time.Duration(rng.Float64()*float64(span))
	fails := rng.Float64() < t.spec.FailureProbability
	return Attempt{spec: t.spec, delay: delay, fails: fails}
}

// Attempt is one drawn invocation of a task, ready to be awaited.
type Attempt struct {
	spec  TaskSpec
	delay time.Duration
	fails bool
}

// Task returns the name of the task being attempted.
func (a Attempt) Task() string { return a.spec.Name }

// Delay returns the drawn delay.
func (a Attempt) Delay() time.Duration { return a.delay }

// WillFail reports the drawn decision.
func (a Attempt) WillFail() bool { return a.fails }

// Await suspends for the drawn delay, then returns the success message, or an
// apperrors.TaskFailure if the attempt was drawn to fail. Once started it
// always runs to completion; ctx is accepted for tracing and is not used to
// cut the delay short.
func (a Attempt) Await(_ context.Context, sleeper Sleeper) (string, error) {
	if sleeper == nil {
		sleeper = TimerSleeper{}
	}
	sleeper.Sleep(a.delay)
	if a.fails {
		return "", a.spec.Failure()
	}
	return a.spec.SuccessMessage(a.delay), nil
}
