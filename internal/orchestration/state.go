package orchestration

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownTask is returned when recording an outcome for a task that is
	// not part of the order.
	ErrUnknownTask = errors.New("task is not part of the order")
	// ErrAlreadyRecorded is returned when a task's outcome is recorded twice.
	ErrAlreadyRecorded = errors.New("outcome already recorded")
)

// Outcome is the normalized result of one task of an order.
type Outcome struct {
	// Task is the task name (e.g., "cafe").
	Task string
	// OK is true when the task produced its success message.
	OK bool
	// Message is the success message or the failure reason.
	Message string
	// Elapsed is the measured time from launch to settle.
	Elapsed time.Duration
}

// OrderState maps each task of an order to its Outcome. A task without an
// outcome has not been attempted. The state belongs to a single run and is not
// safe for concurrent use.
type OrderState struct {
	names    []string
	outcomes map[string]Outcome
}

// NewOrderState returns an empty state for the given task names, in
// presentation order.
func NewOrderState(names ...string) *OrderState {
	return &OrderState{
		names:    append([]string(nil), names...),
		outcomes: make(map[string]Outcome, len(names)),
	}
}

// Record stores the outcome of a task. Each task is recorded at most once.
func (s *OrderState) Record(o Outcome) error {
	if !s.has(o.Task) {
		return fmt.Errorf("%w: %q", ErrUnknownTask, o.Task)
	}
	if _, dup := s.outcomes[o.Task]; dup {
		return fmt.Errorf("%w: %q", ErrAlreadyRecorded, o.Task)
	}
	s.outcomes[o.Task] = o
	return nil
}

func (s *OrderState) has(name string) bool {
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}

// Names returns the task names in presentation order.
func (s *OrderState) Names() []string {
	return append([]string(nil), s.names...)
}

// Lookup returns the outcome of a task; ok is false if it was not attempted.
func (s *OrderState) Lookup(name string) (Outcome, bool) {
	o, ok := s.outcomes[name]
	return o, ok
}

// Len returns the number of recorded outcomes.
func (s *OrderState) Len() int { return len(s.outcomes) }

// Complete reports whether every task of the order has an outcome.
func (s *OrderState) Complete() bool { return len(s.outcomes) == len(s.names) }

// Outcomes returns the recorded outcomes in presentation order.
func (s *OrderState) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(s.outcomes))
	for _, n := range s.names {
		if o, ok := s.outcomes[n]; ok {
			out = append(out, o)
		}
	}
	return out
}

// Counts returns how many recorded outcomes succeeded and failed.
func (s *OrderState) Counts() (ready, failed int) {
	for _, o := range s.outcomes {
		if o.OK {
			ready++
		} else {
			failed++
		}
	}
	return ready, failed
}
