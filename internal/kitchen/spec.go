package kitchen

import (
	"fmt"
	"time"

	apperrors "github.com/agbru/breakfast/internal/errors"
	"github.com/agbru/breakfast/internal/format"
)

// DefaultFailureProbability is the chance that any menu task fails.
const DefaultFailureProbability = 0.2

// Task names of the default menu, in declaration order.
const (
	Coffee = "cafe"
	Toast  = "pan"
	Juice  = "jugo"
)

// TaskSpec describes one kind of task. It is defined once and never mutated.
type TaskSpec struct {
	// Name identifies the task in outcomes and in the summary.
	Name string
	// MinDelay and MaxDelay bound the simulated latency.
	MinDelay time.Duration
	MaxDelay time.Duration
	// FailureProbability is in [0, 1].
	FailureProbability float64
	// SuccessFormat is a fmt template receiving the realized delay in
	// seconds, two decimals (e.g. "Café listo en %s segundos").
	SuccessFormat string
	// FailureReason names the unavailable resource.
	FailureReason string
}

// Validate reports the first inconsistency in the spec as an
// apperrors.ValidationError.
func (s TaskSpec) Validate() error {
	switch {
	case s.Name == "":
		return apperrors.ValidationError{Field: "name", Message: "must not be empty"}
	case s.MinDelay <= 0:
		return apperrors.ValidationError{Field: "min_delay", Message: "must be positive"}
	case s.MaxDelay < s.MinDelay:
		return apperrors.ValidationError{Field: "max_delay", Message: "must not be less than min_delay"}
	case s.FailureProbability < 0 || s.FailureProbability > 1:
		return apperrors.ValidationError{Field: "failure_probability", Message: fmt.Sprintf("must be in [0, 1], got %v", s.FailureProbability)}
	case s.SuccessFormat == "":
		return apperrors.ValidationError{Field: "success_format", Message: "must not be empty"}
	case s.FailureReason == "":
		return apperrors.ValidationError{Field: "failure_reason", Message: "must not be empty"}
	}
	return nil
}

// SuccessMessage renders the success template for a realized delay.
func (s TaskSpec) SuccessMessage(delay time.Duration) string {
	return fmt.Sprintf(s.SuccessFormat, format.FormatSeconds(delay))
}

// Failure returns the error raised when the task fails.
func (s TaskSpec) Failure() apperrors.TaskFailure {
	return apperrors.TaskFailure{Task: s.Name, Reason: s.FailureReason}
}

// DefaultMenu returns the specs of a breakfast order in declaration order:
// coffee, toast, juice.
func DefaultMenu() []TaskSpec {
	return []TaskSpec{
		{
			Name:               Coffee,
			MinDelay:           1 * time.Second,
			MaxDelay:           3 * time.Second,
			FailureProbability: DefaultFailureProbability,
			SuccessFormat:      "Café listo en %s segundos",
			FailureReason:      "No se pudo preparar el café: falta café",
		},
		{
			Name:               Toast,
			MinDelay:           2 * time.Second,
			MaxDelay:           4 * time.Second,
			FailureProbability: DefaultFailureProbability,
			SuccessFormat:      "Pan tostado en %s segundos",
			FailureReason:      "No se pudo tostar el pan: no hay pan disponible",
		},
		{
			Name:               Juice,
			MinDelay:           1 * time.Second,
			MaxDelay:           2 * time.Second,
			FailureProbability: DefaultFailureProbability,
			SuccessFormat:      "Jugo listo en %s segundos",
			FailureReason:      "No se pudo exprimir el jugo: no hay fruta disponible",
		},
	}
}
