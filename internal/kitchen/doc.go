// Package kitchen models the unreliable, variable-latency tasks that make up
// a breakfast order.
//
// A Task is built from an immutable TaskSpec. Preparing a task draws its
// delay and its success decision from an injected random source; awaiting the
// resulting Attempt suspends for the drawn delay and then yields either the
// success message or an apperrors.TaskFailure, never both.
package kitchen
