package task

import "errors"

// Error taxonomy for the planning engine. Every operation fails with one of
// these terminal errors; the API layer maps them onto HTTP statuses. The
// message text crosses the service-container boundary, so mapping matches
// on it as well as on errors.Is.
var (
	// ErrTaskNotFound is returned when the referenced task does not exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrSubtaskNotFound is returned when the referenced subtask does not exist.
	ErrSubtaskNotFound = errors.New("subtask not found")
	// ErrRecordNotFound is returned when the referenced work record does not exist.
	ErrRecordNotFound = errors.New("work record not found")
	// ErrForbidden is returned when the acting user does not own the task.
	ErrForbidden = errors.New("permission denied: not the owner of this task")
	// ErrInvalidState is returned when a planning sum or range invariant is
	// violated. Wrapped messages name the rule and the computed sum.
	ErrInvalidState = errors.New("planning invariant violated")
	// ErrDuplicateDate is returned when a work record already occupies the
	// (subtask, date) slot.
	ErrDuplicateDate = errors.New("a work record already exists for this date")
	// ErrInvalidInput is returned for malformed field values (empty names,
	// out-of-range numbers, due date before start date).
	ErrInvalidInput = errors.New("invalid input")
)
