package appointment

import "strings"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusScheduled:
		return StatusScheduled, true
	case StatusCancelled:
		return StatusCancelled, true
	case StatusCompleted:
		return StatusCompleted, true
	}
	return "", false
}

// IsTerminal reports whether no further status change is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	return canLeave(current)
}

func CanComplete(current Status) error {
	return canLeave(current)
}

func CanReschedule(current Status) error {
	if current != StatusScheduled {
		return Conflict("only scheduled appointments can be rescheduled")
	}
	return nil
}

func canLeave(current Status) error {
	if current != StatusScheduled {
		return Conflict("not in a transitionable state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
