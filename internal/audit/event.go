package audit

import (
	"context"
	"time"
)

const (
	ActionAppointmentCreated     = "appointment_created"
	ActionAppointmentConflict    = "appointment_conflict"
	ActionAppointmentCompleted   = "appointment_completed"
	ActionAppointmentCancelled   = "appointment_cancelled"
	ActionAppointmentRescheduled = "appointment_rescheduled"
	ActionAppointmentDeleted     = "appointment_deleted"
)

type Event struct {
	Actor    string
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
	At       time.Time
}

// Sink persists or emits events. Implementations must be safe to call from
// the dispatcher worker goroutine.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}
