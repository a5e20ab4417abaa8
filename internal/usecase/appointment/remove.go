package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

type RemoveAppointment struct {
	store domain.Store
	gate  Gate
	audit Auditor
}

func NewRemoveAppointment(
	store domain.Store,
	gate Gate,
	audit Auditor,
) *RemoveAppointment {
	return &RemoveAppointment{
		store: store,
		gate:  gate,
		audit: audit,
	}
}

// Execute permanently deletes an appointment in any status.
func (uc *RemoveAppointment) Execute(
	ctx context.Context,
	id auth.Identity,
	appointmentID uint,
) error {

	if !uc.gate.Authorize(id, auth.ActionDelete, auth.Target{}) {
		return denied("delete appointments")
	}

	if err := uc.store.Delete(ctx, appointmentID); err != nil {
		return domain.Storage(err)
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    id.Username,
		Action:   audit.ActionAppointmentDeleted,
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return nil
}
