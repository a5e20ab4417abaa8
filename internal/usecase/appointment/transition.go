package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type TransitionAppointment struct {
	schedule *Schedule
	gate     Gate
	audit    Auditor
	now      func() time.Time
}

func NewTransitionAppointment(
	schedule *Schedule,
	gate Gate,
	audit Auditor,
	now func() time.Time,
) *TransitionAppointment {
	return &TransitionAppointment{
		schedule: schedule,
		gate:     gate,
		audit:    audit,
		now:      now,
	}
}

// Execute moves a scheduled appointment to completed or cancelled.
func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	id auth.Identity,
	appointmentID uint,
	to domain.Status,
) (*models.Appointment, error) {

	if to != domain.StatusCompleted && to != domain.StatusCancelled {
		return nil, domain.Validation("status must be completed or cancelled")
	}

	var ap *models.Appointment

	err := uc.schedule.OnAppointment(ctx, appointmentID, nil,
		func(current *models.Appointment) error {
			if !uc.gate.Authorize(id, auth.ActionTransition, auth.Target{EmployeeName: current.EmployeeName}) {
				return denied("change this appointment")
			}
			return nil
		},
		func(ctx context.Context, tx domain.Store, fresh *models.Appointment) error {
			if err := domain.Transition(fresh, to, uc.now()); err != nil {
				return err
			}
			if err := tx.Update(ctx, fresh); err != nil {
				return err
			}
			ap = fresh
			return nil
		},
	)
	if err != nil {
		return nil, domain.Storage(concealMissing(id, err, "change this appointment"))
	}

	action := audit.ActionAppointmentCompleted
	if to == domain.StatusCancelled {
		action = audit.ActionAppointmentCancelled
	}
	uc.audit.Dispatch(audit.Event{
		Actor:    id.Username,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
