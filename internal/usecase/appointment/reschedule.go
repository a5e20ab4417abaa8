package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type RescheduleAppointmentInput struct {
	Date string
	Time string
}

type RescheduleAppointment struct {
	schedule *Schedule
	gate     Gate
	audit    Auditor
	now      func() time.Time
}

func NewRescheduleAppointment(
	schedule *Schedule,
	gate Gate,
	audit Auditor,
	now func() time.Time,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		schedule: schedule,
		gate:     gate,
		audit:    audit,
		now:      now,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	id auth.Identity,
	appointmentID uint,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, domain.Validation("date must be YYYY-MM-DD")
	}
	start, err := domain.ParseClock(in.Time)
	if err != nil {
		return nil, domain.Validation("time must be HH:MM")
	}

	if !uc.gate.Authorize(id, auth.ActionReschedule, auth.Target{}) {
		return nil, denied("reschedule appointments")
	}

	var ap *models.Appointment
	var from string

	// Both the origin and the destination day are held, so a concurrent
	// transition on the origin day cannot interleave.
	err = uc.schedule.OnAppointment(ctx, appointmentID, []string{date},
		func(*models.Appointment) error { return nil },
		func(ctx context.Context, tx domain.Store, fresh *models.Appointment) error {
			if err := domain.CanReschedule(domain.Status(fresh.Status)); err != nil {
				return err
			}
			if !domain.FitsInDay(start, fresh.ServiceDuration) {
				return domain.Validation(domain.ErrPastEndOfDay)
			}

			existing, err := scheduledOn(ctx, tx, fresh.EmployeeName, date)
			if err != nil {
				return err
			}
			candidate := domain.NewInterval(start, fresh.ServiceDuration)
			if res := domain.FindConflicts(candidate, existing, fresh.ID); res.HasConflict() {
				return domain.Conflict(res.Reason())
			}

			from = fresh.AppointmentDate + " " + fresh.AppointmentTime
			if err := domain.MoveTo(fresh, date, start, uc.now()); err != nil {
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
		return nil, domain.Storage(err)
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    id.Username,
		Action:   audit.ActionAppointmentRescheduled,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{
			"from": from,
			"to":   ap.AppointmentDate + " " + ap.AppointmentTime,
		},
	})

	return ap, nil
}
