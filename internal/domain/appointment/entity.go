package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.UpdatedAt = now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	ap.UpdatedAt = now
	return nil
}

// Transition applies one of the two allowed exits from scheduled.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	switch to {
	case StatusCompleted:
		return Complete(ap, now)
	case StatusCancelled:
		return Cancel(ap, now)
	default:
		return Validation("status must be completed or cancelled")
	}
}

// MoveTo places the appointment at a new start on a new date, keeping its
// frozen duration.
func MoveTo(ap *models.Appointment, date string, start int, now time.Time) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}
	if !FitsInDay(start, ap.ServiceDuration) {
		return Validation(ErrPastEndOfDay)
	}

	ap.AppointmentDate = date
	ap.AppointmentTime = FormatClock(start)
	ap.StartMinute = start
	ap.EndMinute = start + ap.ServiceDuration
	ap.UpdatedAt = now
	return nil
}
