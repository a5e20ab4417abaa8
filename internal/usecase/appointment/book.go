package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	CustomerName  string
	CustomerPhone string

	ServiceType  string
	EmployeeName string

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	schedule *Schedule
	catalog  Catalog
	gate     Gate
	audit    Auditor
	now      func() time.Time
}

func NewBookAppointment(
	schedule *Schedule,
	catalog Catalog,
	gate Gate,
	audit Auditor,
	now func() time.Time,
) *BookAppointment {
	return &BookAppointment{
		schedule: schedule,
		catalog:  catalog,
		gate:     gate,
		audit:    audit,
		now:      now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	id auth.Identity,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	employee := strings.TrimSpace(in.EmployeeName)

	// --------------------------------------------------
	// Authorization
	// --------------------------------------------------
	if !uc.gate.Authorize(id, auth.ActionBook, auth.Target{EmployeeName: employee}) {
		return nil, denied("book for " + employee)
	}

	// --------------------------------------------------
	// Input
	// --------------------------------------------------
	name := strings.TrimSpace(in.CustomerName)
	phone := strings.TrimSpace(in.CustomerPhone)

	if name == "" {
		return nil, domain.Validation("customer name is required")
	}
	if !validators.IsPhoneValid(phone) {
		return nil, domain.Validation("customer phone is invalid")
	}

	service, err := uc.catalog.Lookup(in.ServiceType)
	if err != nil {
		return nil, domain.Validation("unknown service " + strings.TrimSpace(in.ServiceType))
	}

	if !uc.gate.IsEmployee(employee) {
		return nil, domain.Validation("unknown employee " + employee)
	}

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, domain.Validation("date must be YYYY-MM-DD")
	}
	start, err := domain.ParseClock(in.Time)
	if err != nil {
		return nil, domain.Validation("time must be HH:MM")
	}

	if !domain.FitsInDay(start, service.DurationMin) {
		return nil, domain.Validation(domain.ErrPastEndOfDay)
	}

	candidate := domain.NewInterval(start, service.DurationMin)

	// --------------------------------------------------
	// Conflict check + insert
	// --------------------------------------------------
	var ap *models.Appointment

	err = uc.schedule.Run(ctx, employee, date, func(ctx context.Context, tx domain.Store) error {
		existing, err := scheduledOn(ctx, tx, employee, date)
		if err != nil {
			return err
		}

		if res := domain.FindConflicts(candidate, existing, 0); res.HasConflict() {
			uc.audit.Dispatch(audit.Event{
				Actor:    id.Username,
				Action:   audit.ActionAppointmentConflict,
				Entity:   "appointment",
				EntityID: &res.First().ID,
				Metadata: map[string]string{
					"employee": employee,
					"date":     date,
					"time":     domain.FormatClock(start),
				},
			})
			return domain.Conflict(res.Reason())
		}

		now := uc.now()
		ap = &models.Appointment{
			CustomerName:    name,
			CustomerPhone:   phone,
			ServiceType:     service.Name,
			ServiceDuration: service.DurationMin,
			ServicePrice:    service.Price,
			AppointmentDate: date,
			AppointmentTime: domain.FormatClock(start),
			StartMinute:     candidate.Start,
			EndMinute:       candidate.End,
			EmployeeName:    employee,
			Status:          string(domain.InitialStatus()),
			Notes:           strings.TrimSpace(in.Notes),
			CreatedBy:       id.Username,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		_, err = tx.Insert(ctx, ap)
		return err
	})
	if err != nil {
		return nil, domain.Storage(err)
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Actor:    id.Username,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
