package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListAppointmentsInput struct {
	EmployeeName string
	From         string
	To           string
	Status       string
}

type ListAppointments struct {
	store domain.Store
	gate  Gate
}

func NewListAppointments(store domain.Store, gate Gate) *ListAppointments {
	return &ListAppointments{store: store, gate: gate}
}

// Execute returns appointments visible to id, ordered by date, time and id.
// Employees are confined to their own calendar.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	id auth.Identity,
	in ListAppointmentsInput,
) ([]models.Appointment, error) {

	f, err := ScopedFilter(uc.gate, id, in)
	if err != nil {
		return nil, err
	}

	aps, err := domain.Collect(uc.store.Query(ctx, f))
	if err != nil {
		return nil, domain.Storage(err)
	}
	return aps, nil
}

// ScopedFilter validates list input and narrows it to what id may read.
func ScopedFilter(gate Gate, id auth.Identity, in ListAppointmentsInput) (domain.Filter, error) {
	f := domain.Filter{Employee: strings.TrimSpace(in.EmployeeName)}

	if !id.IsManager() && f.Employee == "" {
		f.Employee = id.Name
	}
	if !gate.Authorize(id, auth.ActionRead, auth.Target{EmployeeName: f.Employee}) {
		return domain.Filter{}, denied("read " + f.Employee + "'s schedule")
	}

	if in.From != "" {
		d, err := domain.ParseDate(in.From)
		if err != nil {
			return domain.Filter{}, domain.Validation("from must be YYYY-MM-DD")
		}
		f.From = d
	}
	if in.To != "" {
		d, err := domain.ParseDate(in.To)
		if err != nil {
			return domain.Filter{}, domain.Validation("to must be YYYY-MM-DD")
		}
		f.To = d
	}
	if f.From != "" && f.To != "" && f.From > f.To {
		return domain.Filter{}, domain.Validation("from must not be after to")
	}

	if in.Status != "" {
		for _, raw := range strings.Split(in.Status, ",") {
			s, ok := domain.ParseStatus(raw)
			if !ok {
				return domain.Filter{}, domain.Validation("unknown status " + strings.TrimSpace(raw))
			}
			f.Statuses = append(f.Statuses, s)
		}
	}

	return f, nil
}

type GetAppointment struct {
	store domain.Store
	gate  Gate
}

func NewGetAppointment(store domain.Store, gate Gate) *GetAppointment {
	return &GetAppointment{store: store, gate: gate}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	id auth.Identity,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.store.Get(ctx, appointmentID)
	if err != nil {
		return nil, domain.Storage(concealMissing(id, err, "read this appointment"))
	}
	if !uc.gate.Authorize(id, auth.ActionRead, auth.Target{EmployeeName: ap.EmployeeName}) {
		return nil, denied("read this appointment")
	}
	return ap, nil
}
