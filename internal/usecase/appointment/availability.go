package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

type GetAvailabilityInput struct {
	EmployeeName string
	Date         string
	ServiceType  string
}

type GetAvailability struct {
	store   domain.Store
	catalog Catalog
	gate    Gate
	hours   domain.BusinessHours
}

func NewGetAvailability(
	store domain.Store,
	catalog Catalog,
	gate Gate,
	hours domain.BusinessHours,
) *GetAvailability {
	return &GetAvailability{
		store:   store,
		catalog: catalog,
		gate:    gate,
		hours:   hours,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	id auth.Identity,
	in GetAvailabilityInput,
) ([]domain.TimeSlot, error) {

	employee := strings.TrimSpace(in.EmployeeName)
	if !uc.gate.Authorize(id, auth.ActionRead, auth.Target{EmployeeName: employee}) {
		return nil, denied("read " + employee + "'s schedule")
	}
	if !uc.gate.IsEmployee(employee) {
		return nil, domain.Validation("unknown employee " + employee)
	}

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, domain.Validation("date must be YYYY-MM-DD")
	}

	service, err := uc.catalog.Lookup(in.ServiceType)
	if err != nil {
		return nil, domain.Validation("unknown service " + strings.TrimSpace(in.ServiceType))
	}

	existing, err := scheduledOn(ctx, uc.store, employee, date)
	if err != nil {
		return nil, domain.Storage(err)
	}

	busy := make([]domain.Interval, 0, len(existing))
	for _, ap := range existing {
		busy = append(busy, domain.IntervalOf(ap))
	}

	return domain.FreeSlots(uc.hours, service.DurationMin, busy), nil
}
