package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

type CheckConflictInput struct {
	EmployeeName string
	Date         string
	Time         string

	// DurationMin wins over ServiceType when positive.
	DurationMin int
	ServiceType string

	ExcludeID uint
}

type CheckConflict struct {
	store   domain.Store
	catalog Catalog
	gate    Gate
}

func NewCheckConflict(store domain.Store, catalog Catalog, gate Gate) *CheckConflict {
	return &CheckConflict{store: store, catalog: catalog, gate: gate}
}

// Execute reports every scheduled appointment the candidate would overlap.
// It never writes.
func (uc *CheckConflict) Execute(
	ctx context.Context,
	id auth.Identity,
	in CheckConflictInput,
) (domain.ConflictResult, error) {

	employee := strings.TrimSpace(in.EmployeeName)
	if !uc.gate.Authorize(id, auth.ActionRead, auth.Target{EmployeeName: employee}) {
		return domain.ConflictResult{}, denied("read " + employee + "'s schedule")
	}
	if !uc.gate.IsEmployee(employee) {
		return domain.ConflictResult{}, domain.Validation("unknown employee " + employee)
	}

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return domain.ConflictResult{}, domain.Validation("date must be YYYY-MM-DD")
	}
	start, err := domain.ParseClock(in.Time)
	if err != nil {
		return domain.ConflictResult{}, domain.Validation("time must be HH:MM")
	}

	duration := in.DurationMin
	if duration <= 0 {
		service, err := uc.catalog.Lookup(in.ServiceType)
		if err != nil {
			return domain.ConflictResult{}, domain.Validation("duration or a known service is required")
		}
		duration = service.DurationMin
	}

	existing, err := scheduledOn(ctx, uc.store, employee, date)
	if err != nil {
		return domain.ConflictResult{}, domain.Storage(err)
	}

	return domain.FindConflicts(domain.NewInterval(start, duration), existing, in.ExcludeID), nil
}
