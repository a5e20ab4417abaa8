package appointment

import (
	"context"
	"errors"
	"slices"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/catalog"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// COLLABORATORS
// ======================================================

type Catalog interface {
	Lookup(name string) (catalog.ServiceDefinition, error)
}

type Gate interface {
	Authorize(id auth.Identity, action auth.Action, target auth.Target) bool
	IsEmployee(name string) bool
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

// Locker guards a schedule key across processes. Optional.
type Locker interface {
	WithScheduleLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// ======================================================
// SCHEDULE SCOPE
// ======================================================

// Schedule runs check-and-write sequences atomically per employee and date.
type Schedule struct {
	store  domain.Store
	locker Locker
}

func NewSchedule(store domain.Store, locker Locker) *Schedule {
	return &Schedule{store: store, locker: locker}
}

// Run executes fn inside the atomic scope. A transaction abort is retried
// once with a fresh fn call; a second abort is returned as is.
func (s *Schedule) Run(
	ctx context.Context,
	employee, date string,
	fn func(ctx context.Context, tx domain.Store) error,
) error {
	return s.RunDays(ctx, employee, []string{date}, fn)
}

// RunDays is Run over several days of one employee's calendar. The scopes
// are taken in date order.
func (s *Schedule) RunDays(
	ctx context.Context,
	employee string,
	dates []string,
	fn func(ctx context.Context, tx domain.Store) error,
) error {

	days := slices.Clone(dates)
	slices.Sort(days)
	days = slices.Compact(days)

	err := s.attempt(ctx, employee, days, fn)
	if errors.Is(err, domain.ErrTxAborted) {
		err = s.attempt(ctx, employee, days, fn)
	}
	return err
}

func (s *Schedule) attempt(
	ctx context.Context,
	employee string,
	days []string,
	fn func(ctx context.Context, tx domain.Store) error,
) error {

	body := func(ctx context.Context) error {
		return within(ctx, s.store, employee, days, fn)
	}

	if s.locker == nil {
		return body(ctx)
	}
	return lockAll(ctx, s.locker, employee, days, body)
}

func within(
	ctx context.Context,
	store domain.Store,
	employee string,
	days []string,
	fn func(ctx context.Context, tx domain.Store) error,
) error {
	if len(days) == 1 {
		return store.WithinSchedule(ctx, employee, days[0], fn)
	}
	return store.WithinSchedule(ctx, employee, days[0], func(ctx context.Context, tx domain.Store) error {
		return within(ctx, tx, employee, days[1:], fn)
	})
}

func lockAll(
	ctx context.Context,
	locker Locker,
	employee string,
	days []string,
	fn func(ctx context.Context) error,
) error {
	if len(days) == 0 {
		return fn(ctx)
	}
	return locker.WithScheduleLock(ctx, domain.ScheduleKey(employee, days[0]), func(ctx context.Context) error {
		return lockAll(ctx, locker, employee, days[1:], fn)
	})
}

var errScopeMoved = errors.New("appointment left the locked schedule")

// OnAppointment reads the appointment, hands it to check, then runs fn
// inside the scope of the day it is on plus extra. fn receives the record
// re-read under that scope. If the record changed employee or day before
// the scope was taken, the whole sequence runs once more.
func (s *Schedule) OnAppointment(
	ctx context.Context,
	appointmentID uint,
	extra []string,
	check func(ap *models.Appointment) error,
	fn func(ctx context.Context, tx domain.Store, ap *models.Appointment) error,
) error {

	for range 2 {
		current, err := s.store.Get(ctx, appointmentID)
		if err != nil {
			return err
		}
		if err := check(current); err != nil {
			return err
		}

		days := append([]string{current.AppointmentDate}, extra...)
		err = s.RunDays(ctx, current.EmployeeName, days, func(ctx context.Context, tx domain.Store) error {
			fresh, err := tx.Get(ctx, appointmentID)
			if err != nil {
				return err
			}
			if fresh.EmployeeName != current.EmployeeName || fresh.AppointmentDate != current.AppointmentDate {
				return errScopeMoved
			}
			return fn(ctx, tx, fresh)
		})
		if !errors.Is(err, errScopeMoved) {
			return err
		}
	}
	return domain.Conflict("appointment was changed concurrently, try again")
}

// ======================================================
// HELPERS
// ======================================================

func denied(what string) error {
	return domain.Unauthorized("not allowed to " + what)
}

// concealMissing reports a missing record as a denial to callers limited to
// their own calendar, so they cannot tell which ids exist.
func concealMissing(id auth.Identity, err error, what string) error {
	if !id.IsManager() && domain.IsKind(err, domain.KindNotFound) {
		return denied(what)
	}
	return err
}

func scheduledOn(ctx context.Context, store domain.Store, employee, date string) ([]models.Appointment, error) {
	return domain.Collect(store.Query(ctx, domain.Filter{
		Employee: employee,
		From:     date,
		To:       date,
		Statuses: []domain.Status{domain.StatusScheduled},
	}))
}
