package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/catalog"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memstore"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var (
	manager = auth.Identity{Username: "oyuna", Name: "Oyuna", Role: auth.RoleManager}
	tuul    = auth.Identity{Username: "tuul", Name: "Tuul", Role: auth.RoleEmployee}
	bold    = auth.Identity{Username: "bold", Name: "Bold", Role: auth.RoleEmployee}

	fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
)

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAuditor) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.events))
	for i, ev := range a.events {
		out[i] = ev.Action
	}
	return out
}

type engine struct {
	store   domain.Store
	dir     *auth.Directory
	auditor *recordingAuditor

	book       *BookAppointment
	transition *TransitionAppointment
	reschedule *RescheduleAppointment
	remove     *RemoveAppointment
	check      *CheckConflict
	list       *ListAppointments
	get        *GetAppointment
	avail      *GetAvailability
}

func newEngine(t *testing.T, store domain.Store) *engine {
	t.Helper()

	dir, err := auth.DemoDirectory("secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("DemoDirectory error: %v", err)
	}
	cat := catalog.Default()
	aud := &recordingAuditor{}
	now := func() time.Time { return fixedNow }
	sched := NewSchedule(store, nil)

	return &engine{
		store:      store,
		dir:        dir,
		auditor:    aud,
		book:       NewBookAppointment(sched, cat, dir, aud, now),
		transition: NewTransitionAppointment(sched, dir, aud, now),
		reschedule: NewRescheduleAppointment(sched, dir, aud, now),
		remove:     NewRemoveAppointment(store, dir, aud),
		check:      NewCheckConflict(store, cat, dir),
		list:       NewListAppointments(store, dir),
		get:        NewGetAppointment(store, dir),
		avail: NewGetAvailability(store, cat, dir, domain.BusinessHours{
			Open: 9 * 60, Close: 21 * 60, Step: 15,
		}),
	}
}

func newMemEngine(t *testing.T) *engine {
	return newEngine(t, memstore.New())
}

func bookingFor(employee, date, clock, service string) BookAppointmentInput {
	return BookAppointmentInput{
		CustomerName:  "Saraa",
		CustomerPhone: "99112233",
		ServiceType:   service,
		EmployeeName:  employee,
		Date:          date,
		Time:          clock,
	}
}

func mustBook(t *testing.T, e *engine, id auth.Identity, in BookAppointmentInput) uint {
	t.Helper()
	ap, err := e.book.Execute(context.Background(), id, in)
	if err != nil {
		t.Fatalf("book %s %s %s: %v", in.EmployeeName, in.Date, in.Time, err)
	}
	return ap.ID
}

// flakyStore fails WithinSchedule with ErrTxAborted for the first
// failures calls, then delegates.
type flakyStore struct {
	*memstore.Store

	mu       sync.Mutex
	failures int
	calls    int
}

func (s *flakyStore) WithinSchedule(
	ctx context.Context,
	employee, date string,
	fn func(ctx context.Context, tx domain.Store) error,
) error {
	s.mu.Lock()
	s.calls++
	fail := s.calls <= s.failures
	s.mu.Unlock()

	if fail {
		return domain.ErrTxAborted
	}
	return s.Store.WithinSchedule(ctx, employee, date, fn)
}

// slowStore delays every Get made inside a schedule scope, widening the
// window between reading a record and writing it back.
type slowStore struct {
	*memstore.Store
	delay time.Duration
}

func (s *slowStore) WithinSchedule(
	ctx context.Context,
	employee, date string,
	fn func(ctx context.Context, tx domain.Store) error,
) error {
	return s.Store.WithinSchedule(ctx, employee, date, func(ctx context.Context, tx domain.Store) error {
		return fn(ctx, slowTx{Store: tx, delay: s.delay})
	})
}

type slowTx struct {
	domain.Store
	delay time.Duration
}

func (t slowTx) Get(ctx context.Context, id uint) (*models.Appointment, error) {
	time.Sleep(t.delay)
	return t.Store.Get(ctx, id)
}

func (t slowTx) WithinSchedule(
	ctx context.Context,
	employee, date string,
	fn func(ctx context.Context, tx domain.Store) error,
) error {
	return t.Store.WithinSchedule(ctx, employee, date, func(ctx context.Context, tx domain.Store) error {
		return fn(ctx, slowTx{Store: tx, delay: t.delay})
	})
}
