package dashboard

import (
	"context"
	"math"
	"testing"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memstore"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type gateFunc func(auth.Identity, auth.Action, auth.Target) bool

func (f gateFunc) Authorize(id auth.Identity, a auth.Action, t auth.Target) bool { return f(id, a, t) }

var (
	manager  = auth.Identity{Username: "oyuna", Name: "Oyuna", Role: auth.RoleManager}
	employee = auth.Identity{Username: "tuul", Name: "Tuul", Role: auth.RoleEmployee}
)

func insert(t *testing.T, s *memstore.Store, employee, date, service string, price float64, status domain.Status) {
	t.Helper()
	_, err := s.Insert(context.Background(), &models.Appointment{
		EmployeeName:    employee,
		AppointmentDate: date,
		ServiceType:     service,
		ServicePrice:    price,
		Status:          string(status),
	})
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestGetMetrics(t *testing.T) {
	s := memstore.New()
	insert(t, s, "Tuul", "2026-03-10", "Haircut", 35000, domain.StatusCompleted)
	insert(t, s, "Tuul", "2026-03-10", "Facial", 80000, domain.StatusCompleted)
	insert(t, s, "Tuul", "2026-03-11", "Haircut", 35000, domain.StatusCancelled)
	insert(t, s, "Bold", "2026-03-11", "Haircut", 35000, domain.StatusScheduled)
	insert(t, s, "Bold", "2026-03-12", "Massage", 100000, domain.StatusCompleted)
	insert(t, s, "Bold", "2026-04-01", "Massage", 100000, domain.StatusCompleted)

	uc := NewGetMetrics(s, gateFunc(auth.Authorize))
	m, err := uc.Execute(context.Background(), manager, "2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if m.Total != 5 || m.Completed != 3 || m.Cancelled != 1 || m.Scheduled != 1 {
		t.Fatalf("counts = %+v", m)
	}
	if !approx(m.CompletionRate, 0.6) || !approx(m.CancellationRate, 0.2) {
		t.Fatalf("rates = %v %v", m.CompletionRate, m.CancellationRate)
	}
	if m.RealizedRevenue != 215000 || m.ExpectedRevenue != 35000 {
		t.Fatalf("revenue = %v expected = %v", m.RealizedRevenue, m.ExpectedRevenue)
	}
	if !approx(m.AverageTicket, 215000.0/3) {
		t.Fatalf("average ticket = %v", m.AverageTicket)
	}

	if len(m.Employees) != 2 || m.Employees[0].Name != "Tuul" || m.Employees[0].Revenue != 115000 {
		t.Fatalf("employees = %+v", m.Employees)
	}
	if !approx(m.Employees[0].CompletionRate, 2.0/3) {
		t.Fatalf("Tuul completion = %v", m.Employees[0].CompletionRate)
	}

	if m.Services[0].Name != "Haircut" || m.Services[0].Count != 3 || m.Services[0].Revenue != 35000 {
		t.Fatalf("services = %+v", m.Services)
	}

	if len(m.PerDay) != 3 || m.PerDay[0].Date != "2026-03-10" || m.PerDay[0].Count != 2 {
		t.Fatalf("per day = %+v", m.PerDay)
	}
}

func TestGetMetrics_Empty(t *testing.T) {
	uc := NewGetMetrics(memstore.New(), gateFunc(auth.Authorize))
	m, err := uc.Execute(context.Background(), manager, "", "")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if m.Total != 0 || m.CompletionRate != 0 || m.AverageTicket != 0 {
		t.Fatalf("metrics = %+v", m)
	}
	if m.Employees == nil || m.Services == nil || m.PerDay == nil {
		t.Fatalf("slices must encode as []")
	}
}

func TestGetMetrics_ManagerOnly(t *testing.T) {
	uc := NewGetMetrics(memstore.New(), gateFunc(auth.Authorize))
	if _, err := uc.Execute(context.Background(), employee, "", ""); !domain.IsKind(err, domain.KindUnauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}

func TestGetMetrics_InvalidRange(t *testing.T) {
	uc := NewGetMetrics(memstore.New(), gateFunc(auth.Authorize))
	if _, err := uc.Execute(context.Background(), manager, "2026-03-31", "2026-03-01"); !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}
