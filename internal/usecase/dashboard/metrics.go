package dashboard

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

// ======================================================
// OUTPUT
// ======================================================

type Metrics struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`

	CompletionRate   float64 `json:"completion_rate"`
	CancellationRate float64 `json:"cancellation_rate"`

	RealizedRevenue float64 `json:"realized_revenue"`
	ExpectedRevenue float64 `json:"expected_revenue"`
	AverageTicket   float64 `json:"average_ticket"`

	Employees []EmployeeMetrics `json:"employees"`
	Services  []ServiceMetrics  `json:"services"`
	PerDay    []DayMetrics      `json:"per_day"`
}

type EmployeeMetrics struct {
	Name           string  `json:"name"`
	Total          int     `json:"total"`
	Scheduled      int     `json:"scheduled"`
	Completed      int     `json:"completed"`
	Cancelled      int     `json:"cancelled"`
	Revenue        float64 `json:"revenue"`
	CompletionRate float64 `json:"completion_rate"`
}

type ServiceMetrics struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type DayMetrics struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ======================================================
// USE CASE
// ======================================================

type Gate interface {
	Authorize(id auth.Identity, action auth.Action, target auth.Target) bool
}

type GetMetrics struct {
	store domain.Store
	gate  Gate
}

func NewGetMetrics(store domain.Store, gate Gate) *GetMetrics {
	return &GetMetrics{store: store, gate: gate}
}

// Execute aggregates every appointment dated within [from, to]. Empty
// bounds are open. Revenue counts completed bookings only; scheduled ones
// feed ExpectedRevenue.
func (uc *GetMetrics) Execute(
	ctx context.Context,
	id auth.Identity,
	from, to string,
) (*Metrics, error) {

	if !uc.gate.Authorize(id, auth.ActionMetrics, auth.Target{}) {
		return nil, domain.Unauthorized("not allowed to view metrics")
	}

	f := domain.Filter{}
	if from != "" {
		d, err := domain.ParseDate(from)
		if err != nil {
			return nil, domain.Validation("from must be YYYY-MM-DD")
		}
		f.From = d
	}
	if to != "" {
		d, err := domain.ParseDate(to)
		if err != nil {
			return nil, domain.Validation("to must be YYYY-MM-DD")
		}
		f.To = d
	}
	if f.From != "" && f.To != "" && f.From > f.To {
		return nil, domain.Validation("from must not be after to")
	}

	m := &Metrics{From: f.From, To: f.To}
	employees := map[string]*EmployeeMetrics{}
	services := map[string]*ServiceMetrics{}
	days := map[string]int{}

	for ap, err := range uc.store.Query(ctx, f) {
		if err != nil {
			return nil, domain.Storage(err)
		}

		em := employees[ap.EmployeeName]
		if em == nil {
			em = &EmployeeMetrics{Name: ap.EmployeeName}
			employees[ap.EmployeeName] = em
		}
		sm := services[ap.ServiceType]
		if sm == nil {
			sm = &ServiceMetrics{Name: ap.ServiceType}
			services[ap.ServiceType] = sm
		}

		m.Total++
		em.Total++
		sm.Count++
		days[ap.AppointmentDate]++

		switch domain.Status(ap.Status) {
		case domain.StatusScheduled:
			m.Scheduled++
			em.Scheduled++
			m.ExpectedRevenue += ap.ServicePrice
		case domain.StatusCompleted:
			m.Completed++
			em.Completed++
			m.RealizedRevenue += ap.ServicePrice
			em.Revenue += ap.ServicePrice
			sm.Revenue += ap.ServicePrice
		case domain.StatusCancelled:
			m.Cancelled++
			em.Cancelled++
		}
	}

	m.CompletionRate = ratio(m.Completed, m.Total)
	m.CancellationRate = ratio(m.Cancelled, m.Total)
	if m.Completed > 0 {
		m.AverageTicket = m.RealizedRevenue / float64(m.Completed)
	}

	m.Employees = make([]EmployeeMetrics, 0, len(employees))
	for _, em := range employees {
		em.CompletionRate = ratio(em.Completed, em.Total)
		m.Employees = append(m.Employees, *em)
	}
	sort.Slice(m.Employees, func(i, j int) bool {
		a, b := m.Employees[i], m.Employees[j]
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return a.Name < b.Name
	})

	m.Services = make([]ServiceMetrics, 0, len(services))
	for _, sm := range services {
		m.Services = append(m.Services, *sm)
	}
	sort.Slice(m.Services, func(i, j int) bool {
		a, b := m.Services[i], m.Services[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})

	m.PerDay = make([]DayMetrics, 0, len(days))
	for d, n := range days {
		m.PerDay = append(m.PerDay, DayMetrics{Date: d, Count: n})
	}
	sort.Slice(m.PerDay, func(i, j int) bool { return m.PerDay[i].Date < m.PerDay[j].Date })

	return m, nil
}

func ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}
