package appointment

import (
	"context"
	"iter"
	"sort"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Filter predicates are combined with AND. Zero values match everything.
type Filter struct {
	Employee  string
	From      string // inclusive YYYY-MM-DD
	To        string // inclusive YYYY-MM-DD
	Statuses  []Status
	ExcludeID uint
}

func (f Filter) Matches(ap models.Appointment) bool {
	if f.Employee != "" && ap.EmployeeName != f.Employee {
		return false
	}
	if f.From != "" && ap.AppointmentDate < f.From {
		return false
	}
	if f.To != "" && ap.AppointmentDate > f.To {
		return false
	}
	if f.ExcludeID != 0 && ap.ID == f.ExcludeID {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if string(s) == ap.Status {
			return true
		}
	}
	return false
}

// Store owns appointment persistence.
type Store interface {
	Insert(ctx context.Context, ap *models.Appointment) (uint, error)
	Get(ctx context.Context, id uint) (*models.Appointment, error)
	Update(ctx context.Context, ap *models.Appointment) error
	Delete(ctx context.Context, id uint) error

	// Query yields matches ordered by date, start time and id.
	Query(ctx context.Context, f Filter) iter.Seq2[models.Appointment, error]

	// WithinSchedule runs fn atomically with respect to every other
	// WithinSchedule call for the same employee and date.
	WithinSchedule(ctx context.Context, employee, date string, fn func(ctx context.Context, tx Store) error) error

	Ping(ctx context.Context) error
}

func ScheduleKey(employee, date string) string {
	return employee + "|" + date
}

// Collect drains a query into a slice, stopping at the first error.
func Collect(seq iter.Seq2[models.Appointment, error]) ([]models.Appointment, error) {
	out := []models.Appointment{}
	for ap, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, ap)
	}
	return out, nil
}

func SortChronologically(aps []models.Appointment) {
	sort.SliceStable(aps, func(i, j int) bool {
		a, b := aps[i], aps[j]
		if a.AppointmentDate != b.AppointmentDate {
			return a.AppointmentDate < b.AppointmentDate
		}
		if a.StartMinute != b.StartMinute {
			return a.StartMinute < b.StartMinute
		}
		return a.ID < b.ID
	})
}
