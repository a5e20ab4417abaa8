package appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	DateLayout    = "2006-01-02"
	ClockLayout   = "15:04"
	MinutesPerDay = 24 * 60

	ErrPastEndOfDay = "appointment must end by 24:00 on its date"
)

// ParseDate validates a calendar date and returns it in canonical form.
func ParseDate(s string) (string, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return d.Format(DateLayout), nil
}

// ParseClock returns minutes since midnight for an HH:MM string.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// FitsInDay reports whether [start, start+duration) stays on its own date.
func FitsInDay(start, duration int) bool {
	return start >= 0 && duration > 0 && start+duration <= MinutesPerDay
}

// Interval is a half-open occupied range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

func NewInterval(start, duration int) Interval {
	return Interval{Start: start, End: start + duration}
}

func IntervalOf(ap models.Appointment) Interval {
	return NewInterval(ap.StartMinute, ap.ServiceDuration)
}

// Overlaps uses strict inequality on both ends, so back-to-back ranges do
// not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// ConflictResult lists every scheduled appointment a candidate overlaps.
type ConflictResult struct {
	Conflicts []models.Appointment `json:"conflicts"`
}

func (r ConflictResult) HasConflict() bool {
	return len(r.Conflicts) > 0
}

func (r ConflictResult) First() *models.Appointment {
	if len(r.Conflicts) == 0 {
		return nil
	}
	return &r.Conflicts[0]
}

func (r ConflictResult) Reason() string {
	first := r.First()
	if first == nil {
		return ""
	}
	return "time conflict with existing appointment at " + first.AppointmentTime
}

// FindConflicts checks candidate against the appointments of one employee
// on one date. Only scheduled records occupy time.
func FindConflicts(candidate Interval, existing []models.Appointment, excludeID uint) ConflictResult {
	var out ConflictResult
	for _, ap := range existing {
		if ap.Status != string(StatusScheduled) {
			continue
		}
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if candidate.Overlaps(IntervalOf(ap)) {
			out.Conflicts = append(out.Conflicts, ap)
		}
	}
	return out
}
