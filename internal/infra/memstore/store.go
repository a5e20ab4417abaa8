// Package memstore is an in-process appointment store used for demo mode
// and tests. Data does not survive a restart.
package memstore

import (
	"context"
	"fmt"
	"iter"
	"sync"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Store struct {
	mu     sync.RWMutex
	rows   map[uint]models.Appointment
	nextID uint

	locks *keyedMutex
}

func New() *Store {
	return &Store{
		rows:  make(map[uint]models.Appointment),
		locks: newKeyedMutex(),
	}
}

var _ domain.Store = (*Store)(nil)

func (s *Store) Insert(ctx context.Context, ap *models.Appointment) (uint, error) {
	if err := ctx.Err(); err != nil {
		return 0, domain.Storage(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	ap.ID = s.nextID
	s.rows[ap.ID] = *ap
	return ap.ID, nil
}

func (s *Store) Get(ctx context.Context, id uint) (*models.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.Storage(err)
	}

	s.mu.RLock()
	ap, ok := s.rows[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.NotFound(fmt.Sprintf("appointment %d not found", id))
	}
	return &ap, nil
}

func (s *Store) Update(ctx context.Context, ap *models.Appointment) error {
	if err := ctx.Err(); err != nil {
		return domain.Storage(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[ap.ID]; !ok {
		return domain.NotFound(fmt.Sprintf("appointment %d not found", ap.ID))
	}
	s.rows[ap.ID] = *ap
	return nil
}

func (s *Store) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return domain.Storage(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return domain.NotFound(fmt.Sprintf("appointment %d not found", id))
	}
	delete(s.rows, id)
	return nil
}

// Query iterates over a snapshot taken when iteration starts.
func (s *Store) Query(ctx context.Context, f domain.Filter) iter.Seq2[models.Appointment, error] {
	return func(yield func(models.Appointment, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(models.Appointment{}, domain.Storage(err))
			return
		}

		s.mu.RLock()
		matched := make([]models.Appointment, 0, len(s.rows))
		for _, ap := range s.rows {
			if f.Matches(ap) {
				matched = append(matched, ap)
			}
		}
		s.mu.RUnlock()

		domain.SortChronologically(matched)
		for _, ap := range matched {
			if !yield(ap, nil) {
				return
			}
		}
	}
}

func (s *Store) WithinSchedule(
	ctx context.Context,
	employee, date string,
	fn func(ctx context.Context, tx domain.Store) error,
) error {
	key := domain.ScheduleKey(employee, date)
	if err := s.locks.Lock(ctx, key); err != nil {
		return domain.Storage(err)
	}
	defer s.locks.Unlock(key)

	return fn(ctx, s)
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Len reports the number of stored appointments.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}
