package repository

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db   *gorm.DB
	inTx bool
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// CRUD
// --------------------------------------------------

func (r *AppointmentGormRepository) Insert(
	ctx context.Context,
	ap *models.Appointment,
) (uint, error) {

	ap.ID = 0
	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		return 0, translate(err)
	}
	return ap.ID, nil
}

func (r *AppointmentGormRepository) Get(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	q := r.db.WithContext(ctx)
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ap models.Appointment
	if err := q.First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound(fmt.Sprintf("appointment %d not found", id))
		}
		return nil, translate(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(ap)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound(fmt.Sprintf("appointment %d not found", ap.ID))
	}
	return nil
}

func (r *AppointmentGormRepository) Delete(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound(fmt.Sprintf("appointment %d not found", id))
	}
	return nil
}

// --------------------------------------------------
// Query
// --------------------------------------------------

func (r *AppointmentGormRepository) Query(
	ctx context.Context,
	f domain.Filter,
) iter.Seq2[models.Appointment, error] {

	return func(yield func(models.Appointment, error) bool) {
		q := r.db.WithContext(ctx).Model(&models.Appointment{})

		if f.Employee != "" {
			q = q.Where("employee_name = ?", f.Employee)
		}
		if f.From != "" {
			q = q.Where("appointment_date >= ?", f.From)
		}
		if f.To != "" {
			q = q.Where("appointment_date <= ?", f.To)
		}
		if f.ExcludeID != 0 {
			q = q.Where("id <> ?", f.ExcludeID)
		}
		if len(f.Statuses) > 0 {
			statuses := make([]string, len(f.Statuses))
			for i, s := range f.Statuses {
				statuses[i] = string(s)
			}
			q = q.Where("status IN ?", statuses)
		}

		rows, err := q.
			Order("appointment_date ASC, start_minute ASC, id ASC").
			Rows()
		if err != nil {
			yield(models.Appointment{}, translate(err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var ap models.Appointment
			if err := r.db.ScanRows(rows, &ap); err != nil {
				yield(models.Appointment{}, translate(err))
				return
			}
			if !yield(ap, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(models.Appointment{}, translate(err))
		}
	}
}

// --------------------------------------------------
// Schedule transaction
// --------------------------------------------------

// WithinSchedule takes a transaction-scoped advisory lock on the
// employee/date pair, so concurrent check-and-insert sequences on the same
// calendar day run one after another.
func (r *AppointmentGormRepository) WithinSchedule(
	ctx context.Context,
	employee, date string,
	fn func(ctx context.Context, tx domain.Store) error,
) error {

	run := func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?))",
			domain.ScheduleKey(employee, date),
		).Error; err != nil {
			return translate(err)
		}
		return fn(ctx, &AppointmentGormRepository{db: tx, inTx: true})
	}

	if r.inTx {
		return run(r.db.WithContext(ctx))
	}

	err := r.db.WithContext(ctx).Transaction(run)
	if err == nil {
		return nil
	}
	return translate(err)
}

func (r *AppointmentGormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return domain.Storage(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return domain.Storage(err)
	}
	return nil
}

// translate maps driver failures onto domain kinds. Serialization failures,
// deadlocks and lock timeouts become ErrTxAborted so the engine can retry.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return fmt.Errorf("%w: %s", domain.ErrTxAborted, pgErr.Message)
		}
	}

	return domain.Storage(err)
}

// Compile-time check
var _ domain.Store = (*AppointmentGormRepository)(nil)
