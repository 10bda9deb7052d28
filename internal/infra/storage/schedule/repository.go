package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/lumibook/booking-service/internal/domain"
	"github.com/lumibook/booking-service/pkg/dbmetrics"
	"github.com/lumibook/booking-service/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL при нарушении unique constraint
// (второе расписание на тот же день недели)
const pgUniqueViolation = "23505"

var scheduleColumns = []string{
	"id",
	"company_id",
	"specialist_id",
	"day_of_week",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий еженедельного расписания специалистов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySpecialistAndDay возвращает рабочий интервал специалиста на день недели.
// На пару (специалист, день) существует не больше одной записи (unique index).
func (r *Repository) GetBySpecialistAndDay(ctx context.Context, specialistID, companyID int64, dayOfWeek int) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{
			"specialist_id": specialistID,
			"company_id":    companyID,
			"day_of_week":   dayOfWeek,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpecialistAndDay - build select query: %v", ErrBuildQuery, err)
	}

	schedule, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("%w: GetBySpecialistAndDay - scan schedule: %v", ErrScanRow, err)
	}

	return schedule, nil
}

// ListBySpecialist возвращает все рабочие интервалы специалиста,
// отсортированные по дню недели
func (r *Repository) ListBySpecialist(ctx context.Context, specialistID, companyID int64) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{
			"specialist_id": specialistID,
			"company_id":    companyID,
		}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySpecialist - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySpecialist - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySpecialist - scan row: %v", ErrScanRow, err)
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySpecialist - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// Upsert создает или обновляет рабочий интервал на день недели
func (r *Repository) Upsert(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedules").
		Columns("company_id", "specialist_id", "day_of_week", "start_time", "end_time").
		Values(
			schedule.CompanyID,
			schedule.SpecialistID,
			schedule.DayOfWeek,
			schedule.StartTime,
			schedule.EndTime,
		).
		Suffix(`ON CONFLICT (specialist_id, day_of_week) DO UPDATE
			SET start_time = EXCLUDED.start_time,
			    end_time = EXCLUDED.end_time,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDayAlreadyScheduled
		}
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// DeleteByDay удаляет рабочий интервал специалиста на день недели
func (r *Repository) DeleteByDay(ctx context.Context, specialistID, companyID int64, dayOfWeek int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedules").
		Where(squirrel.Eq{
			"specialist_id": specialistID,
			"company_id":    companyID,
			"day_of_week":   dayOfWeek,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByDay - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByDay - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByDay - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (*domain.Schedule, error) {
	var schedule domain.Schedule
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&schedule.ID,
		&schedule.CompanyID,
		&schedule.SpecialistID,
		&schedule.DayOfWeek,
		&schedule.StartTime,
		&schedule.EndTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return false
}
