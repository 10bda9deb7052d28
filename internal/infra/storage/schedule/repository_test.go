package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumibook/booking-service/internal/domain"
	"github.com/lumibook/booking-service/pkg/types"
)

func TestUpsertReturnsGeneratedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	// Повторная установка того же дня проходит через ON CONFLICT DO UPDATE
	mock.ExpectQuery("INSERT INTO schedules").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(5), now, now))

	upserted, err := repo.Upsert(context.Background(), &domain.Schedule{
		CompanyID:    1,
		SpecialistID: 2,
		DayOfWeek:    1,
		StartTime:    types.TimeString("09:00"),
		EndTime:      types.TimeString("18:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), upserted.ID)
	assert.Equal(t, now, upserted.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBySpecialistAndDayNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT .+ FROM schedules").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "company_id", "specialist_id", "day_of_week",
			"start_time", "end_time", "created_at", "updated_at",
		}))

	_, err = repo.GetBySpecialistAndDay(context.Background(), 2, 1, 6)
	require.ErrorIs(t, err, ErrScheduleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByDayNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("DELETE FROM schedules").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.DeleteByDay(context.Background(), 2, 1, 3)
	require.ErrorIs(t, err, ErrScheduleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBySpecialistOrdersByDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM schedules WHERE .+ ORDER BY day_of_week ASC$`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "company_id", "specialist_id", "day_of_week",
			"start_time", "end_time", "created_at", "updated_at",
		}).
			AddRow(int64(1), int64(1), int64(2), 1, "09:00", "18:00", now, now).
			AddRow(int64(2), int64(1), int64(2), 2, "10:00", "16:00", now, now))

	schedules, err := repo.ListBySpecialist(context.Background(), 2, 1)

	require.NoError(t, err)
	require.Len(t, schedules, 2)
	assert.Equal(t, 1, schedules[0].DayOfWeek)
	assert.Equal(t, types.TimeString("10:00"), schedules[1].StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}
