package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumibook/booking-service/internal/domain"
	"github.com/lumibook/booking-service/pkg/dbmetrics"
	"github.com/lumibook/booking-service/pkg/ptr"
	"github.com/lumibook/booking-service/pkg/types"
)

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "company_id", "specialist_id", "client_id", "date",
		"start_time", "end_time", "status", "is_block", "comment",
		"created_at", "updated_at",
	})
}

func TestCreateReturnsGeneratedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(42), now, now))
	mock.ExpectExec("DELETE FROM booking_services").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO booking_services").
		WillReturnResult(sqlmock.NewResult(0, 2))

	created, err := repo.Create(context.Background(), &domain.Booking{
		CompanyID:    1,
		SpecialistID: 2,
		ClientID:     ptr.Ptr(int64(3)),
		ServiceIDs:   []int64{10, 11},
		Date:         time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
		StartTime:    types.TimeString("10:00"),
		EndTime:      types.TimeString("11:00"),
		Status:       domain.StatusPending,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBlockSkipsServicesInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), time.Now(), time.Now()))
	// Для блокировки без услуг insert в booking_services не выполняется
	mock.ExpectExec("DELETE FROM booking_services").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = repo.Create(context.Background(), &domain.Booking{
		CompanyID:    1,
		SpecialistID: 2,
		Date:         time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
		StartTime:    types.TimeString("13:00"),
		EndTime:      types.TimeString("14:00"),
		Status:       domain.StatusConfirmed,
		IsBlock:      true,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExclusionViolationMapsToSlotTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23P01"})

	_, err = repo.Create(context.Background(), &domain.Booking{
		CompanyID:    1,
		SpecialistID: 2,
		Date:         time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
		StartTime:    types.TimeString("10:00"),
		EndTime:      types.TimeString("11:00"),
		Status:       domain.StatusPending,
	})

	require.ErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateExclusionViolationMapsToSlotTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("UPDATE bookings").
		WillReturnError(&pq.Error{Code: "23P01"})

	_, err = repo.Update(context.Background(), &domain.Booking{
		ID:           42,
		CompanyID:    1,
		SpecialistID: 2,
		Date:         time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
		StartTime:    types.TimeString("12:00"),
		EndTime:      types.TimeString("13:00"),
	})

	require.ErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOccupyingWithoutTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	// Вне транзакции строки не блокируются
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE .+ ORDER BY start_time ASC$`).
		WillReturnRows(bookingRows().AddRow(
			int64(1), int64(1), int64(2), nil,
			time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
			"10:00", "11:00", "PENDING", false, nil, now, now,
		))
	mock.ExpectQuery("SELECT booking_id, service_id FROM booking_services").
		WillReturnRows(sqlmock.NewRows([]string{"booking_id", "service_id"}).
			AddRow(int64(1), int64(10)))

	bookings, err := repo.FindOccupying(context.Background(), 1, 2,
		time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC), nil)

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, types.TimeString("10:00"), bookings[0].StartTime)
	assert.Equal(t, []int64{10}, bookings[0].ServiceIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOccupyingLocksRowsInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM bookings .+ FOR UPDATE$`).
		WillReturnRows(bookingRows())
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	ctx := dbmetrics.WithTx(context.Background(), tx)
	bookings, err := repo.FindOccupying(ctx, 1, 2,
		time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOccupyingExcludesBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	// Исключение самого обновляемого бронирования попадает в запрос
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE .+ id <> .+ ORDER BY start_time ASC$`).
		WillReturnRows(bookingRows())

	bookings, err := repo.FindOccupying(context.Background(), 1, 2,
		time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC), ptr.Ptr(int64(42)))

	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateStatus(context.Background(), 42, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateStatus(context.Background(), 999, domain.StatusConfirmed)
	require.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
