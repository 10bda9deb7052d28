package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/lumibook/booking-service/internal/domain"
	"github.com/lumibook/booking-service/pkg/dbmetrics"
	"github.com/lumibook/booking-service/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL при нарушении exclusion constraint
// (пересечение интервалов занимающих бронирований)
const pgExclusionViolation = "23P01"

var bookingColumns = []string{
	"id",
	"company_id",
	"specialist_id",
	"client_id",
	"date",
	"start_time",
	"end_time",
	"status",
	"is_block",
	"comment",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование и привязывает к нему услуги.
// Вызывается только внутри сериализуемой транзакции (см. usecase создания):
// проверка доступности слота и вставка должны быть одной единицей работы.
// Если конкурирующая вставка всё же прошла проверку одновременно с нами,
// exclusion constraint БД отклонит вторую вставку - возвращаем ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"company_id",
			"specialist_id",
			"client_id",
			"date",
			"start_time",
			"end_time",
			"status",
			"is_block",
			"comment",
		).
		Values(
			booking.CompanyID,
			booking.SpecialistID,
			booking.ClientID,
			booking.Date,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.IsBlock,
			booking.Comment,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if err := r.replaceServices(ctx, executor, booking.ID, booking.ServiceIDs); err != nil {
		return nil, err
	}

	return booking, nil
}

// GetByID получает бронирование по ID вместе со списком услуг
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	if err := r.loadServices(ctx, executor, []*domain.Booking{booking}); err != nil {
		return nil, err
	}

	return booking, nil
}

// Update обновляет изменяемые поля бронирования и перепривязывает услуги
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("specialist_id", booking.SpecialistID).
		Set("client_id", booking.ClientID).
		Set("date", booking.Date).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("comment", booking.Comment).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID, "company_id": booking.CompanyID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		if isExclusionViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}
	booking.UpdatedAt = updatedAt.Time

	if err := r.replaceServices(ctx, executor, booking.ID, booking.ServiceIDs); err != nil {
		return nil, err
	}

	return booking, nil
}

// UpdateStatus обновляет статус бронирования.
// Валидация перехода статусов выполняется на уровне сервиса.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// FindOccupying получает занимающие слот бронирования (pending/confirmed)
// специалиста на конкретную дату в рамках компании, по возрастанию времени.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы конкурирующая
// проверка доступности дождалась нашего коммита.
// excludeID исключает из выборки само обновляемое бронирование.
func (r *Repository) FindOccupying(
	ctx context.Context,
	companyID, specialistID int64,
	date time.Time,
	excludeID *int64,
) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	occupying := make([]string, len(domain.OccupyingStatuses))
	for i, s := range domain.OccupyingStatuses {
		occupying[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"company_id":    companyID,
			"specialist_id": specialistID,
		}).
		Where(squirrel.Expr("date = ?::date", date.Format(domain.DateFormat))).
		Where(squirrel.Eq{"status": occupying}).
		OrderBy("start_time ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOccupying - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOccupying - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadServices(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// GetByCompanyWithFilter получает бронирования компании с фильтрацией
// по специалисту, дате, статусу, занятости слота и признаку блокировки
func (r *Repository) GetByCompanyWithFilter(ctx context.Context, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"company_id": filter.CompanyID})

	if filter.SpecialistID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"specialist_id": *filter.SpecialistID})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("date = ?::date", filter.Date.Format(domain.DateFormat)))
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.OnlyOccupying {
		occupying := make([]string, len(domain.OccupyingStatuses))
		for i, s := range domain.OccupyingStatuses {
			occupying[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": occupying})
	}

	if filter.OnlyBlocks {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_block": true})
	}

	// Для конкретной даты сортируем по времени, иначе - сначала новые
	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadServices(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// replaceServices перепривязывает услуги бронирования
func (r *Repository) replaceServices(ctx context.Context, executor DBExecutor, bookingID int64, serviceIDs []int64) error {
	query, args, err := psqlbuilder.Delete("booking_services").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceServices - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceServices - execute delete: %v", ErrExecQuery, err)
	}

	if len(serviceIDs) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("booking_services").Columns("booking_id", "service_id")
	for _, serviceID := range serviceIDs {
		insertBuilder = insertBuilder.Values(bookingID, serviceID)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceServices - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceServices - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// loadServices дозагружает ID услуг для выбранных бронирований одним запросом
func (r *Repository) loadServices(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Booking, len(bookings))
	ids := make([]int64, len(bookings))
	for i, b := range bookings {
		byID[b.ID] = b
		ids[i] = b.ID
	}

	query := `SELECT booking_id, service_id FROM booking_services WHERE booking_id = ANY($1) ORDER BY service_id ASC`

	rows, err := executor.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("%w: loadServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID, serviceID int64
		if err := rows.Scan(&bookingID, &serviceID); err != nil {
			return fmt.Errorf("%w: loadServices - scan row: %v", ErrScanRow, err)
		}
		if b, ok := byID[bookingID]; ok {
			b.ServiceIDs = append(b.ServiceIDs, serviceID)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadServices - rows error: %v", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CompanyID,
		&booking.SpecialistID,
		&booking.ClientID,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.IsBlock,
		&booking.Comment,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgExclusionViolation
	}
	return false
}
