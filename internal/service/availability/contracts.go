package availability

import (
	"context"
	"time"

	"github.com/lumibook/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// FindOccupying возвращает занимающие слот бронирования специалиста
	// на дату в рамках компании; excludeID исключает обновляемую бронь
	FindOccupying(ctx context.Context, companyID, specialistID int64, date time.Time, excludeID *int64) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
