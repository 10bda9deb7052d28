package block_time

import (
	"context"
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	"github.com/lumibook/booking-service/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CompanyRepository интерфейс репозитория компаний
type CompanyRepository interface {
	GetByDomain(ctx context.Context, domainName string) (*domain.Company, error)
}

// SpecialistRepository интерфейс репозитория специалистов
type SpecialistRepository interface {
	GetByID(ctx context.Context, id, companyID int64) (*domain.Specialist, error)
}

// AvailabilityGuard интерфейс проверки доступности интервала
type AvailabilityGuard interface {
	EnsureAvailable(ctx context.Context, companyID, specialistID int64, date time.Time, start, end types.TimeString, excludeBookingID *int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
