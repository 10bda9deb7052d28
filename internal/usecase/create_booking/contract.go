package create_booking

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

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id, companyID int64) (*domain.Client, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByIDs(ctx context.Context, companyID int64, ids []int64) ([]*domain.Service, error)
}

// AvailabilityGuard интерфейс проверки доступности интервала.
// Вызывается внутри той же транзакции, что и вставка бронирования.
type AvailabilityGuard interface {
	EnsureAvailable(ctx context.Context, companyID, specialistID int64, date time.Time, start, end types.TimeString, excludeBookingID *int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
