package get_free_slots

import (
	"context"
	"time"

	"github.com/lumibook/booking-service/internal/domain"
)

// CompanyRepository интерфейс репозитория компаний
type CompanyRepository interface {
	// GetByDomain находит компанию-тенанта по доменному имени
	GetByDomain(ctx context.Context, domainName string) (*domain.Company, error)
}

// SpecialistRepository интерфейс репозитория специалистов
type SpecialistRepository interface {
	GetByID(ctx context.Context, id, companyID int64) (*domain.Specialist, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	// GetByIDs возвращает услуги компании в порядке запрошенных идентификаторов
	GetByIDs(ctx context.Context, companyID int64, ids []int64) ([]*domain.Service, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetBySpecialistAndDay(ctx context.Context, specialistID, companyID int64, dayOfWeek int) (*domain.Schedule, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// FindOccupying возвращает занимающие слот бронирования специалиста на дату
	FindOccupying(ctx context.Context, companyID, specialistID int64, date time.Time, excludeID *int64) ([]*domain.Booking, error)
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
