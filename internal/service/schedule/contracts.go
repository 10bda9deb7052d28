package schedule

import (
	"context"

	"github.com/lumibook/booking-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Upsert(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	DeleteByDay(ctx context.Context, specialistID, companyID int64, dayOfWeek int) error
	ListBySpecialist(ctx context.Context, specialistID, companyID int64) ([]*domain.Schedule, error)
}

// SpecialistRepository интерфейс репозитория специалистов
type SpecialistRepository interface {
	GetByID(ctx context.Context, id, companyID int64) (*domain.Specialist, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
