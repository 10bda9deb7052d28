package delete_schedule

import (
	"context"

	"github.com/lumibook/booking-service/internal/domain"
)

type ScheduleService interface {
	DeleteDay(ctx context.Context, companyID, specialistID int64, dayOfWeek int) error
}

type CompanyResolver interface {
	GetByDomain(ctx context.Context, domainName string) (*domain.Company, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
