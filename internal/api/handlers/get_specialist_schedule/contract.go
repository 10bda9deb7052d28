package get_specialist_schedule

import (
	"context"

	"github.com/lumibook/booking-service/internal/domain"
	"github.com/lumibook/booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	ListBySpecialist(ctx context.Context, companyID, specialistID int64) (*models.WeekResponse, error)
}

type CompanyResolver interface {
	GetByDomain(ctx context.Context, domainName string) (*domain.Company, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
