package get_blocked_times

import (
	"context"
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	"github.com/lumibook/booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	GetBlockedTimes(ctx context.Context, companyID, specialistID int64, date *time.Time) (*models.BookingListResponse, error)
}

type CompanyResolver interface {
	GetByDomain(ctx context.Context, domainName string) (*domain.Company, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
