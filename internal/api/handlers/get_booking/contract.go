package get_booking

import (
	"context"

	"github.com/lumibook/booking-service/internal/domain"
	"github.com/lumibook/booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	GetByID(ctx context.Context, companyID, id int64) (*models.BookingResponse, error)
}

type CompanyResolver interface {
	GetByDomain(ctx context.Context, domainName string) (*domain.Company, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
