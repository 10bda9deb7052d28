package change_booking_status

import (
	"context"

	"github.com/lumibook/booking-service/internal/domain"
	"github.com/lumibook/booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	ChangeStatus(ctx context.Context, companyID, bookingID int64, status string) (*models.BookingResponse, error)
}

type CompanyResolver interface {
	GetByDomain(ctx context.Context, domainName string) (*domain.Company, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
