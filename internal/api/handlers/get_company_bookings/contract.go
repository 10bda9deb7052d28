package get_company_bookings

import (
	"context"

	"github.com/lumibook/booking-service/internal/domain"
	"github.com/lumibook/booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	GetCompanyBookings(ctx context.Context, req *models.GetCompanyBookingsRequest) (*models.BookingListResponse, error)
}

type CompanyResolver interface {
	GetByDomain(ctx context.Context, domainName string) (*domain.Company, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
