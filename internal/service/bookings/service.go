package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	bookingRepo "github.com/lumibook/booking-service/internal/infra/storage/booking"
	"github.com/lumibook/booking-service/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями компании
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID в рамках компании.
// Бронирование чужой компании неотличимо от несуществующего.
func (s *Service) GetByID(ctx context.Context, companyID, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for company=%d", id, companyID)

	booking, err := s.getCompanyBooking(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetCompanyBookings получает бронирования компании с фильтрацией
// по специалисту, дате, статусу и занятости слота
func (s *Service) GetCompanyBookings(ctx context.Context, req *models.GetCompanyBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCompanyBookings: fetching bookings for company=%d", req.CompanyID)

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCompanyBookings: invalid filter for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByCompanyWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCompanyBookings: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: GetCompanyBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCompanyBookings: successfully fetched %d bookings for company=%d",
		len(bookings), req.CompanyID)
	return models.FromDomainBookingList(bookings), nil
}

// GetBlockedTimes получает блокировки времени специалиста.
// date опционально сужает выборку до одного дня.
func (s *Service) GetBlockedTimes(ctx context.Context, companyID, specialistID int64, date *time.Time) (*models.BookingListResponse, error) {
	s.logger.Info("GetBlockedTimes: fetching blocks for company=%d, specialist=%d", companyID, specialistID)

	filter := domain.CompanyBookingsFilter{
		CompanyID:     companyID,
		SpecialistID:  &specialistID,
		Date:          date,
		OnlyOccupying: true,
		OnlyBlocks:    true,
	}

	blocks, err := s.bookingRepo.GetByCompanyWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBlockedTimes: repository error for specialist=%d: %v", specialistID, err)
		return nil, fmt.Errorf("%w: GetBlockedTimes - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBlockedTimes: successfully fetched %d blocks for specialist=%d",
		len(blocks), specialistID)
	return models.FromDomainBookingList(blocks), nil
}

// ChangeStatus переводит бронирование в новый статус жизненного цикла.
// Допустимые переходы: PENDING -> CONFIRMED | CANCELLED,
// CONFIRMED -> CANCELLED | COMPLETED. Терминальные статусы неизменяемы.
func (s *Service) ChangeStatus(ctx context.Context, companyID, bookingID int64, status string) (*models.BookingResponse, error) {
	s.logger.Info("ChangeStatus: updating booking id=%d to status=%s for company=%d",
		bookingID, status, companyID)

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(status)
	if err != nil {
		s.logger.Warn("ChangeStatus: invalid status=%s for booking id=%d", status, bookingID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	booking, err := s.getCompanyBooking(ctx, companyID, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("ChangeStatus: forbidden transition %s -> %s for booking id=%d",
			booking.Status, newStatus, bookingID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("ChangeStatus: booking id=%d not found during update", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("ChangeStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ChangeStatus - repository error: %v", ErrInternal, err)
	}

	booking.Status = newStatus

	s.logger.Info("ChangeStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(booking), nil
}

// getCompanyBooking читает бронирование и проверяет принадлежность компании
func (s *Service) getCompanyBooking(ctx context.Context, companyID, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("getCompanyBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getCompanyBooking: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if booking.CompanyID != companyID {
		s.logger.Warn("getCompanyBooking: booking id=%d belongs to another company", id)
		return nil, ErrBookingNotFound
	}

	return booking, nil
}
