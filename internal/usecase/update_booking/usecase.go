package update_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	bookingRepo "github.com/lumibook/booking-service/internal/infra/storage/booking"
	companyRepo "github.com/lumibook/booking-service/internal/infra/storage/company"
	specialistRepo "github.com/lumibook/booking-service/internal/infra/storage/specialist"
	"github.com/lumibook/booking-service/internal/service/availability"
)

// UseCase use case для изменения бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	companyRepo     CompanyRepository
	specialistRepo  SpecialistRepository
	guard           AvailabilityGuard
	txManager       TransactionManager
	timeProvider    TimeProvider
	defaultLocation *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	companyRepo CompanyRepository,
	specialistRepo SpecialistRepository,
	guard AvailabilityGuard,
	txManager TransactionManager,
	defaultLocation *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		companyRepo:     companyRepo,
		specialistRepo:  specialistRepo,
		guard:           guard,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		defaultLocation: defaultLocation,
		logger:          logger,
	}
}

// Execute выполняет use case изменения бронирования.
// Перенос во времени (специалист, дата, время начала) повторно проходит
// проверку доступности в сериализуемой транзакции; само бронирование из
// проверки исключается, чтобы не конфликтовать со своим прежним интервалом.
// Изменение одного комментария проверку не запускает.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: hostname=%s, booking=%d", req.Hostname, req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем компанию-тенанта по доменному имени
	company, err := uc.companyRepo.GetByDomain(ctx, req.Hostname)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			uc.logger.Warn("UpdateBooking: company not found for hostname=%s", req.Hostname)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get company hostname=%s: %v", req.Hostname, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now().In(company.Location(uc.defaultLocation))

	// Переменная для хранения результата
	var result *domain.Booking

	// 3. Чтение, проверка доступности и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Чужое бронирование неотличимо от несуществующего
		if booking.CompanyID != company.ID {
			uc.logger.Warn("UpdateBooking: booking id=%d belongs to another company", req.BookingID)
			return ErrBookingNotFound
		}

		if !booking.CanBeUpdated() {
			uc.logger.Warn("UpdateBooking: booking id=%d in terminal status %s", booking.ID, booking.Status)
			return ErrBookingNotUpdatable
		}

		// 3.1. Собираем новое состояние
		newSpecialistID := booking.SpecialistID
		if req.SpecialistID != nil {
			newSpecialistID = *req.SpecialistID
		}
		newDate := booking.Date
		if req.Date != nil {
			newDate = *req.Date
		}
		newStart := booking.StartTime
		if req.StartTime != nil {
			newStart = *req.StartTime
		}

		// Длительность бронирования не меняется - сдвигается весь интервал
		newEnd, err := newStart.AddMinutes(booking.Interval().Duration())
		if err != nil {
			uc.logger.Warn("UpdateBooking: interval crosses midnight: start=%s, booking=%d",
				newStart, booking.ID)
			return fmt.Errorf("%w: booking may not cross midnight", ErrInvalidInput)
		}

		timeChanged := newSpecialistID != booking.SpecialistID ||
			!newDate.Equal(booking.Date) ||
			newStart != booking.StartTime

		// 3.2. Новый специалист должен принадлежать компании
		if req.SpecialistID != nil && *req.SpecialistID != booking.SpecialistID {
			if _, err := uc.specialistRepo.GetByID(txCtx, newSpecialistID, company.ID); err != nil {
				if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
					uc.logger.Warn("UpdateBooking: specialist id=%d not found in company id=%d",
						newSpecialistID, company.ID)
					return ErrSpecialistNotFound
				}
				uc.logger.Error("UpdateBooking: failed to get specialist id=%d: %v", newSpecialistID, err)
				return fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
			}
		}

		// 3.3. Перенос во времени проходит проверку доступности заново
		if timeChanged {
			if err := validateBookingTime(newDate, newStart, now); err != nil {
				uc.logger.Warn("UpdateBooking: booking time validation failed: %v", err)
				return err
			}

			if err := uc.guard.EnsureAvailable(txCtx, company.ID, newSpecialistID, newDate,
				newStart, newEnd, &booking.ID); err != nil {
				if errors.Is(err, availability.ErrTimeSlotTaken) {
					uc.logger.Warn("UpdateBooking: slot [%s, %s) taken: specialist=%d, date=%s",
						newStart, newEnd, newSpecialistID, newDate.Format(domain.DateFormat))
					return ErrSlotTaken
				}
				uc.logger.Error("UpdateBooking: availability check failed: %v", err)
				return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
			}
		}

		booking.SpecialistID = newSpecialistID
		booking.Date = newDate
		booking.StartTime = newStart
		booking.EndTime = newEnd
		if req.Comment != nil {
			booking.Comment = req.Comment
		}

		updated, err := uc.bookingRepo.Update(txCtx, booking)
		if err != nil {
			// Exclusion constraint сработал раньше, чем проверка guard
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("UpdateBooking: slot taken at update: booking=%d", booking.ID)
				return ErrSlotTaken
			}
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d", result.ID)

	return &Response{
		ID:           result.ID,
		CompanyID:    result.CompanyID,
		SpecialistID: result.SpecialistID,
		ClientID:     result.ClientID,
		ServiceIDs:   result.ServiceIDs,
		Date:         result.Date,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		Status:       string(result.Status),
		IsBlock:      result.IsBlock,
		Comment:      result.Comment,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}
