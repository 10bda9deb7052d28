package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	bookingRepo "github.com/lumibook/booking-service/internal/infra/storage/booking"
	clientRepo "github.com/lumibook/booking-service/internal/infra/storage/client"
	companyRepo "github.com/lumibook/booking-service/internal/infra/storage/company"
	serviceRepo "github.com/lumibook/booking-service/internal/infra/storage/service"
	specialistRepo "github.com/lumibook/booking-service/internal/infra/storage/specialist"
	"github.com/lumibook/booking-service/internal/service/availability"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	companyRepo     CompanyRepository
	specialistRepo  SpecialistRepository
	clientRepo      ClientRepository
	serviceRepo     ServiceRepository
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
	clientRepo ClientRepository,
	serviceRepo ServiceRepository,
	guard AvailabilityGuard,
	txManager TransactionManager,
	defaultLocation *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		companyRepo:     companyRepo,
		specialistRepo:  specialistRepo,
		clientRepo:      clientRepo,
		serviceRepo:     serviceRepo,
		guard:           guard,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		defaultLocation: defaultLocation,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции,
// чтобы два конкурентных запроса на один слот не прошли проверку одновременно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: hostname=%s, client=%d, specialist=%d, services=%v, date=%s, time=%s",
		req.Hostname, req.ClientID, req.SpecialistID, req.ServiceIDs,
		req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем компанию-тенанта по доменному имени
	company, err := uc.companyRepo.GetByDomain(ctx, req.Hostname)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			uc.logger.Warn("CreateBooking: company not found for hostname=%s", req.Hostname)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("CreateBooking: failed to get company hostname=%s: %v", req.Hostname, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 3. Проверяем принадлежность специалиста и клиента компании
	if _, err := uc.specialistRepo.GetByID(ctx, req.SpecialistID, company.ID); err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			uc.logger.Warn("CreateBooking: specialist id=%d not found in company id=%d",
				req.SpecialistID, company.ID)
			return nil, ErrSpecialistNotFound
		}
		uc.logger.Error("CreateBooking: failed to get specialist id=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
	}

	if _, err := uc.clientRepo.GetByID(ctx, req.ClientID, company.ID); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateBooking: client id=%d not found in company id=%d", req.ClientID, company.ID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// 4. Получаем услуги и вычисляем конец интервала
	services, err := uc.serviceRepo.GetByIDs(ctx, company.ID, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: services %v not found in company id=%d", req.ServiceIDs, company.ID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get services %v: %v", req.ServiceIDs, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	durationMinutes := 0
	for _, service := range services {
		durationMinutes += service.DurationMin
	}
	if durationMinutes <= 0 {
		uc.logger.Warn("CreateBooking: non-positive total duration for services %v", req.ServiceIDs)
		return nil, fmt.Errorf("%w: total service duration must be positive", ErrInvalidInput)
	}

	endTime, err := req.StartTime.AddMinutes(durationMinutes)
	if err != nil {
		// Интервал перешагнул бы полночь - такая запись не принимается
		uc.logger.Warn("CreateBooking: interval crosses midnight: start=%s, duration=%d",
			req.StartTime, durationMinutes)
		return nil, fmt.Errorf("%w: booking may not cross midnight", ErrInvalidInput)
	}

	// 5. Проверяем, что дата и время не в прошлом (в таймзоне компании)
	now := uc.timeProvider.Now().In(company.Location(uc.defaultLocation))
	if err := validateBookingTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Проверка доступности и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.guard.EnsureAvailable(txCtx, company.ID, req.SpecialistID, req.Date,
			req.StartTime, endTime, nil); err != nil {
			if errors.Is(err, availability.ErrTimeSlotTaken) {
				uc.logger.Warn("CreateBooking: slot [%s, %s) taken: specialist=%d, date=%s",
					req.StartTime, endTime, req.SpecialistID, req.Date.Format(domain.DateFormat))
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			CompanyID:    company.ID,
			SpecialistID: req.SpecialistID,
			ClientID:     &req.ClientID,
			ServiceIDs:   req.ServiceIDs,
			Date:         req.Date,
			StartTime:    req.StartTime,
			EndTime:      endTime,
			Status:       domain.StatusPending,
			Comment:      req.Comment,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Exclusion constraint сработал раньше, чем проверка guard
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot taken at insert: specialist=%d, date=%s, time=%s",
					req.SpecialistID, req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

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
		Comment:      result.Comment,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}
