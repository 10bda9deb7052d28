package block_time

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumibook/booking-service/internal/domain"
	bookingRepo "github.com/lumibook/booking-service/internal/infra/storage/booking"
	companyRepo "github.com/lumibook/booking-service/internal/infra/storage/company"
	specialistRepo "github.com/lumibook/booking-service/internal/infra/storage/specialist"
	"github.com/lumibook/booking-service/internal/service/availability"
)

// UseCase use case для блокировки времени специалистом.
// Блокировка - это занимающее бронирование без клиента и услуг: она проходит
// тот же путь проверки доступности, что и клиентская запись, и наоборот -
// клиентская запись не может попасть на заблокированный интервал.
type UseCase struct {
	bookingRepo    BookingRepository
	companyRepo    CompanyRepository
	specialistRepo SpecialistRepository
	guard          AvailabilityGuard
	txManager      TransactionManager
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	companyRepo CompanyRepository,
	specialistRepo SpecialistRepository,
	guard AvailabilityGuard,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		companyRepo:    companyRepo,
		specialistRepo: specialistRepo,
		guard:          guard,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute выполняет use case блокировки времени
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BlockTime: hostname=%s, specialist=%d, date=%s, interval=[%s, %s)",
		req.Hostname, req.SpecialistID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BlockTime: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем компанию-тенанта по доменному имени
	company, err := uc.companyRepo.GetByDomain(ctx, req.Hostname)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			uc.logger.Warn("BlockTime: company not found for hostname=%s", req.Hostname)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("BlockTime: failed to get company hostname=%s: %v", req.Hostname, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 3. Проверяем, что специалист принадлежит компании
	if _, err := uc.specialistRepo.GetByID(ctx, req.SpecialistID, company.ID); err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			uc.logger.Warn("BlockTime: specialist id=%d not found in company id=%d",
				req.SpecialistID, company.ID)
			return nil, ErrSpecialistNotFound
		}
		uc.logger.Error("BlockTime: failed to get specialist id=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 4. Проверка доступности и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.guard.EnsureAvailable(txCtx, company.ID, req.SpecialistID, req.Date,
			req.StartTime, req.EndTime, nil); err != nil {
			if errors.Is(err, availability.ErrTimeSlotTaken) {
				uc.logger.Warn("BlockTime: slot [%s, %s) taken: specialist=%d, date=%s",
					req.StartTime, req.EndTime, req.SpecialistID, req.Date.Format(domain.DateFormat))
				return ErrSlotTaken
			}
			uc.logger.Error("BlockTime: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}

		block := &domain.Booking{
			CompanyID:    company.ID,
			SpecialistID: req.SpecialistID,
			ClientID:     nil,
			Date:         req.Date,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			Status:       domain.StatusConfirmed,
			IsBlock:      true,
			Comment:      req.Comment,
		}

		created, err := uc.bookingRepo.Create(txCtx, block)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("BlockTime: slot taken at insert: specialist=%d, date=%s, time=%s",
					req.SpecialistID, req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotTaken
			}
			uc.logger.Error("BlockTime: failed to create block: %v", err)
			return fmt.Errorf("%w: failed to create block: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BlockTime: successfully created block id=%d", result.ID)

	return &Response{
		ID:           result.ID,
		CompanyID:    result.CompanyID,
		SpecialistID: result.SpecialistID,
		Date:         result.Date,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		Status:       string(result.Status),
		IsBlock:      result.IsBlock,
		Comment:      result.Comment,
		CreatedAt:    result.CreatedAt,
	}, nil
}
