package get_free_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	companyRepo "github.com/lumibook/booking-service/internal/infra/storage/company"
	scheduleRepo "github.com/lumibook/booking-service/internal/infra/storage/schedule"
	serviceRepo "github.com/lumibook/booking-service/internal/infra/storage/service"
	specialistRepo "github.com/lumibook/booking-service/internal/infra/storage/specialist"
)

// UseCase use case для получения свободных слотов специалиста
type UseCase struct {
	companyRepo     CompanyRepository
	specialistRepo  SpecialistRepository
	serviceRepo     ServiceRepository
	scheduleRepo    ScheduleRepository
	bookingRepo     BookingRepository
	timeProvider    TimeProvider
	defaultLocation *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	companyRepo CompanyRepository,
	specialistRepo SpecialistRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	defaultLocation *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		companyRepo:     companyRepo,
		specialistRepo:  specialistRepo,
		serviceRepo:     serviceRepo,
		scheduleRepo:    scheduleRepo,
		bookingRepo:     bookingRepo,
		timeProvider:    &RealTimeProvider{},
		defaultLocation: defaultLocation,
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetFreeSlots: hostname=%s, specialist=%d, services=%v, date=%s",
		req.Hostname, req.SpecialistID, req.ServiceIDs, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFreeSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем компанию-тенанта по доменному имени
	company, err := uc.companyRepo.GetByDomain(ctx, req.Hostname)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			uc.logger.Warn("GetFreeSlots: company not found for hostname=%s", req.Hostname)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("GetFreeSlots: failed to get company hostname=%s: %v", req.Hostname, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 3. Проверяем, что специалист принадлежит компании
	if _, err := uc.specialistRepo.GetByID(ctx, req.SpecialistID, company.ID); err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			uc.logger.Warn("GetFreeSlots: specialist id=%d not found in company id=%d",
				req.SpecialistID, company.ID)
			return nil, ErrSpecialistNotFound
		}
		uc.logger.Error("GetFreeSlots: failed to get specialist id=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
	}

	// 4. Получаем услуги и суммируем их длительность
	services, err := uc.serviceRepo.GetByIDs(ctx, company.ID, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetFreeSlots: services %v not found in company id=%d", req.ServiceIDs, company.ID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetFreeSlots: failed to get services %v: %v", req.ServiceIDs, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	durationMinutes := 0
	for _, service := range services {
		durationMinutes += service.DurationMin
	}
	if durationMinutes <= 0 {
		uc.logger.Warn("GetFreeSlots: non-positive total duration for services %v", req.ServiceIDs)
		return nil, fmt.Errorf("%w: total service duration must be positive", ErrInvalidInput)
	}

	// 5. Получаем текущее время в таймзоне компании
	loc := company.Location(uc.defaultLocation)
	now := uc.timeProvider.Now().In(loc)

	// Дата целиком в прошлом - свободных слотов нет
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetFreeSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, durationMinutes), nil
	}

	// 6. Получаем рабочий интервал специалиста на этот день недели
	dayOfWeek := domain.DayOfWeekUTC(req.Date)
	schedule, err := uc.scheduleRepo.GetBySpecialistAndDay(ctx, req.SpecialistID, company.ID, dayOfWeek)
	if err != nil {
		// Выходной день - это не ошибка, а пустой список слотов
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Info("GetFreeSlots: specialist id=%d has no schedule for day=%d",
				req.SpecialistID, dayOfWeek)
			return uc.emptyResponse(req, durationMinutes), nil
		}
		uc.logger.Error("GetFreeSlots: failed to get schedule: specialist=%d, day=%d: %v",
			req.SpecialistID, dayOfWeek, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 7. Получаем занимающие бронирования специалиста на дату
	occupying, err := uc.bookingRepo.FindOccupying(ctx, company.ID, req.SpecialistID, req.Date, nil)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to get occupying bookings: specialist=%d, date=%s: %v",
			req.SpecialistID, req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Генерируем слоты по фиксированной сетке и отбрасываем занятые
	slots := generateFreeSlots(schedule.StartTime, schedule.EndTime, durationMinutes, occupying)

	// 9. Если запрошен сегодняшний день - отбрасываем уже прошедшие слоты
	if isSameDay(req.Date, now) {
		nowMinute := now.Hour()*60 + now.Minute()
		slots = filterElapsedSlots(slots, nowMinute)
	}

	uc.logger.Info("GetFreeSlots: %d free slots: specialist=%d, date=%s, duration=%d",
		len(slots), req.SpecialistID, req.Date.Format(domain.DateFormat), durationMinutes)

	return &Response{
		Date:            req.Date,
		SpecialistID:    req.SpecialistID,
		DurationMinutes: durationMinutes,
		Slots:           slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request, durationMinutes int) *Response {
	return &Response{
		Date:            req.Date,
		SpecialistID:    req.SpecialistID,
		DurationMinutes: durationMinutes,
		Slots:           []Slot{},
	}
}
