package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumibook/booking-service/internal/domain"
	scheduleRepo "github.com/lumibook/booking-service/internal/infra/storage/schedule"
	specialistRepo "github.com/lumibook/booking-service/internal/infra/storage/specialist"
	"github.com/lumibook/booking-service/internal/service/schedule/models"
	"github.com/lumibook/booking-service/pkg/types"
)

// Service сервис для управления недельным расписанием специалистов.
// На каждую пару (специалист, день недели) существует не больше одного
// рабочего интервала; повторная установка того же дня заменяет интервал.
type Service struct {
	scheduleRepo   ScheduleRepository
	specialistRepo SpecialistRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, specialistRepo SpecialistRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo:   scheduleRepo,
		specialistRepo: specialistRepo,
		logger:         logger,
	}
}

// UpsertDay устанавливает рабочий интервал специалиста на день недели
func (s *Service) UpsertDay(ctx context.Context, req *models.UpsertDayRequest) (*models.DayResponse, error) {
	s.logger.Info("UpsertDay: company=%d, specialist=%d, day=%d, interval=[%s, %s)",
		req.CompanyID, req.SpecialistID, req.DayOfWeek, req.StartTime, req.EndTime)

	startTime, endTime, err := validateDayRequest(req)
	if err != nil {
		s.logger.Warn("UpsertDay: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkSpecialist(ctx, req.SpecialistID, req.CompanyID); err != nil {
		return nil, err
	}

	upserted, err := s.scheduleRepo.Upsert(ctx, &domain.Schedule{
		CompanyID:    req.CompanyID,
		SpecialistID: req.SpecialistID,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    startTime,
		EndTime:      endTime,
	})
	if err != nil {
		s.logger.Error("UpsertDay: repository error: specialist=%d, day=%d: %v",
			req.SpecialistID, req.DayOfWeek, err)
		return nil, fmt.Errorf("%w: UpsertDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertDay: successfully upserted schedule id=%d", upserted.ID)
	return models.FromDomainSchedule(upserted), nil
}

// DeleteDay удаляет рабочий интервал специалиста на день недели.
// День без интервала становится выходным.
func (s *Service) DeleteDay(ctx context.Context, companyID, specialistID int64, dayOfWeek int) error {
	s.logger.Info("DeleteDay: company=%d, specialist=%d, day=%d", companyID, specialistID, dayOfWeek)

	if err := validateDayOfWeek(dayOfWeek); err != nil {
		s.logger.Warn("DeleteDay: validation failed: %v", err)
		return err
	}

	if err := s.checkSpecialist(ctx, specialistID, companyID); err != nil {
		return err
	}

	if err := s.scheduleRepo.DeleteByDay(ctx, specialistID, companyID, dayOfWeek); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("DeleteDay: no schedule for specialist=%d, day=%d", specialistID, dayOfWeek)
			return ErrScheduleNotFound
		}
		s.logger.Error("DeleteDay: repository error: specialist=%d, day=%d: %v", specialistID, dayOfWeek, err)
		return fmt.Errorf("%w: DeleteDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteDay: successfully deleted schedule: specialist=%d, day=%d", specialistID, dayOfWeek)
	return nil
}

// ListBySpecialist возвращает недельное расписание специалиста.
// Дни без интервала в списке отсутствуют.
func (s *Service) ListBySpecialist(ctx context.Context, companyID, specialistID int64) (*models.WeekResponse, error) {
	s.logger.Info("ListBySpecialist: company=%d, specialist=%d", companyID, specialistID)

	if err := s.checkSpecialist(ctx, specialistID, companyID); err != nil {
		return nil, err
	}

	schedules, err := s.scheduleRepo.ListBySpecialist(ctx, specialistID, companyID)
	if err != nil {
		s.logger.Error("ListBySpecialist: repository error: specialist=%d: %v", specialistID, err)
		return nil, fmt.Errorf("%w: ListBySpecialist - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBySpecialist: %d working days for specialist=%d", len(schedules), specialistID)
	return models.FromDomainScheduleList(specialistID, schedules), nil
}

// checkSpecialist проверяет принадлежность специалиста компании
func (s *Service) checkSpecialist(ctx context.Context, specialistID, companyID int64) error {
	if _, err := s.specialistRepo.GetByID(ctx, specialistID, companyID); err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			s.logger.Warn("checkSpecialist: specialist id=%d not found in company id=%d",
				specialistID, companyID)
			return ErrSpecialistNotFound
		}
		s.logger.Error("checkSpecialist: repository error for specialist id=%d: %v", specialistID, err)
		return fmt.Errorf("%w: checkSpecialist - repository error: %v", ErrInternal, err)
	}
	return nil
}

// validateDayRequest валидирует запрос на установку рабочего интервала
func validateDayRequest(req *models.UpsertDayRequest) (types.TimeString, types.TimeString, error) {
	if err := validateDayOfWeek(req.DayOfWeek); err != nil {
		return "", "", err
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	// Рабочий интервал обязан иметь положительную длину
	if !startTime.IsBefore(endTime) {
		return "", "", fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return startTime, endTime, nil
}

// validateDayOfWeek проверяет, что день недели в диапазоне 0..6
func validateDayOfWeek(dayOfWeek int) error {
	if dayOfWeek < domain.MinDayOfWeek || dayOfWeek > domain.MaxDayOfWeek {
		return fmt.Errorf("%w: dayOfWeek must be between %d and %d",
			ErrInvalidInput, domain.MinDayOfWeek, domain.MaxDayOfWeek)
	}
	return nil
}
