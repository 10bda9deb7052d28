package update_booking

import (
	"fmt"
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	"github.com/lumibook/booking-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Hostname == "" {
		return fmt.Errorf("%w: hostname is required", ErrInvalidInput)
	}

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.SpecialistID != nil && *req.SpecialistID <= 0 {
		return fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}

	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date must not be zero", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.Comment != nil && len(*req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}

	return nil
}

// validateBookingTime проверяет, что дата и время начала не в прошлом
func validateBookingTime(bookingDate time.Time, startTime types.TimeString, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}

	// Если дата бронирования не сегодня, проверка времени не нужна
	if !isSameDay(bookingDate, now) {
		return nil
	}

	nowMinute := now.Hour()*60 + now.Minute()
	if startTime.MinuteOfDay() <= nowMinute {
		return fmt.Errorf("%w: start time is in the past", ErrInvalidDate)
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
