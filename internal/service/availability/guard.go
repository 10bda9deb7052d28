package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	"github.com/lumibook/booking-service/pkg/types"
)

// Guard проверяет доступность временного интервала перед записью бронирования.
//
// Проверка обязана выполняться в той же транзакции, что и вставка/обновление:
// сама по себе она необходимое, но не достаточное условие (read-then-write
// гонка). Достаточное обеспечивает хранилище - сериализуемая транзакция с
// FOR UPDATE и exclusion constraint на занимающие интервалы.
type Guard struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewGuard создает новый экземпляр проверки доступности
func NewGuard(bookingRepo BookingRepository, logger Logger) *Guard {
	return &Guard{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// EnsureAvailable проверяет, что интервал [start, end) специалиста свободен
// на указанную дату. excludeBookingID исключает из проверки само обновляемое
// бронирование (перенос брони не конфликтует с её прежним временем).
//
// Три случая пересечения (кандидат начинается внутри существующей брони,
// заканчивается внутри неё, полностью её содержит) покрываются одним
// предикатом domain.Overlaps - отдельный разбор случаев не нужен.
// Возвращает ErrTimeSlotTaken при первом найденном пересечении.
func (g *Guard) EnsureAvailable(
	ctx context.Context,
	companyID, specialistID int64,
	date time.Time,
	start, end types.TimeString,
	excludeBookingID *int64,
) error {
	candidate := domain.Interval{
		StartMin: start.MinuteOfDay(),
		EndMin:   end.MinuteOfDay(),
	}

	if !candidate.IsValid() {
		return fmt.Errorf("%w: [%s, %s)", ErrInvalidInterval, start, end)
	}

	occupying, err := g.bookingRepo.FindOccupying(ctx, companyID, specialistID, date, excludeBookingID)
	if err != nil {
		g.logger.Error("EnsureAvailable: failed to get occupying bookings: specialist=%d, date=%s: %v",
			specialistID, date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: failed to get occupying bookings: %v", ErrInternal, err)
	}

	for _, booking := range occupying {
		if candidate.Overlaps(booking.Interval()) {
			g.logger.Warn("EnsureAvailable: slot [%s, %s) overlaps booking id=%d [%s, %s): specialist=%d, date=%s",
				start, end, booking.ID, booking.StartTime, booking.EndTime,
				specialistID, date.Format(domain.DateFormat))
			return ErrTimeSlotTaken
		}
	}

	return nil
}
