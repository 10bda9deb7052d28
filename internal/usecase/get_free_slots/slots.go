package get_free_slots

import (
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	"github.com/lumibook/booking-service/pkg/types"
)

// generateFreeSlots генерирует свободные слоты в пределах рабочего интервала.
//
// Сетка фиксированная: кандидаты идут от начала рабочего дня с шагом duration,
// пока конец кандидата не выходит за конец рабочего дня. Остаток рабочего дня,
// меньший duration, слотом не становится. Кандидат отбрасывается, если его
// интервал пересекается хотя бы с одним занимающим бронированием; слот,
// граничащий с бронированием (конец одного равен началу другого), свободен.
// Результат упорядочен по возрастанию времени начала.
func generateFreeSlots(
	workStart, workEnd types.TimeString,
	durationMinutes int,
	occupying []*domain.Booking,
) []Slot {
	slots := make([]Slot, 0)

	if durationMinutes <= 0 || !workStart.IsBefore(workEnd) {
		return slots
	}

	current := workStart
	for {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			// Слот перешагнул бы полночь - рабочий день закончен
			break
		}
		if slotEnd.IsAfter(workEnd) {
			break
		}

		candidate := domain.Interval{
			StartMin: current.MinuteOfDay(),
			EndMin:   slotEnd.MinuteOfDay(),
		}
		if !overlapsAny(candidate, occupying) {
			slots = append(slots, Slot{StartTime: current, EndTime: slotEnd})
		}

		current = slotEnd
	}

	return slots
}

// overlapsAny проверяет пересечение кандидата с занимающими бронированиями
func overlapsAny(candidate domain.Interval, occupying []*domain.Booking) bool {
	for _, booking := range occupying {
		if candidate.Overlaps(booking.Interval()) {
			return true
		}
	}
	return false
}

// filterElapsedSlots оставляет только слоты, начинающиеся строго позже nowMinute.
// Слот, начинающийся ровно в текущую минуту, уже недоступен для записи.
func filterElapsedSlots(slots []Slot, nowMinute int) []Slot {
	filtered := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.StartTime.MinuteOfDay() > nowMinute {
			filtered = append(filtered, slot)
		}
	}
	return filtered
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
