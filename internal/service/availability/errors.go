package availability

import "errors"

var (
	// ErrTimeSlotTaken возвращается, когда запрошенный интервал пересекается
	// с существующим занимающим бронированием
	ErrTimeSlotTaken = errors.New("availability: time slot already taken")

	// ErrInvalidInterval возвращается для интервала неположительной длины
	ErrInvalidInterval = errors.New("availability: invalid time interval")

	// ErrInternal возвращается при внутренних ошибках проверки
	ErrInternal = errors.New("availability: internal error")
)
