package update_booking

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена по доменному имени
	ErrCompanyNotFound = errors.New("update_booking: company not found")

	// ErrBookingNotFound возвращается, когда бронирование не найдено в компании
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrSpecialistNotFound возвращается, когда новый специалист не найден в компании
	ErrSpecialistNotFound = errors.New("update_booking: specialist not found")

	// ErrBookingNotUpdatable возвращается при попытке изменить бронирование
	// в терминальном статусе
	ErrBookingNotUpdatable = errors.New("update_booking: booking can no longer be updated")

	// ErrInvalidDate возвращается при новой дате или времени в прошлом
	ErrInvalidDate = errors.New("update_booking: invalid booking date")

	// ErrSlotTaken возвращается, когда новый интервал уже занят
	ErrSlotTaken = errors.New("update_booking: time slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
