package create_booking

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена по доменному имени
	ErrCompanyNotFound = errors.New("create_booking: company not found")

	// ErrSpecialistNotFound возвращается, когда специалист не найден в компании
	ErrSpecialistNotFound = errors.New("create_booking: specialist not found")

	// ErrClientNotFound возвращается, когда клиент не найден в компании
	ErrClientNotFound = errors.New("create_booking: client not found")

	// ErrServiceNotFound возвращается, когда хотя бы одна из услуг не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается при дате или времени бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotTaken возвращается, когда запрошенный интервал уже занят
	ErrSlotTaken = errors.New("create_booking: time slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
