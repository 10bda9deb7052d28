package block_time

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена по доменному имени
	ErrCompanyNotFound = errors.New("block_time: company not found")

	// ErrSpecialistNotFound возвращается, когда специалист не найден в компании
	ErrSpecialistNotFound = errors.New("block_time: specialist not found")

	// ErrSlotTaken возвращается, когда блокируемый интервал уже занят
	ErrSlotTaken = errors.New("block_time: time slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("block_time: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("block_time: internal error")
)
