package get_free_slots

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена по доменному имени
	ErrCompanyNotFound = errors.New("company not found")

	// ErrSpecialistNotFound возвращается, когда специалист не найден в компании
	ErrSpecialistNotFound = errors.New("specialist not found")

	// ErrServiceNotFound возвращается, когда хотя бы одна из услуг не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
