package schedule

import "errors"

var (
	// ErrSpecialistNotFound возвращается, когда специалист не найден в компании
	ErrSpecialistNotFound = errors.New("specialist not found")

	// ErrScheduleNotFound возвращается, когда расписание на день не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
