package specialist

import "errors"

var (
	// ErrSpecialistNotFound возвращается, когда специалист не найден
	// или не принадлежит компании
	ErrSpecialistNotFound = errors.New("specialist.repository: specialist not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("specialist.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("specialist.repository: failed to scan row")
)
