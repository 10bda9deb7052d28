package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено.
	// Для генератора слотов это штатная ситуация (выходной день),
	// а не ошибка - usecase вернет пустой список слотов.
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrDayAlreadyScheduled возвращается при попытке создать второй
	// интервал на тот же день недели для того же специалиста
	ErrDayAlreadyScheduled = errors.New("schedule.repository: day already scheduled for this specialist")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
