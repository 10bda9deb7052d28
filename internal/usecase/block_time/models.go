package block_time

import (
	"time"

	"github.com/lumibook/booking-service/pkg/types"
)

// Request модель запроса на блокировку времени специалиста
type Request struct {
	Hostname     string           // Доменное имя компании-тенанта
	SpecialistID int64            // ID специалиста, блокирующего время
	Date         time.Time        // Дата блокировки (без времени)
	StartTime    types.TimeString // Начало блокируемого интервала
	EndTime      types.TimeString // Конец блокируемого интервала (не включается)
	Comment      *string          // Причина блокировки
}

// Response модель созданной блокировки
type Response struct {
	ID           int64
	CompanyID    int64
	SpecialistID int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       string
	IsBlock      bool
	Comment      *string
	CreatedAt    time.Time
}
