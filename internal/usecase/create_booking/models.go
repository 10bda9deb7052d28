package create_booking

import (
	"time"

	"github.com/lumibook/booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Hostname     string           // Доменное имя компании-тенанта
	ClientID     int64            // ID клиента
	SpecialistID int64            // ID специалиста
	ServiceIDs   []int64          // ID услуг (длительность суммируется)
	Date         time.Time        // Дата бронирования (без времени)
	StartTime    types.TimeString // Время начала
	Comment      *string          // Комментарий клиента
}

// Response модель созданного бронирования
type Response struct {
	ID           int64
	CompanyID    int64
	SpecialistID int64
	ClientID     *int64
	ServiceIDs   []int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       string
	Comment      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
