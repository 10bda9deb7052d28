package update_booking

import (
	"time"

	"github.com/lumibook/booking-service/pkg/types"
)

// Request модель запроса на изменение бронирования.
// nil-поля остаются без изменений.
type Request struct {
	Hostname  string // Доменное имя компании-тенанта
	BookingID int64  // ID изменяемого бронирования

	SpecialistID *int64            // Новый специалист
	Date         *time.Time        // Новая дата
	StartTime    *types.TimeString // Новое время начала
	Comment      *string           // Новый комментарий
}

// Response модель изменённого бронирования
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
	IsBlock      bool
	Comment      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
