package models

import (
	"errors"
	"time"

	"github.com/lumibook/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetCompanyBookingsRequest запрос на получение бронирований компании
type GetCompanyBookingsRequest struct {
	CompanyID     int64      `json:"companyId"`
	SpecialistID  *int64     `json:"specialistId,omitempty"`  // Фильтр по специалисту (опционально)
	Date          *time.Time `json:"date,omitempty"`          // Фильтр по дате (опционально)
	Status        *string    `json:"status,omitempty"`        // Фильтр по статусу (опционально)
	OnlyOccupying bool       `json:"onlyOccupying,omitempty"` // Только занимающие слот бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCompanyBookingsRequest) ToDomainFilter() (domain.CompanyBookingsFilter, error) {
	filter := domain.CompanyBookingsFilter{
		CompanyID:     r.CompanyID,
		SpecialistID:  r.SpecialistID,
		Date:          r.Date,
		OnlyOccupying: r.OnlyOccupying,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64   `json:"id"`
	CompanyID    int64   `json:"companyId"`
	SpecialistID int64   `json:"specialistId"`
	ClientID     *int64  `json:"clientId,omitempty"`
	ServiceIDs   []int64 `json:"serviceIds,omitempty"`
	Date         string  `json:"date"`      // "2025-10-15"
	StartTime    string  `json:"startTime"` // "10:00"
	EndTime      string  `json:"endTime"`   // "11:00"
	Status       string  `json:"status"`
	IsBlock      bool    `json:"isBlock"`
	Comment      *string `json:"comment,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:           b.ID,
		CompanyID:    b.CompanyID,
		SpecialistID: b.SpecialistID,
		ClientID:     b.ClientID,
		ServiceIDs:   b.ServiceIDs,
		Date:         b.Date.Format(domain.DateFormat),
		StartTime:    b.StartTime.String(),
		EndTime:      b.EndTime.String(),
		Status:       string(b.Status),
		IsBlock:      b.IsBlock,
		Comment:      b.Comment,
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует список domain.Booking в BookingListResponse
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = *FromDomainBooking(b)
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status, ok := domain.ParseBookingStatus(s)
	if !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}
