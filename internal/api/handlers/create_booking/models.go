package create_booking

import (
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	createBooking "github.com/lumibook/booking-service/internal/usecase/create_booking"
	"github.com/lumibook/booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Hostname     string  `json:"hostname"`
	ClientID     int64   `json:"clientId"`
	SpecialistID int64   `json:"specialistId"`
	ServiceIDs   []int64 `json:"serviceIds"`
	Date         string  `json:"date"`      // "2025-10-15"
	StartTime    string  `json:"startTime"` // "10:00"
	Comment      *string `json:"comment,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64   `json:"id"`
	SpecialistID int64   `json:"specialistId"`
	ClientID     *int64  `json:"clientId,omitempty"`
	ServiceIDs   []int64 `json:"serviceIds"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	Comment      *string `json:"comment,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Hostname:     r.Hostname,
		ClientID:     r.ClientID,
		SpecialistID: r.SpecialistID,
		ServiceIDs:   r.ServiceIDs,
		Date:         date,
		StartTime:    startTime,
		Comment:      r.Comment,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		SpecialistID: resp.SpecialistID,
		ClientID:     resp.ClientID,
		ServiceIDs:   resp.ServiceIDs,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Status:       resp.Status,
		Comment:      resp.Comment,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
