package update_booking

import (
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	updateBooking "github.com/lumibook/booking-service/internal/usecase/update_booking"
	"github.com/lumibook/booking-service/pkg/types"
)

// UpdateBookingRequest HTTP request model. nil-поля не изменяются.
type UpdateBookingRequest struct {
	Hostname     string  `json:"hostname"`
	SpecialistID *int64  `json:"specialistId,omitempty"`
	Date         *string `json:"date,omitempty"`      // "2025-10-15"
	StartTime    *string `json:"startTime,omitempty"` // "10:00"
	Comment      *string `json:"comment,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64   `json:"id"`
	SpecialistID int64   `json:"specialistId"`
	ClientID     *int64  `json:"clientId,omitempty"`
	ServiceIDs   []int64 `json:"serviceIds,omitempty"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	IsBlock      bool    `json:"isBlock"`
	Comment      *string `json:"comment,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID int64) (*updateBooking.Request, error) {
	req := &updateBooking.Request{
		Hostname:     r.Hostname,
		BookingID:    bookingID,
		SpecialistID: r.SpecialistID,
		Comment:      r.Comment,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		SpecialistID: resp.SpecialistID,
		ClientID:     resp.ClientID,
		ServiceIDs:   resp.ServiceIDs,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Status:       resp.Status,
		IsBlock:      resp.IsBlock,
		Comment:      resp.Comment,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
