package block_time

import (
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	blockTime "github.com/lumibook/booking-service/internal/usecase/block_time"
	"github.com/lumibook/booking-service/pkg/types"
)

// BlockTimeRequest HTTP request model
type BlockTimeRequest struct {
	Hostname     string  `json:"hostname"`
	SpecialistID int64   `json:"specialistId"`
	Date         string  `json:"date"`      // "2025-10-15"
	StartTime    string  `json:"startTime"` // "13:00"
	EndTime      string  `json:"endTime"`   // "14:00"
	Comment      *string `json:"comment,omitempty"`
}

// BlockResponse HTTP response model
type BlockResponse struct {
	ID           int64   `json:"id"`
	SpecialistID int64   `json:"specialistId"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	IsBlock      bool    `json:"isBlock"`
	Comment      *string `json:"comment,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BlockTimeRequest) ToUseCaseRequest() (*blockTime.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &blockTime.Request{
		Hostname:     r.Hostname,
		SpecialistID: r.SpecialistID,
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
		Comment:      r.Comment,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *blockTime.Response) *BlockResponse {
	return &BlockResponse{
		ID:           resp.ID,
		SpecialistID: resp.SpecialistID,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Status:       resp.Status,
		IsBlock:      resp.IsBlock,
		Comment:      resp.Comment,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
