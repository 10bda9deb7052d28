package block_time

import (
	"fmt"

	"github.com/lumibook/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Hostname == "" {
		return fmt.Errorf("%w: hostname is required", ErrInvalidInput)
	}

	if req.SpecialistID <= 0 {
		return fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	// Интервал блокировки задается явно и должен иметь положительную длину
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.Comment != nil && len(*req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}

	return nil
}
