package get_free_slots

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	getFreeSlots "github.com/lumibook/booking-service/internal/usecase/get_free_slots"
)

// SlotResponse HTTP модель свободного слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

// FreeSlotsResponse HTTP модель ответа со свободными слотами
type FreeSlotsResponse struct {
	Date            string         `json:"date"`
	SpecialistID    int64          `json:"specialistId"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// parseRequest собирает модель use case из параметров запроса
func parseRequest(hostname, specialistIDRaw, serviceIDsRaw, dateRaw string) (*getFreeSlots.Request, error) {
	specialistID, err := strconv.ParseInt(specialistIDRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid specialist id: %w", err)
	}

	serviceIDs, err := parseServiceIDs(serviceIDsRaw)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, dateRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	return &getFreeSlots.Request{
		Hostname:     hostname,
		SpecialistID: specialistID,
		ServiceIDs:   serviceIDs,
		Date:         date,
	}, nil
}

// parseServiceIDs парсит список ID услуг из строки вида "1,2,3"
func parseServiceIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, fmt.Errorf("serviceIds is required")
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid service id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFreeSlots.Response) *FreeSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}
	return &FreeSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		SpecialistID:    resp.SpecialistID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
