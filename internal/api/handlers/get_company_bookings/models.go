package get_company_bookings

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	"github.com/lumibook/booking-service/internal/service/bookings/models"
)

var (
	errInvalidSpecialistID = errors.New("invalid specialistId")
	errInvalidDate         = errors.New("invalid date")
	errInvalidOnlyFlag     = errors.New("invalid onlyOccupying")
)

// parseFilters разбирает опциональные query-параметры фильтрации
func parseFilters(query url.Values, companyID int64) (*models.GetCompanyBookingsRequest, error) {
	req := &models.GetCompanyBookingsRequest{CompanyID: companyID}

	if raw := query.Get("specialistId"); raw != "" {
		specialistID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || specialistID <= 0 {
			return nil, errInvalidSpecialistID
		}
		req.SpecialistID = &specialistID
	}

	if raw := query.Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, errInvalidDate
		}
		req.Date = &date
	}

	if raw := query.Get("status"); raw != "" {
		status := raw
		req.Status = &status
	}

	if raw := query.Get("onlyOccupying"); raw != "" {
		onlyOccupying, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errInvalidOnlyFlag
		}
		req.OnlyOccupying = onlyOccupying
	}

	return req, nil
}
