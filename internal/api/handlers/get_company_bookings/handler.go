package get_company_bookings

import (
	"errors"
	"net/http"

	"github.com/lumibook/booking-service/internal/api/handlers"
	companyRepo "github.com/lumibook/booking-service/internal/infra/storage/company"
	"github.com/lumibook/booking-service/internal/service/bookings"
)

const (
	msgCompanyNotFound = "компания не найдена"
	msgInvalidFilters  = "некорректные параметры фильтрации"
)

type Handler struct {
	service         BookingsService
	companyResolver CompanyResolver
	logger          Logger
}

func NewHandler(service BookingsService, companyResolver CompanyResolver, logger Logger) *Handler {
	return &Handler{
		service:         service,
		companyResolver: companyResolver,
		logger:          logger,
	}
}

// Handle GET /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	company, err := h.companyResolver.GetByDomain(r.Context(), r.URL.Query().Get("hostname"))
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			h.logger.Warn("GET /bookings - Company not found")
			handlers.RespondNotFound(w, msgCompanyNotFound)
			return
		}
		h.logger.Error("GET /bookings - Failed to resolve company: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	req, err := parseFilters(r.URL.Query(), company.ID)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid filters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilters)
		return
	}

	result, err := h.service.GetCompanyBookings(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings - Invalid filter input: company_id=%d, error=%v", company.ID, err)
			handlers.RespondBadRequest(w, msgInvalidFilters)
			return
		}
		h.logger.Error("GET /bookings - Failed to get bookings: company_id=%d, error=%v", company.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Bookings fetched: company_id=%d, total=%d", company.ID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
