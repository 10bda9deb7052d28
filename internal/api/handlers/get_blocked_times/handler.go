package get_blocked_times

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/lumibook/booking-service/internal/api/handlers"
	"github.com/lumibook/booking-service/internal/domain"
	companyRepo "github.com/lumibook/booking-service/internal/infra/storage/company"
)

const (
	msgCompanyNotFound      = "компания не найдена"
	msgInvalidSpecialistID  = "некорректный ID специалиста"
	msgInvalidDate          = "некорректная дата"
	msgSpecialistIDRequired = "требуется параметр specialistId"
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

// Handle GET /api/v1/bookings/blocked
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	specialistIDRaw := query.Get("specialistId")
	if specialistIDRaw == "" {
		h.logger.Warn("GET /bookings/blocked - Missing specialistId")
		handlers.RespondBadRequest(w, msgSpecialistIDRequired)
		return
	}
	specialistID, err := strconv.ParseInt(specialistIDRaw, 10, 64)
	if err != nil || specialistID <= 0 {
		h.logger.Warn("GET /bookings/blocked - Invalid specialist id: %s", specialistIDRaw)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	var date *time.Time
	if raw := query.Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /bookings/blocked - Invalid date: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = &parsed
	}

	company, err := h.companyResolver.GetByDomain(r.Context(), query.Get("hostname"))
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			h.logger.Warn("GET /bookings/blocked - Company not found")
			handlers.RespondNotFound(w, msgCompanyNotFound)
			return
		}
		h.logger.Error("GET /bookings/blocked - Failed to resolve company: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.service.GetBlockedTimes(r.Context(), company.ID, specialistID, date)
	if err != nil {
		h.logger.Error("GET /bookings/blocked - Failed to get blocks: specialist_id=%d, error=%v",
			specialistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/blocked - Blocks fetched: specialist_id=%d, total=%d",
		specialistID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
