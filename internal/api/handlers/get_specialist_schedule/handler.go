package get_specialist_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lumibook/booking-service/internal/api/handlers"
	companyRepo "github.com/lumibook/booking-service/internal/infra/storage/company"
	"github.com/lumibook/booking-service/internal/service/schedule"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgCompanyNotFound     = "компания не найдена"
	msgSpecialistNotFound  = "специалист не найден"
)

type Handler struct {
	service         ScheduleService
	companyResolver CompanyResolver
	logger          Logger
}

func NewHandler(service ScheduleService, companyResolver CompanyResolver, logger Logger) *Handler {
	return &Handler{
		service:         service,
		companyResolver: companyResolver,
		logger:          logger,
	}
}

// Handle GET /api/v1/schedule/specialists/{specialistId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialistID, err := strconv.ParseInt(mux.Vars(r)["specialistId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /schedule/specialists/{id} - Invalid specialist id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	company, err := h.companyResolver.GetByDomain(r.Context(), r.URL.Query().Get("hostname"))
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			h.logger.Warn("GET /schedule/specialists/{id} - Company not found")
			handlers.RespondNotFound(w, msgCompanyNotFound)
			return
		}
		h.logger.Error("GET /schedule/specialists/{id} - Failed to resolve company: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.service.ListBySpecialist(r.Context(), company.ID, specialistID)
	if err != nil {
		if errors.Is(err, schedule.ErrSpecialistNotFound) {
			h.logger.Warn("GET /schedule/specialists/{id} - Specialist not found: specialist_id=%d",
				specialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)
			return
		}
		h.logger.Error("GET /schedule/specialists/{id} - Failed to get schedule: specialist_id=%d, error=%v",
			specialistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule/specialists/{id} - Schedule fetched: specialist_id=%d, days=%d",
		specialistID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
