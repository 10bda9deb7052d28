package delete_schedule

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
	msgInvalidDayOfWeek    = "некорректный день недели"
	msgCompanyNotFound     = "компания не найдена"
	msgSpecialistNotFound  = "специалист не найден"
	msgScheduleNotFound    = "расписание на этот день не найдено"
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

// Handle DELETE /api/v1/schedule/specialists/{specialistId}/days/{dayOfWeek}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	specialistID, err := strconv.ParseInt(vars["specialistId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /schedule - Invalid specialist id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	dayOfWeek, err := strconv.Atoi(vars["dayOfWeek"])
	if err != nil {
		h.logger.Warn("DELETE /schedule - Invalid day of week: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	company, err := h.companyResolver.GetByDomain(r.Context(), r.URL.Query().Get("hostname"))
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			h.logger.Warn("DELETE /schedule - Company not found")
			handlers.RespondNotFound(w, msgCompanyNotFound)
			return
		}
		h.logger.Error("DELETE /schedule - Failed to resolve company: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if err := h.service.DeleteDay(r.Context(), company.ID, specialistID, dayOfWeek); err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /schedule - Invalid day of week: specialist_id=%d, day=%d",
				specialistID, dayOfWeek)
			handlers.RespondBadRequest(w, msgInvalidDayOfWeek)

		case errors.Is(err, schedule.ErrSpecialistNotFound):
			h.logger.Warn("DELETE /schedule - Specialist not found: specialist_id=%d", specialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, schedule.ErrScheduleNotFound):
			h.logger.Warn("DELETE /schedule - Schedule not found: specialist_id=%d, day=%d",
				specialistID, dayOfWeek)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		default:
			h.logger.Error("DELETE /schedule - Failed to delete day: specialist_id=%d, day=%d, error=%v",
				specialistID, dayOfWeek, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule - Day deleted: specialist_id=%d, day=%d", specialistID, dayOfWeek)
	w.WriteHeader(http.StatusNoContent)
}
