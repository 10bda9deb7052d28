package upsert_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lumibook/booking-service/internal/api/handlers"
	companyRepo "github.com/lumibook/booking-service/internal/infra/storage/company"
	"github.com/lumibook/booking-service/internal/service/schedule"
	"github.com/lumibook/booking-service/internal/service/schedule/models"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgInvalidDayOfWeek    = "некорректный день недели"
	msgInvalidBody         = "некорректное тело запроса"
	msgInvalidInterval     = "некорректный рабочий интервал"
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

// Handle PUT /api/v1/schedule/specialists/{specialistId}/days/{dayOfWeek}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	specialistID, err := strconv.ParseInt(vars["specialistId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /schedule - Invalid specialist id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	dayOfWeek, err := strconv.Atoi(vars["dayOfWeek"])
	if err != nil {
		h.logger.Warn("PUT /schedule - Invalid day of week: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	var body UpsertScheduleRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	company, err := h.companyResolver.GetByDomain(r.Context(), body.Hostname)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			h.logger.Warn("PUT /schedule - Company not found")
			handlers.RespondNotFound(w, msgCompanyNotFound)
			return
		}
		h.logger.Error("PUT /schedule - Failed to resolve company: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.service.UpsertDay(r.Context(), &models.UpsertDayRequest{
		CompanyID:    company.ID,
		SpecialistID: specialistID,
		DayOfWeek:    dayOfWeek,
		StartTime:    body.StartTime,
		EndTime:      body.EndTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /schedule - Invalid interval: specialist_id=%d, day=%d, error=%v",
				specialistID, dayOfWeek, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, schedule.ErrSpecialistNotFound):
			h.logger.Warn("PUT /schedule - Specialist not found: specialist_id=%d", specialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		default:
			h.logger.Error("PUT /schedule - Failed to upsert day: specialist_id=%d, day=%d, error=%v",
				specialistID, dayOfWeek, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule - Day upserted: specialist_id=%d, day=%d", specialistID, dayOfWeek)
	handlers.RespondJSON(w, http.StatusOK, result)
}
