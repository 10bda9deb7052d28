package get_free_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lumibook/booking-service/internal/api/handlers"
	getFreeSlots "github.com/lumibook/booking-service/internal/usecase/get_free_slots"
)

const (
	msgInvalidRequest     = "некорректные параметры запроса"
	msgCompanyNotFound    = "компания не найдена"
	msgSpecialistNotFound = "специалист не найден"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	useCase GetFreeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetFreeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/specialists/{specialistId}/free-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req, err := parseRequest(
		query.Get("hostname"),
		mux.Vars(r)["specialistId"],
		query.Get("serviceIds"),
		query.Get("date"),
	)
	if err != nil {
		h.logger.Warn("GET /free-slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getFreeSlots.ErrInvalidInput):
			h.logger.Warn("GET /free-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, getFreeSlots.ErrCompanyNotFound):
			h.logger.Warn("GET /free-slots - Company not found: hostname=%s", req.Hostname)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, getFreeSlots.ErrSpecialistNotFound):
			h.logger.Warn("GET /free-slots - Specialist not found: specialist_id=%d", req.SpecialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, getFreeSlots.ErrServiceNotFound):
			h.logger.Warn("GET /free-slots - Service not found: service_ids=%v", req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /free-slots - Failed to get free slots: specialist_id=%d, error=%v",
				req.SpecialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /free-slots - %d slots returned: specialist_id=%d, date=%s",
		len(result.Slots), req.SpecialistID, query.Get("date"))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
