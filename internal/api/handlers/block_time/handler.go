package block_time

import (
	"errors"
	"net/http"

	"github.com/lumibook/booking-service/internal/api/handlers"
	blockTime "github.com/lumibook/booking-service/internal/usecase/block_time"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты или времени"
	msgSlotTaken          = "Это время уже занято"
	msgCompanyNotFound    = "компания не найдена"
	msgSpecialistNotFound = "специалист не найден"
)

type Handler struct {
	useCase BlockTimeUseCase
	logger  Logger
}

func NewHandler(useCase BlockTimeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/block
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BlockTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/block - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/block - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, blockTime.ErrSlotTaken):
			h.logger.Warn("POST /bookings/block - Slot taken: specialist_id=%d, date=%s",
				req.SpecialistID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, blockTime.ErrCompanyNotFound):
			h.logger.Warn("POST /bookings/block - Company not found: hostname=%s", req.Hostname)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, blockTime.ErrSpecialistNotFound):
			h.logger.Warn("POST /bookings/block - Specialist not found: specialist_id=%d", req.SpecialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, blockTime.ErrInvalidInput):
			h.logger.Warn("POST /bookings/block - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/block - Failed to block time: specialist_id=%d, error=%v",
				req.SpecialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/block - Time blocked: block_id=%d, specialist_id=%d",
		result.ID, req.SpecialistID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
