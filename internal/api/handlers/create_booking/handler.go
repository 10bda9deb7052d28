package create_booking

import (
	"errors"
	"net/http"

	"github.com/lumibook/booking-service/internal/api/handlers"
	createBooking "github.com/lumibook/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSlotTaken          = "Это время уже занято"
	msgCompanyNotFound    = "компания не найдена"
	msgSpecialistNotFound = "специалист не найден"
	msgClientNotFound     = "клиент не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidBookingDate = "некорректная дата или время бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: specialist_id=%d, date=%s, time=%s",
				req.SpecialistID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createBooking.ErrCompanyNotFound):
			h.logger.Warn("POST /bookings - Company not found: hostname=%s", req.Hostname)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, createBooking.ErrSpecialistNotFound):
			h.logger.Warn("POST /bookings - Specialist not found: specialist_id=%d", req.SpecialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, createBooking.ErrClientNotFound):
			h.logger.Warn("POST /bookings - Client not found: client_id=%d", req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_ids=%v", req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: specialist_id=%d, error=%v",
				req.SpecialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, specialist_id=%d",
		result.ID, req.SpecialistID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
