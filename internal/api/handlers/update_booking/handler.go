package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lumibook/booking-service/internal/api/handlers"
	updateBooking "github.com/lumibook/booking-service/internal/usecase/update_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidDate        = "некорректный формат даты или времени"
	msgSlotTaken          = "Это время уже занято"
	msgCompanyNotFound    = "компания не найдена"
	msgBookingNotFound    = "бронирование не найдено"
	msgSpecialistNotFound = "специалист не найден"
	msgNotUpdatable       = "бронирование больше нельзя изменить"
	msgInvalidBookingDate = "некорректная дата или время бронирования"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrSlotTaken):
			h.logger.Warn("PATCH /bookings/{id} - Slot taken: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, updateBooking.ErrCompanyNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Company not found: hostname=%s", req.Hostname)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBooking.ErrSpecialistNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Specialist not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, updateBooking.ErrBookingNotUpdatable):
			h.logger.Warn("PATCH /bookings/{id} - Booking not updatable: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNotUpdatable)

		case errors.Is(err, updateBooking.ErrInvalidDate):
			h.logger.Warn("PATCH /bookings/{id} - Invalid booking date: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to update booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking updated successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
