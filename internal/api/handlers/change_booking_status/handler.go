package change_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lumibook/booking-service/internal/api/handlers"
	companyRepo "github.com/lumibook/booking-service/internal/infra/storage/company"
	"github.com/lumibook/booking-service/internal/service/bookings"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgCompanyNotFound   = "компания не найдена"
	msgBookingNotFound   = "бронирование не найдено"
	msgInvalidStatus     = "некорректный статус бронирования"
	msgInvalidTransition = "недопустимый переход статуса"
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

// Handle PATCH /api/v1/bookings/{bookingId}/status/{status}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}
	status := vars["status"]

	company, err := h.companyResolver.GetByDomain(r.Context(), r.URL.Query().Get("hostname"))
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			h.logger.Warn("PATCH /bookings/{id}/status - Company not found")
			handlers.RespondNotFound(w, msgCompanyNotFound)
			return
		}
		h.logger.Error("PATCH /bookings/{id}/status - Failed to resolve company: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.service.ChangeStatus(r.Context(), company.ID, bookingID, status)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid status: booking_id=%d, status=%s",
				bookingID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid transition: booking_id=%d, status=%s",
				bookingID, status)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to change status: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status changed: booking_id=%d, status=%s", bookingID, status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
