package get_booking

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
	msgInvalidBookingID = "некорректный ID бронирования"
	msgCompanyNotFound  = "компания не найдена"
	msgBookingNotFound  = "бронирование не найдено"
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

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	company, err := h.companyResolver.GetByDomain(r.Context(), r.URL.Query().Get("hostname"))
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			h.logger.Warn("GET /bookings/{id} - Company not found")
			handlers.RespondNotFound(w, msgCompanyNotFound)
			return
		}
		h.logger.Error("GET /bookings/{id} - Failed to resolve company: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.service.GetByID(r.Context(), company.ID, bookingID)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)
			return
		}
		h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking fetched: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
