package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AdmissionService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingBookingID   = "не указан ID бронирования"
	msgCancelFailed       = "не удалось отменить бронирование"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := req.ToServiceRequest()

	body, err := h.service.Cancel(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/cancel - Missing booking ID")
			handlers.RespondBadRequest(w, msgMissingBookingID)

		case errors.Is(err, bookings.ErrCancelFailed):
			h.logger.Error("POST /bookings/cancel - Workflow failed: booking_id=%s, error=%v", serviceReq.BookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgCancelFailed)

		default:
			h.logger.Error("POST /bookings/cancel - Failed to cancel booking: booking_id=%s, error=%v", serviceReq.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/cancel - Cancellation forwarded: booking_id=%s", serviceReq.BookingID)
	handlers.RespondJSON(w, http.StatusOK, body)
}
