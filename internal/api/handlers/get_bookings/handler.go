package get_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AdmissionService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionService/internal/service/bookings"
	"github.com/m04kA/SMC-AdmissionService/internal/service/bookings/models"
)

const msgInvalidParams = "некорректные параметры запроса"

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

// Handle GET /api/v1/bookings
// Query params: date, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.GetBookingsRequest{}
	if v := query.Get("date"); v != "" {
		req.Date = &v
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
		default:
			h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
