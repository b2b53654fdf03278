package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AdmissionService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-AdmissionService/internal/usecase/get_availability"
)

const msgStoreUnavailable = "не удалось получить доступность дат"

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrStoreUnavailable):
			h.logger.Error("GET /availability - Store unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)
		default:
			h.logger.Error("GET /availability - Failed to get availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
