package cleanup_duplicates

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AdmissionService/internal/api/handlers"
	cleanupDuplicates "github.com/m04kA/SMC-AdmissionService/internal/usecase/cleanup_duplicates"
)

const msgStoreUnavailable = "хранилище бронирований недоступно"

type Handler struct {
	useCase CleanupUseCase
	logger  Logger
}

func NewHandler(useCase CleanupUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/cleanup-duplicates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		if errors.Is(err, cleanupDuplicates.ErrStoreUnavailable) {
			h.logger.Error("POST /admin/cleanup-duplicates - Store unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)
			return
		}
		h.logger.Error("POST /admin/cleanup-duplicates - Cleanup failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/cleanup-duplicates - Deleted %d duplicates in %d groups", result.DeletedCount, result.DuplicateGroups)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
