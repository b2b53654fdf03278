package check_date

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-AdmissionService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionService/internal/domain"
	checkDate "github.com/m04kA/SMC-AdmissionService/internal/usecase/check_date"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase CheckDateUseCase
	logger  Logger
}

func NewHandler(useCase CheckDateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/check?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /availability/check - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkDate.Request{Date: date})
	if err != nil {
		h.logger.Error("GET /availability/check - Failed to check date=%s: %v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
