package health

import (
	"net/http"

	"github.com/m04kA/SMC-AdmissionService/internal/api/handlers"
)

// Response тело ответа health-check
type Response struct {
	OK bool `json:"ok"`
}

// Handle GET /health
func Handle(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{OK: true})
}
