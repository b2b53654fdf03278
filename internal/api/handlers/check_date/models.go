package check_date

import (
	"github.com/m04kA/SMC-AdmissionService/internal/domain"
	checkDate "github.com/m04kA/SMC-AdmissionService/internal/usecase/check_date"
)

// CheckDateResponse HTTP response model
type CheckDateResponse struct {
	Date            string `json:"date"`
	Verdict         string `json:"verdict"`
	Available       bool   `json:"available"`
	Full            bool   `json:"full"`
	CapacityKnown   bool   `json:"capacityKnown"`
	CurrentBookings *int   `json:"currentBookings,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkDate.Response) *CheckDateResponse {
	return &CheckDateResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		Verdict:         string(resp.Verdict),
		Available:       resp.Available(),
		Full:            resp.Full,
		CapacityKnown:   resp.CapacityKnown,
		CurrentBookings: resp.CurrentBookings,
	}
}
