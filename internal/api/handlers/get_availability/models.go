package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AdmissionService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	UnavailableDates  []string `json:"unavailableDates"`
	NextAvailableDate *string  `json:"nextAvailableDate"` // null, если в окне нет свободной даты
	FirstEligibleDate string   `json:"firstEligibleDate"`
	LastEligibleDate  string   `json:"lastEligibleDate"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		UnavailableDates:  make([]string, 0, len(resp.UnavailableDates)),
		FirstEligibleDate: formatDate(resp.FirstEligibleDate),
		LastEligibleDate:  formatDate(resp.LastEligibleDate),
	}

	for _, d := range resp.UnavailableDates {
		out.UnavailableDates = append(out.UnavailableDates, formatDate(d))
	}

	if resp.NextAvailableDate != nil {
		next := formatDate(*resp.NextAvailableDate)
		out.NextAvailableDate = &next
	}

	return out
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateFormat)
}
