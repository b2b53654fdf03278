package cancel_booking

import (
	"encoding/json"
	"strconv"

	"github.com/m04kA/SMC-AdmissionService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model; bookingId может прийти строкой или числом
type CancelBookingRequest struct {
	BookingID json.RawMessage `json:"bookingId"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest() *models.CancelBookingRequest {
	return &models.CancelBookingRequest{BookingID: rawID(r.BookingID)}
}

func rawID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if _, err := strconv.ParseFloat(n.String(), 64); err == nil {
			return n.String()
		}
	}

	return ""
}
