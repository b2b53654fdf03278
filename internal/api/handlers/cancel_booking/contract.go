package cancel_booking

import (
	"context"
	"encoding/json"

	"github.com/m04kA/SMC-AdmissionService/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, req *models.CancelBookingRequest) (json.RawMessage, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
