package bookings

import (
	"context"
	"encoding/json"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// CancelDispatcher интерфейс отмены через workflow
type CancelDispatcher interface {
	Cancel(ctx context.Context, bookingID string) (json.RawMessage, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
