package cleanup_duplicates

import (
	"context"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
)

// BookingStore интерфейс хранилища бронирований
type BookingStore interface {
	ListByCreation(ctx context.Context) ([]*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
