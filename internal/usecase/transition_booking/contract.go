package transition_booking

import (
	"context"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
)

// BookingStore интерфейс хранилища бронирований
type BookingStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, expected, target domain.BookingStatus) (*domain.Booking, error)
}

// Notifier очередь уведомлений о переходах
type Notifier interface {
	Enqueue(bookingID int64, status domain.BookingStatus) (string, bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
