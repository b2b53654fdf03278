package notifier

import (
	"context"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
)

// Sender доставляет уведомление во внешний workflow
type Sender interface {
	NotifyTransition(ctx context.Context, bookingID int64, status domain.BookingStatus) error
}

// Observer получает метрики очереди
type Observer interface {
	ObserveNotification(result string)
	SetNotifierQueueDepth(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
