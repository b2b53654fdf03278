package admit_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
	"github.com/m04kA/SMC-AdmissionService/internal/integrations/workflow"
)

// BookingStore интерфейс чтения хранилища бронирований
type BookingStore interface {
	CountByDate(ctx context.Context, date time.Time) (int, error)
	FindByKey(ctx context.Context, email, reg string, date time.Time) (*domain.Booking, error)
}

// DedupStore интерфейс окна дедупликации
type DedupStore interface {
	TryAcquire(ctx context.Context, fingerprint string, now time.Time) (bool, error)
	Evict(ctx context.Context, fingerprint string) error
	Sweep(ctx context.Context, now time.Time) error
}

// Dispatcher интерфейс клиента workflow
type Dispatcher interface {
	Submit(ctx context.Context, booking domain.BookingRequest, createdAt time.Time) (*workflow.SubmitResult, error)
}

// DecisionObserver получает исход каждой заявки (для метрик)
type DecisionObserver interface {
	ObserveAdmission(outcome, reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
