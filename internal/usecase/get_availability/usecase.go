package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
)

// UseCase use case получения недоступных дат
type UseCase struct {
	store        BookingStore
	capacity     int
	window       domain.PolicyWindow
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store BookingStore, capacity int, window domain.PolicyWindow, logger Logger) *UseCase {
	if capacity <= 0 {
		capacity = domain.DefaultCapacityPerDate
	}
	return &UseCase{
		store:        store,
		capacity:     capacity,
		window:       window,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	today := domain.DateOnly(uc.timeProvider.Now())

	full, err := uc.store.FullyBookedDates(ctx, today, uc.capacity)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get fully booked dates: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	resp := &Response{
		UnavailableDates:  make([]time.Time, 0, len(full)),
		FirstEligibleDate: uc.window.FirstEligibleDate(today),
		LastEligibleDate:  uc.window.LastEligibleDate(today),
	}

	fullSet := make(map[string]struct{}, len(full))
	for _, d := range full {
		d = domain.DateOnly(d)
		resp.UnavailableDates = append(resp.UnavailableDates, d)
		fullSet[d.Format(domain.DateFormat)] = struct{}{}
	}

	for d := resp.FirstEligibleDate; !d.After(resp.LastEligibleDate); d = d.AddDate(0, 0, 1) {
		if uc.window.Evaluate(d, today) != domain.VerdictOK {
			continue
		}
		if _, booked := fullSet[d.Format(domain.DateFormat)]; booked {
			continue
		}
		next := d
		resp.NextAvailableDate = &next
		break
	}

	uc.logger.Info("GetAvailability: %d fully booked dates from %s", len(full), today.Format(domain.DateFormat))
	return resp, nil
}
