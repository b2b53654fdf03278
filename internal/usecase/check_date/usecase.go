package check_date

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
)

// UseCase use case предварительной проверки даты
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

// Execute возвращает вердикт политики для даты и признак заполненности.
// Недоступность хранилища не делает дату заполненной.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := domain.DateOnly(req.Date)
	resp := &Response{
		Date:    date,
		Verdict: uc.window.Evaluate(date, uc.timeProvider.Now()),
	}

	if resp.Verdict != domain.VerdictOK {
		return resp, nil
	}

	count, err := uc.store.CountByDate(ctx, date)
	if err != nil {
		uc.logger.Warn("CheckDate: capacity lookup failed for %s, reporting as not full: %v", date.Format(domain.DateFormat), err)
		return resp, nil
	}

	resp.CapacityKnown = true
	resp.CurrentBookings = &count
	resp.Full = count >= uc.capacity
	return resp, nil
}
