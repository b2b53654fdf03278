package admit_booking

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AdmissionService/internal/infra/storage/booking"
)

const (
	outcomeAdmitted = "admitted"

	// evictTimeout ограничивает откат записи в окне после отмены запроса
	evictTimeout = 2 * time.Second
)

// UseCase use case приёма заявки на запись
type UseCase struct {
	store        BookingStore
	dedup        DedupStore
	dispatcher   Dispatcher
	observer     DecisionObserver
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case; observer может быть nil
func NewUseCase(
	store BookingStore,
	dedup DedupStore,
	dispatcher Dispatcher,
	observer DecisionObserver,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.CapacityPerDate <= 0 {
		cfg.CapacityPerDate = domain.DefaultCapacityPerDate
	}
	return &UseCase{
		store:        store,
		dedup:        dedup,
		dispatcher:   dispatcher,
		observer:     observer,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case приёма заявки.
// Любой отказ возвращается как *RejectionError. Запись в окне дедупликации,
// сделанная до внешних вызовов, откатывается на каждом пути отказа.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.admit(ctx, req)

	var rejection *RejectionError
	switch {
	case err == nil:
		uc.observe(outcomeAdmitted, "")
	case errors.As(err, &rejection):
		uc.observe("rejected", string(rejection.Reason))
	default:
		uc.observe("error", "")
	}

	return resp, err
}

func (uc *UseCase) admit(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация обязательных полей
	if rejection := validateRequest(req); rejection != nil {
		uc.logger.Warn("AdmitBooking: validation failed: %v", rejection)
		return nil, rejection
	}

	booking := req.Booking.Normalize()
	fingerprint := booking.Fingerprint()
	date := booking.AppointmentDate
	now := uc.timeProvider.Now()

	uc.logger.Info("AdmitBooking: email=%s, reg=%s, date=%s", booking.Email, booking.CarReg, date.Format(domain.DateFormat))

	// 2-3. Очистка окна, проверка подавления и оптимистичная запись одной операцией
	if err := uc.dedup.Sweep(ctx, now); err != nil {
		uc.logger.Warn("AdmitBooking: failed to sweep dedup window: %v", err)
	}

	acquired, err := uc.dedup.TryAcquire(ctx, fingerprint, now)
	if err != nil {
		uc.logger.Error("AdmitBooking: dedup window unavailable: %v", err)
		return nil, reject(ReasonDedupUnavailable, "%v", err)
	}
	if !acquired {
		uc.logger.Warn("AdmitBooking: duplicate submission fingerprint=%s", fingerprint)
		return nil, reject(ReasonDuplicate, "identical request received recently")
	}

	resp, rejection := uc.evaluate(ctx, booking, now)
	if rejection != nil {
		uc.evict(ctx, fingerprint)
		return nil, rejection
	}

	uc.logger.Info("AdmitBooking: admitted fingerprint=%s, booking_id=%s", fingerprint, resp.BookingID)
	return resp, nil
}

// evaluate выполняет шаги после записи в окне; вызывающий откатывает запись при отказе
func (uc *UseCase) evaluate(ctx context.Context, booking domain.BookingRequest, now time.Time) (*Response, *RejectionError) {
	date := booking.AppointmentDate

	// 4. Окно политики
	if verdict := uc.cfg.Window.Evaluate(date, now); verdict != domain.VerdictOK {
		uc.logger.Warn("AdmitBooking: date %s rejected by policy: %s", date.Format(domain.DateFormat), verdict)
		return nil, reject(reasonByVerdict[verdict], "%s", date.Format(domain.DateFormat))
	}

	// 5. Вместимость даты
	if rejection := uc.checkCapacity(ctx, date, "initial"); rejection != nil {
		return nil, rejection
	}

	// 6. Существующая запись с тем же ключом
	existing, err := uc.store.FindByKey(ctx, booking.Email, booking.CarReg, date)
	switch {
	case err == nil && existing != nil:
		uc.logger.Warn("AdmitBooking: booking already exists id=%d", existing.ID)
		rejection := reject(ReasonAlreadyExists, "booking id=%d", existing.ID)
		rejection.ExistingBooking = existing
		return nil, rejection
	case err == nil, errors.Is(err, bookingRepo.ErrBookingNotFound):
	default:
		uc.logger.Warn("AdmitBooking: existing booking lookup failed, skipping: %v", err)
	}

	// 7. Повторная проверка вместимости прямо перед отправкой
	if rejection := uc.checkCapacity(ctx, date, "pre-dispatch"); rejection != nil {
		return nil, rejection
	}

	// 8. Передача в workflow
	result, err := uc.dispatcher.Submit(ctx, booking, now)
	if err != nil {
		uc.logger.Error("AdmitBooking: failed to dispatch booking: %v", err)
		return nil, reject(ReasonDispatchFailed, "%v", err)
	}

	resp := &Response{BookingID: "pending", Status: domain.StatusPending}
	if result != nil && result.ID != "" {
		resp.BookingID = result.ID
	}
	return resp, nil
}

// checkCapacity отклоняет заявку при count >= CAP; недоступность хранилища пропускается
func (uc *UseCase) checkCapacity(ctx context.Context, date time.Time, stage string) *RejectionError {
	count, err := uc.store.CountByDate(ctx, date)
	if err != nil {
		uc.logger.Warn("AdmitBooking: %s capacity check failed for %s, skipping: %v", stage, date.Format(domain.DateFormat), err)
		return nil
	}

	if count >= uc.cfg.CapacityPerDate {
		uc.logger.Warn("AdmitBooking: date %s fully booked, %d/%d", date.Format(domain.DateFormat), count, uc.cfg.CapacityPerDate)
		rejection := reject(ReasonFullyBooked, "%d/%d bookings", count, uc.cfg.CapacityPerDate)
		rejection.CurrentBookings = &count
		return rejection
	}

	return nil
}

// evict откатывает запись в окне; отмена ctx запроса откат не прерывает
func (uc *UseCase) evict(ctx context.Context, fingerprint string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), evictTimeout)
	defer cancel()

	if err := uc.dedup.Evict(ctx, fingerprint); err != nil {
		uc.logger.Error("AdmitBooking: failed to evict fingerprint=%s: %v", fingerprint, err)
	}
}

func (uc *UseCase) observe(outcome, reason string) {
	if uc.observer != nil {
		uc.observer.ObserveAdmission(outcome, reason)
	}
}
