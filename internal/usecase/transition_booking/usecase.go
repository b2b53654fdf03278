package transition_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AdmissionService/internal/infra/storage/booking"
)

// UseCase use case смены статуса бронирования сотрудником
type UseCase struct {
	store    BookingStore
	notifier Notifier
	logger   Logger
}

// NewUseCase создает новый экземпляр use case; notifier может быть nil
func NewUseCase(store BookingStore, notifier Notifier, logger Logger) *UseCase {
	return &UseCase{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute проверяет переход по автомату статусов и сохраняет новый статус.
// Уведомление workflow ставится в очередь после сохранения и на результат не влияет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Caller == nil || req.Caller.SubjectID == "" {
		uc.logger.Warn("TransitionBooking: unauthenticated caller for booking id=%d", req.BookingID)
		return nil, ErrUnauthenticated
	}

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	target, err := domain.ParseBookingStatus(string(req.Target))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	uc.logger.Info("TransitionBooking: booking id=%d, target=%s, caller=%s", req.BookingID, target, req.Caller.SubjectID)

	booking, err := uc.store.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("TransitionBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("TransitionBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	current := booking.Status.Effective()
	if !current.CanTransitionTo(target) {
		uc.logger.Warn("TransitionBooking: illegal transition booking id=%d %s -> %s", booking.ID, current, target)
		return nil, &IllegalTransitionError{BookingID: booking.ID, Current: current, Requested: target}
	}

	updated, err := uc.store.UpdateStatus(ctx, booking.ID, current, target)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			uc.logger.Warn("TransitionBooking: booking id=%d status changed concurrently", booking.ID)
			return nil, ErrStatusConflict
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("TransitionBooking: failed to update booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	resp := &Response{Booking: updated, Notification: NotificationDisabled}
	if uc.notifier != nil {
		id, ok := uc.notifier.Enqueue(updated.ID, target)
		resp.NotificationID = id
		if ok {
			resp.Notification = NotificationQueued
		} else {
			resp.Notification = NotificationDropped
			uc.logger.Warn("TransitionBooking: notification for booking id=%d dropped", updated.ID)
		}
	}

	uc.logger.Info("TransitionBooking: booking id=%d %s -> %s, notification=%s", updated.ID, current, target, resp.Notification)
	return resp, nil
}
