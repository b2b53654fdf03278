package transition_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
)

var (
	// ErrUnauthenticated возвращается без подтверждённой личности сотрудника
	ErrUnauthenticated = errors.New("transition_booking: caller is not authenticated")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("transition_booking: booking not found")

	// ErrIllegalTransition возвращается для перехода, которого нет в автомате статусов
	ErrIllegalTransition = errors.New("transition_booking: illegal status transition")

	// ErrStatusConflict возвращается, когда статус изменили параллельно
	ErrStatusConflict = errors.New("transition_booking: status changed concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_booking: internal error")
)

// IllegalTransitionError недопустимый переход с текущим и запрошенным статусом
type IllegalTransitionError struct {
	BookingID int64
	Current   domain.BookingStatus
	Requested domain.BookingStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%v: booking id=%d %s -> %s", ErrIllegalTransition, e.BookingID, e.Current, e.Requested)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}
