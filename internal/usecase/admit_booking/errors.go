package admit_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
)

var (
	// ErrInvalidRequest возвращается, когда обязательные поля отсутствуют или некорректны
	ErrInvalidRequest = errors.New("admit_booking: invalid request")

	// ErrDateInPast возвращается для даты в прошлом
	ErrDateInPast = errors.New("admit_booking: date is in the past")

	// ErrDateTooSoon возвращается, когда до даты меньше минимального срока записи
	ErrDateTooSoon = errors.New("admit_booking: date is too soon")

	// ErrDateTooFar возвращается, когда дата за горизонтом записи
	ErrDateTooFar = errors.New("admit_booking: date is too far in the future")

	// ErrWeekend возвращается для субботы и воскресенья
	ErrWeekend = errors.New("admit_booking: weekend is not allowed")

	// ErrDuplicateSubmission возвращается при повторной заявке в интервале подавления
	ErrDuplicateSubmission = errors.New("admit_booking: duplicate submission")

	// ErrDateFullyBooked возвращается, когда на дату уже CAP записей
	ErrDateFullyBooked = errors.New("admit_booking: date is fully booked")

	// ErrAlreadyExists возвращается, когда запись с тем же email, госномером и датой уже есть
	ErrAlreadyExists = errors.New("admit_booking: booking already exists")

	// ErrDispatchFailed возвращается, когда workflow не принял заявку
	ErrDispatchFailed = errors.New("admit_booking: dispatch failed")

	// ErrDedupUnavailable возвращается, когда окно дедупликации недоступно
	ErrDedupUnavailable = errors.New("admit_booking: deduplication store unavailable")
)

// RejectReason машиночитаемый код отказа
type RejectReason string

const (
	ReasonInvalidRequest   RejectReason = "invalid_request"
	ReasonDateInPast       RejectReason = "date_in_past"
	ReasonDateTooSoon      RejectReason = "date_too_soon"
	ReasonDateTooFar       RejectReason = "date_too_far"
	ReasonWeekend          RejectReason = "weekend_not_allowed"
	ReasonDuplicate        RejectReason = "duplicate_submission"
	ReasonFullyBooked      RejectReason = "date_fully_booked"
	ReasonAlreadyExists    RejectReason = "already_exists"
	ReasonDispatchFailed   RejectReason = "dispatch_failed"
	ReasonDedupUnavailable RejectReason = "dedup_unavailable"
)

var sentinelByReason = map[RejectReason]error{
	ReasonInvalidRequest:   ErrInvalidRequest,
	ReasonDateInPast:       ErrDateInPast,
	ReasonDateTooSoon:      ErrDateTooSoon,
	ReasonDateTooFar:       ErrDateTooFar,
	ReasonWeekend:          ErrWeekend,
	ReasonDuplicate:        ErrDuplicateSubmission,
	ReasonFullyBooked:      ErrDateFullyBooked,
	ReasonAlreadyExists:    ErrAlreadyExists,
	ReasonDispatchFailed:   ErrDispatchFailed,
	ReasonDedupUnavailable: ErrDedupUnavailable,
}

// RejectionError отказ в приёме заявки с деталями для клиента
type RejectionError struct {
	Reason RejectReason
	Detail string

	CurrentBookings *int            // для date_fully_booked
	ExistingBooking *domain.Booking // для already_exists
}

func (e *RejectionError) Error() string {
	if e.Detail == "" {
		return e.Unwrap().Error()
	}
	return fmt.Sprintf("%v: %s", e.Unwrap(), e.Detail)
}

// Unwrap возвращает sentinel ошибку причины
func (e *RejectionError) Unwrap() error {
	if err, ok := sentinelByReason[e.Reason]; ok {
		return err
	}
	return fmt.Errorf("admit_booking: %s", e.Reason)
}

func reject(reason RejectReason, format string, v ...interface{}) *RejectionError {
	return &RejectionError{Reason: reason, Detail: fmt.Sprintf(format, v...)}
}

var reasonByVerdict = map[domain.DateRangeVerdict]RejectReason{
	domain.VerdictPast:    ReasonDateInPast,
	domain.VerdictTooSoon: ReasonDateTooSoon,
	domain.VerdictTooFar:  ReasonDateTooFar,
	domain.VerdictWeekend: ReasonWeekend,
}
