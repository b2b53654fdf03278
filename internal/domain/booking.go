package domain

import (
	"errors"
	"time"
)

// ErrInvalidStatus возвращается при разборе неизвестного статуса
var ErrInvalidStatus = errors.New("domain: invalid booking status")

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusDeclined  BookingStatus = "declined"
	StatusCompleted BookingStatus = "completed"
)

// allowedTransitions допустимые переходы статусов, declined и completed терминальны
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:  {StatusApproved, StatusDeclined, StatusCompleted},
	StatusApproved: {StatusCompleted},
}

// ParseBookingStatus разбирает статус из строки
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch status := BookingStatus(s); status {
	case StatusPending, StatusApproved, StatusDeclined, StatusCompleted:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Effective возвращает статус для проверки переходов.
// Строка без статуса (NULL в хранилище) ещё не рассмотрена и считается pending.
func (s BookingStatus) Effective() BookingStatus {
	if s == "" {
		return StatusPending
	}
	return s
}

// CanTransitionTo returns true if the edge s -> target is legal
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range allowedTransitions[s.Effective()] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no transition leaves this status
func (s BookingStatus) IsTerminal() bool {
	return len(allowedTransitions[s.Effective()]) == 0
}

// Booking represents a booking row of the external system of record
type Booking struct {
	ID              int64
	Name            string
	Email           string
	PhoneNumber     string
	Reg             string
	CarMake         string
	CarModel        string
	CarNeeds        string
	AppointmentDate time.Time
	Status          BookingStatus // пусто, если статус в хранилище не задан
	CreatedAt       time.Time
}

// HasStatus returns true if the store row carries a status
func (b *Booking) HasStatus() bool {
	return b.Status != ""
}

// Key ключ дубликата (email, госномер, дата)
func (b *Booking) Key() string {
	return Fingerprint(b.Email, b.Reg, b.AppointmentDate)
}

// BookingsFilter фильтр списка бронирований
type BookingsFilter struct {
	Date   *time.Time     // Конкретная дата (опционально)
	Status *BookingStatus // Фильтр по статусу (опционально)
}
