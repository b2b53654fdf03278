package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
	"github.com/m04kA/SMC-AdmissionService/pkg/ptr"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	BookingID string `json:"bookingId"`
}

// GetBookingsRequest запрос на получение списка бронирований
type GetBookingsRequest struct {
	Date   *string // "2024-06-24" (опционально)
	Status *string // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	var filter domain.BookingsFilter

	if raw := strings.TrimSpace(ptr.Value(r.Date)); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}

	if raw := ptr.Value(r.Status); raw != "" {
		status, err := domain.ParseBookingStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.Status = ptr.Ptr(status)
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PhoneNumber     string    `json:"phoneNumber"`
	CarReg          string    `json:"carReg"`
	CarMake         string    `json:"carMake"`
	CarModel        string    `json:"carModel"`
	CarNeeds        string    `json:"carNeeds"`
	AppointmentDate string    `json:"appointmentDate"` // "2024-06-24"
	Status          string    `json:"status"`          // пусто превращается в "pending"
	CreatedAt       time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		Name:            b.Name,
		Email:           b.Email,
		PhoneNumber:     b.PhoneNumber,
		CarReg:          b.Reg,
		CarMake:         b.CarMake,
		CarModel:        b.CarModel,
		CarNeeds:        b.CarNeeds,
		AppointmentDate: b.AppointmentDate.Format(domain.DateFormat),
		Status:          string(b.Status.Effective()),
		CreatedAt:       b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
