package transition_booking

import (
	"github.com/m04kA/SMC-AdmissionService/internal/service/bookings/models"
	transitionBooking "github.com/m04kA/SMC-AdmissionService/internal/usecase/transition_booking"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	Status string `json:"status"`
}

// TransitionResponse обновлённое бронирование и состояние уведомления workflow
type TransitionResponse struct {
	models.BookingResponse
	Notification string `json:"notification"`
}

// IllegalTransitionResponse тело ответа для недопустимого перехода
type IllegalTransitionResponse struct {
	Error           string `json:"error"`
	Reason          string `json:"reason"`
	CurrentStatus   string `json:"currentStatus"`
	RequestedStatus string `json:"requestedStatus"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionBooking.Response) *TransitionResponse {
	return &TransitionResponse{
		BookingResponse: *models.FromDomainBooking(resp.Booking),
		Notification:    resp.Notification,
	}
}
