package admit_booking

import "github.com/m04kA/SMC-AdmissionService/internal/domain"

// Config параметры приёма заявок
type Config struct {
	CapacityPerDate int
	Window          domain.PolicyWindow
}

// Request модель заявки на запись
type Request struct {
	Booking domain.BookingRequest
}

// Response модель ответа на принятую заявку
type Response struct {
	BookingID string // ID, выданный workflow ("pending", если не выдан)
	Status    domain.BookingStatus
}
