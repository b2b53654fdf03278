package create_booking

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
	"github.com/m04kA/SMC-AdmissionService/internal/service/bookings/models"
	admitBooking "github.com/m04kA/SMC-AdmissionService/internal/usecase/admit_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	CarReg          string `json:"carReg"`
	CarMake         string `json:"carMake"`
	CarModel        string `json:"carModel"`
	AppointmentDate string `json:"appointmentDate"` // "2024-06-24"
	CarNeeds        string `json:"carNeeds"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Message   string `json:"message"`
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
}

// RejectionResponse тело ответа при отказе
type RejectionResponse struct {
	Error           string                  `json:"error"`
	Reason          string                  `json:"reason"`
	CurrentBookings *int                    `json:"currentBookings,omitempty"`
	ExistingBooking *models.BookingResponse `json:"existingBooking,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Пустая дата остаётся нулевой, её отклоняет валидация use case.
func (r *CreateBookingRequest) ToUseCaseRequest() (*admitBooking.Request, error) {
	var date time.Time
	if s := strings.TrimSpace(r.AppointmentDate); s != "" {
		parsed, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	return &admitBooking.Request{Booking: domain.BookingRequest{
		Name:            r.Name,
		Email:           r.Email,
		PhoneNumber:     r.PhoneNumber,
		CarReg:          r.CarReg,
		CarMake:         r.CarMake,
		CarModel:        r.CarModel,
		AppointmentDate: date,
		CarNeeds:        r.CarNeeds,
	}}, nil
}
