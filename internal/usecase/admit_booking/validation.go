package admit_booking

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
)

// validateRequest проверяет обязательные поля и длины до нормализации
func validateRequest(req *Request) *RejectionError {
	b := req.Booking

	required := []struct {
		name  string
		value string
	}{
		{"name", b.Name},
		{"email", b.Email},
		{"phoneNumber", b.PhoneNumber},
		{"carReg", b.CarReg},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return reject(ReasonInvalidRequest, "%s is required", f.name)
		}
	}

	if b.AppointmentDate.IsZero() {
		return reject(ReasonInvalidRequest, "appointmentDate is required")
	}

	limits := []struct {
		name  string
		value string
		max   int
	}{
		{"name", b.Name, domain.MaxNameLength},
		{"email", b.Email, domain.MaxEmailLength},
		{"phoneNumber", b.PhoneNumber, domain.MaxPhoneLength},
		{"carReg", b.CarReg, domain.MaxRegLength},
		{"carNeeds", b.CarNeeds, domain.MaxCarNeedsLength},
	}
	for _, f := range limits {
		if utf8.RuneCountInString(strings.TrimSpace(f.value)) > f.max {
			return reject(ReasonInvalidRequest, "%s must be at most %d characters", f.name, f.max)
		}
	}

	email := strings.TrimSpace(b.Email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return reject(ReasonInvalidRequest, "email is malformed")
	}

	return nil
}
