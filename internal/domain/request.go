package domain

import (
	"strings"
	"time"
)

// BookingRequest заявка на запись, как её прислал клиент
type BookingRequest struct {
	Name            string
	Email           string
	PhoneNumber     string
	CarReg          string
	CarMake         string
	CarModel        string
	AppointmentDate time.Time
	CarNeeds        string
}

// Normalize обрезает пробелы, приводит email к нижнему регистру, госномер к верхнему
func (r BookingRequest) Normalize() BookingRequest {
	return BookingRequest{
		Name:            strings.TrimSpace(r.Name),
		Email:           NormalizeEmail(r.Email),
		PhoneNumber:     strings.TrimSpace(r.PhoneNumber),
		CarReg:          NormalizeReg(r.CarReg),
		CarMake:         strings.TrimSpace(r.CarMake),
		CarModel:        strings.TrimSpace(r.CarModel),
		AppointmentDate: DateOnly(r.AppointmentDate),
		CarNeeds:        strings.TrimSpace(r.CarNeeds),
	}
}

// Fingerprint ключ дедупликации заявки
func (r BookingRequest) Fingerprint() string {
	return Fingerprint(r.Email, r.CarReg, r.AppointmentDate)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizeReg(reg string) string {
	return strings.ToUpper(strings.TrimSpace(reg))
}

// Fingerprint строит ключ из нормализованных email, госномера и даты
func Fingerprint(email, reg string, date time.Time) string {
	return NormalizeEmail(email) + "|" + NormalizeReg(reg) + "|" + DateOnly(date).Format(DateFormat)
}
