package workflow

// BookingPayload тело вебхука создания бронирования
type BookingPayload struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	CarReg          string `json:"carReg"`
	CarMake         string `json:"carMake"`
	CarModel        string `json:"carModel"`
	AppointmentDate string `json:"appointmentDate"` // "2024-06-24"
	CarNeeds        string `json:"carNeeds"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

// SubmitResult ответ workflow на создание бронирования
type SubmitResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// transitionPayload тело вебхука перехода статуса
type transitionPayload struct {
	ID string `json:"id"`
}

// cancelPayload тело вебхука отмены
type cancelPayload struct {
	BookingID string `json:"bookingId"`
}

// Webhooks адреса вебхуков workflow
type Webhooks struct {
	Booking   string
	Cancel    string
	Approved  string
	Declined  string
	Completed string
}
