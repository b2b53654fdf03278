package transition_booking

import (
	"github.com/m04kA/SMC-AdmissionService/internal/domain"
	"github.com/m04kA/SMC-AdmissionService/internal/integrations/identity"
)

// Состояние уведомления workflow о переходе
const (
	NotificationQueued   = "queued"
	NotificationDropped  = "dropped"
	NotificationDisabled = "disabled"
)

// Request модель запроса на смену статуса
type Request struct {
	BookingID int64
	Target    domain.BookingStatus
	Caller    *identity.Identity // подтверждённая личность сотрудника
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	Booking        *domain.Booking
	Notification   string
	NotificationID string
}
