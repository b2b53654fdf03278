package check_date

import (
	"time"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
)

// Request модель запроса проверки даты
type Request struct {
	Date time.Time
}

// Response вердикт для даты, тот же, что применяется при приёме заявки
type Response struct {
	Date            time.Time
	Verdict         domain.DateRangeVerdict
	Full            bool
	CapacityKnown   bool // false, если хранилище недоступно
	CurrentBookings *int
}

// Available дата проходит политику и не заполнена
func (r *Response) Available() bool {
	return r.Verdict == domain.VerdictOK && !r.Full
}
