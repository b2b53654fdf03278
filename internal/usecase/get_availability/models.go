package get_availability

import "time"

// Response модель ответа с доступностью дат
type Response struct {
	UnavailableDates  []time.Time // Даты начиная с сегодня, на которые записано CAP и больше
	NextAvailableDate *time.Time  // Первая дата окна записи, прошедшая политику и не заполненная
	FirstEligibleDate time.Time
	LastEligibleDate  time.Time
}
