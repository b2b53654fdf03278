package check_date

import "errors"

// ErrInvalidInput возвращается без даты для проверки
var ErrInvalidInput = errors.New("check_date: invalid input data")
