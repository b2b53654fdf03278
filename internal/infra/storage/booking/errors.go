package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrUnavailable возвращается, когда хранилище недоступно (сеть, сервис, выполнение запроса)
	ErrUnavailable = errors.New("booking.repository: store unavailable")

	// ErrStatusConflict возвращается, когда статус изменился между чтением и обновлением
	ErrStatusConflict = errors.New("booking.repository: status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
