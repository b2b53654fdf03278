package get_availability

import "errors"

// ErrStoreUnavailable возвращается, когда хранилище бронирований недоступно
var ErrStoreUnavailable = errors.New("get_availability: booking store unavailable")
