package cleanup_duplicates

import "errors"

// ErrStoreUnavailable возвращается, когда список бронирований не получен
var ErrStoreUnavailable = errors.New("cleanup_duplicates: booking store unavailable")
