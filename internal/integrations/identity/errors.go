package identity

import "errors"

var (
	// ErrMissingToken возвращается, когда токен не передан
	ErrMissingToken = errors.New("identity: missing token")

	// ErrInvalidToken возвращается для неподписанного, просроченного или некорректного токена
	ErrInvalidToken = errors.New("identity: invalid or expired token")
)
