package workflow

import "errors"

var (
	// ErrDispatchFailed возвращается, когда workflow отклонил запрос или недоступен
	ErrDispatchFailed = errors.New("workflow client: dispatch failed")

	// ErrNotConfigured возвращается, когда адрес вебхука не задан
	ErrNotConfigured = errors.New("workflow client: webhook not configured")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("workflow client: internal error")
)
