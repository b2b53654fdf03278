package dedup

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable возвращается, когда общее хранилище окна недоступно
var ErrUnavailable = errors.New("dedup: store unavailable")

// LocalStore адаптер Window к контракту контроллера допуска
type LocalStore struct {
	window   *Window
	observer SizeObserver
}

// SizeObserver получает размер окна после каждой очистки
type SizeObserver interface {
	SetDedupEntries(n int)
}

// NewLocalStore создает хранилище поверх окна в памяти; observer может быть nil
func NewLocalStore(window *Window, observer SizeObserver) *LocalStore {
	return &LocalStore{window: window, observer: observer}
}

func (s *LocalStore) TryAcquire(_ context.Context, fingerprint string, now time.Time) (bool, error) {
	return s.window.TryAcquire(fingerprint, now), nil
}

func (s *LocalStore) Evict(_ context.Context, fingerprint string) error {
	s.window.Evict(fingerprint)
	return nil
}

func (s *LocalStore) Sweep(_ context.Context, now time.Time) error {
	s.window.Sweep(now)
	if s.observer != nil {
		s.observer.SetDedupEntries(s.window.Len())
	}
	return nil
}
