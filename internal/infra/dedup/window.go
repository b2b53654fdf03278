package dedup

import (
	"sync"
	"time"
)

// entry запись очереди вытеснения
type entry struct {
	fingerprint string
	acceptedAt  time.Time
}

// Window окно дедупликации в памяти процесса.
// Хранит момент последнего допуска для каждого fingerprint.
// Все операции выполняются под одним мьютексом и не делают ввода-вывода.
//
// Состояние локально для процесса: при нескольких инстансах подавление
// повторов работает только в пределах инстанса (см. RedisStore).
type Window struct {
	mu          sync.Mutex
	entries     map[string]time.Time
	order       []entry // в порядке записи, может содержать устаревшие элементы
	suppression time.Duration
	retention   time.Duration
}

// NewWindow создает окно с интервалом подавления и временем хранения записей
func NewWindow(suppression, retention time.Duration) *Window {
	return &Window{
		entries:     make(map[string]time.Time),
		suppression: suppression,
		retention:   retention,
	}
}

// ShouldSuppress true, если fingerprint допускался менее suppression назад
func (w *Window) ShouldSuppress(fingerprint string, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.suppressedLocked(fingerprint, now)
}

// Record записывает или перезаписывает момент допуска
func (w *Window) Record(fingerprint string, now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.recordLocked(fingerprint, now)
}

// TryAcquire атомарно выполняет ShouldSuppress и Record.
// Возвращает false, если повтор нужно подавить (запись при этом не меняется).
func (w *Window) TryAcquire(fingerprint string, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.suppressedLocked(fingerprint, now) {
		return false
	}
	w.recordLocked(fingerprint, now)
	return true
}

// Evict удаляет запись немедленно
func (w *Window) Evict(fingerprint string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.entries, fingerprint)
}

// Sweep удаляет записи старше retention и возвращает их количество.
// Очередь упорядочена по времени записи, поэтому проход останавливается
// на первой живой записи.
func (w *Window) Sweep(now time.Time) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	removed := 0
	for len(w.order) > 0 {
		head := w.order[0]
		if now.Sub(head.acceptedAt) <= w.retention {
			break
		}
		w.order = w.order[1:]

		// Запись могла быть перезаписана или удалена через Evict
		if at, ok := w.entries[head.fingerprint]; ok && at.Equal(head.acceptedAt) {
			delete(w.entries, head.fingerprint)
			removed++
		}
	}

	if len(w.order) == 0 {
		w.order = nil
	}
	return removed
}

// Len количество хранимых записей
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

func (w *Window) suppressedLocked(fingerprint string, now time.Time) bool {
	acceptedAt, ok := w.entries[fingerprint]
	return ok && now.Sub(acceptedAt) < w.suppression
}

func (w *Window) recordLocked(fingerprint string, now time.Time) {
	w.entries[fingerprint] = now
	w.order = append(w.order, entry{fingerprint: fingerprint, acceptedAt: now})
}
