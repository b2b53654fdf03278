package notifier

import (
	"math/rand"
	"time"
)

// Backoff экспоненциальная задержка с джиттером ±25%
type Backoff struct {
	base   time.Duration
	max    time.Duration
	jitter func(n int64) int64 // [0, n)
}

// NewBackoff создает backoff; max <= 0 означает base*16
func NewBackoff(base, max time.Duration) *Backoff {
	if max <= 0 {
		max = base * 16
	}
	return &Backoff{base: base, max: max, jitter: rand.Int63n}
}

// Delay задержка перед повтором номер attempt (начиная с 1)
func (b *Backoff) Delay(attempt int) time.Duration {
	if attempt <= 1 {
		return b.spread(b.base)
	}

	delay := b.base
	for i := 1; i < attempt && delay < b.max; i++ {
		delay *= 2
	}
	return b.spread(delay)
}

func (b *Backoff) spread(d time.Duration) time.Duration {
	if quarter := int64(d / 4); quarter > 0 && b.jitter != nil {
		// значение из [-quarter, +quarter)
		d += time.Duration(b.jitter(2*quarter) - quarter)
	}
	if d > b.max {
		d = b.max
	}
	return d
}
