package dedup

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "admission:dedup:"

// acquireScript атомарная проверка и запись момента допуска.
// KEYS[1] ключ fingerprint, ARGV[1] now в мс, ARGV[2] suppression в мс, ARGV[3] retention в мс.
var acquireScript = redis.NewScript(`
local prev = redis.call('GET', KEYS[1])
local now = tonumber(ARGV[1])
if prev and (now - tonumber(prev)) < tonumber(ARGV[2]) then
  return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// RedisStore окно дедупликации в Redis, общее для всех инстансов.
// Устаревшие записи удаляются TTL, поэтому Sweep ничего не делает.
type RedisStore struct {
	client      redis.UniversalClient
	prefix      string
	suppression time.Duration
	retention   time.Duration
}

// NewRedisStore создает окно в Redis; пустой prefix заменяется на значение по умолчанию
func NewRedisStore(client redis.UniversalClient, prefix string, suppression, retention time.Duration) *RedisStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStore{
		client:      client,
		prefix:      prefix,
		suppression: suppression,
		retention:   retention,
	}
}

func (s *RedisStore) TryAcquire(ctx context.Context, fingerprint string, now time.Time) (bool, error) {
	res, err := acquireScript.Run(ctx, s.client,
		[]string{s.key(fingerprint)},
		strconv.FormatInt(now.UnixMilli(), 10),
		s.suppression.Milliseconds(),
		s.retention.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("%w: acquire: %v", ErrUnavailable, err)
	}
	return res == 1, nil
}

func (s *RedisStore) Evict(ctx context.Context, fingerprint string) error {
	if err := s.client.Del(ctx, s.key(fingerprint)).Err(); err != nil {
		return fmt.Errorf("%w: evict: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Sweep(context.Context, time.Time) error {
	return nil
}

func (s *RedisStore) key(fingerprint string) string {
	return s.prefix + fingerprint
}
