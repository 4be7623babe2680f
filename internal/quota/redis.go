package quota

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var dayWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("EXPIREAT", KEYS[1], ARGV[1])
end
return count
`)

// RedisDayLimiter enforces a shared per-key daily allowance in Redis. It is
// the opt-in server-side counterpart of the client's DayTracker; keys expire
// at the next UTC midnight so the reset matches the tracker's day rollover.
type RedisDayLimiter struct {
	limit  int
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisDayLimiter creates a Redis-backed daily limiter.
func NewRedisDayLimiter(addr, password, prefix string, limit int) (*RedisDayLimiter, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("quota limiter redis addr is required")
	}
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "atelier:quota"
	}
	return &RedisDayLimiter{
		limit: limit,
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		prefix: prefix,
		now:    time.Now,
	}, nil
}

// Allow consumes one unit of the key's daily allowance and reports whether
// the key is still within quota. On Redis failures it fails closed.
func (l *RedisDayLimiter) Allow(key string) bool {
	if l == nil {
		return false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = "unknown"
	}
	now := l.now().UTC()
	day := now.Format(dayFormat)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	redisKey := fmt.Sprintf("%s:%s:%s", l.prefix, key, day)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := dayWindowScript.Run(ctx, l.client, []string{redisKey}, midnight.Unix()).Int64()
	if err != nil {
		return false
	}
	return res <= int64(l.limit)
}
