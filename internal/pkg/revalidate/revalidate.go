package revalidate

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// View paths are named after the pages that render them. Mutations
// broadcast every path that could be stale; over-invalidation is fine.
const (
	PathProperties    = "/properties"
	PathBookings      = "/bookings"
	PathOwnerBookings = "/host/bookings"
	PathAdmin         = "/admin"
	PathNotifications = "/notifications"
	PathContact       = "/admin/messages"
)

// Signaler marks cached views under the given paths as stale.
// Implementations must never fail the caller.
type Signaler interface {
	Signal(ctx context.Context, paths ...string)
}

// RedisSignaler bumps a version key per path. Readers that cache a
// rendered view store the version they rendered against and compare.
type RedisSignaler struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedis(client *redis.Client, log *zap.Logger) *RedisSignaler {
	return &RedisSignaler{client: client, log: log}
}

func (s *RedisSignaler) Signal(ctx context.Context, paths ...string) {
	if s.client == nil {
		return
	}
	for _, p := range paths {
		if err := s.client.Incr(ctx, "view:"+p).Err(); err != nil {
			s.log.Warn("view invalidation failed",
				zap.String("path", p),
				zap.Error(err))
		}
	}
}

// Version returns the current version counter for a path. Missing keys
// read as 0.
func (s *RedisSignaler) Version(ctx context.Context, path string) (int64, error) {
	if s.client == nil {
		return 0, nil
	}
	v, err := s.client.Get(ctx, "view:"+path).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

// Noop is used when no Redis is configured and in tests.
type Noop struct{}

func (Noop) Signal(ctx context.Context, paths ...string) {}
