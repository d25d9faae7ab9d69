package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dashboardKey = "analytics:dashboard"
	dashboardTTL = 30 * time.Second
)

// Store caches the analytics dashboard payload. All operations are
// best-effort; callers fall back to recomputation on any error.
type Store struct {
	rdb *redis.Client
}

func New(addr, password string, db int) *Store {
	return &Store{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// GetDashboard returns the cached payload, redis.Nil when absent.
func (s *Store) GetDashboard(ctx context.Context) ([]byte, error) {
	return s.rdb.Get(ctx, dashboardKey).Bytes()
}

func (s *Store) SetDashboard(ctx context.Context, payload []byte) error {
	return s.rdb.Set(ctx, dashboardKey, payload, dashboardTTL).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}
