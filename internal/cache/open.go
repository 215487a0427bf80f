package cache

import (
	"context"
	"fmt"
)

// OpenStore builds the store named by backend ("memory", "sqlite", "redis").
func OpenStore(ctx context.Context, backend, sqlitePath, redisURL string) (Store, error) {
	switch backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		s, err := NewSQLiteStore(sqlitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		return s, nil
	case "redis":
		s, err := NewRedisStore(ctx, redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
