package config

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/yoockh/hirea/internal/utils"
)

// OpenRedis connects to the view cache. It returns a nil client when no
// address is configured; the cache is optional. An unreachable server is
// reported as UNAVAILABLE.
func OpenRedis(ctx context.Context, addr string) (*redis.Client, error) {
	const op = "config.OpenRedis"
	if addr == "" {
		return nil, nil
	}

	var rdb *redis.Client
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, utils.E(utils.CodeInvalidArgument, op, "invalid redis url", err)
		}
		rdb = redis.NewClient(opt)
	} else {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
	}

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, utils.E(utils.CodeUnavailable, op, "redis ping failed", err)
	}
	return rdb, nil
}
