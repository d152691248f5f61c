package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"menlo.ai/catalog-admin/app/utils/logger"
)

var ErrKeyNotFound = errors.New("key not found")

type RedisCacheService struct {
	client redis.UniversalClient
}

// NewRedisCacheService connects to the comma separated addresses or URLs in
// redisURL and pings the server before returning.
func NewRedisCacheService(ctx context.Context, redisURL string, password string, db int) (*RedisCacheService, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis url is empty")
	}

	opts, err := buildUniversalOptions(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	if password != "" {
		opts.Password = password
	}

	if db != 0 {
		opts.DB = db
	}

	if len(opts.Addrs) > 1 && opts.DB != 0 {
		logger.GetLogger().Warn("Ignoring non-zero REDIS_DB when using Redis Cluster configuration")
		opts.DB = 0
	}

	client := redis.NewUniversalClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.GetLogger().Info("Successfully connected to Redis")

	return &RedisCacheService{
		client: client,
	}, nil
}

func buildUniversalOptions(raw string) (*redis.UniversalOptions, error) {
	parts := strings.Split(raw, ",")
	opts := &redis.UniversalOptions{}

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.Contains(part, "://") {
			parsed, err := redis.ParseURL(part)
			if err != nil {
				return nil, err
			}

			opts.Addrs = append(opts.Addrs, parsed.Addr)

			if opts.Username == "" {
				opts.Username = parsed.Username
			}

			if opts.Password == "" {
				opts.Password = parsed.Password
			}

			if opts.DB == 0 {
				opts.DB = parsed.DB
			}

			if opts.TLSConfig == nil {
				opts.TLSConfig = parsed.TLSConfig
			}

			if opts.ReadTimeout == 0 {
				opts.ReadTimeout = parsed.ReadTimeout
			}

			if opts.WriteTimeout == 0 {
				opts.WriteTimeout = parsed.WriteTimeout
			}

			if opts.DialTimeout == 0 {
				opts.DialTimeout = parsed.DialTimeout
			}

			if opts.PoolSize == 0 {
				opts.PoolSize = parsed.PoolSize
			}

			if opts.MinIdleConns == 0 {
				opts.MinIdleConns = parsed.MinIdleConns
			}
		} else {
			opts.Addrs = append(opts.Addrs, part)
		}
	}

	if len(opts.Addrs) == 0 {
		return nil, fmt.Errorf("no Redis addresses provided")
	}

	return opts, nil
}

func (r *RedisCacheService) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisCacheService) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to get value: %w", err)
	}

	return val, nil
}

func (r *RedisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisCacheService) Close() error {
	return r.client.Close()
}

func (r *RedisCacheService) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
