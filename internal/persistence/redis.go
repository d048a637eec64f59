package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iot-kit/sensor-gateway/internal/config"
)

// Redis wraps the go-redis client used as a best-effort cache for the
// latest sensor readings.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration. An
// unreachable Redis is logged but not fatal; the cache is optional.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// CacheReading stores the latest value for a sensor under
// sensor:<id>:last, without expiry.
func (r *Redis) CacheReading(ctx context.Context, sensorID string, value float64) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	key := fmt.Sprintf("sensor:%s:last", sensorID)
	return r.Client.Set(ctx, key, value, 0).Err()
}
