package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pratik-mahalle/proftrack/internal/config"
	"github.com/pratik-mahalle/proftrack/internal/domain/payment"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
)

const keyPrefix = "proftrack:payment_event:"

// PaymentEventLog implements payment.EventLog with SETNX keys that expire
// after the provider's retry window.
type PaymentEventLog struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// NewClient opens a Redis client from configuration and pings it
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// NewPaymentEventLog creates a Redis-backed event log
func NewPaymentEventLog(client goredis.UniversalClient, ttl time.Duration) payment.EventLog {
	return &PaymentEventLog{client: client, ttl: ttl}
}

// Seen reports whether reference was already recorded
func (l *PaymentEventLog) Seen(ctx context.Context, reference string) (bool, error) {
	n, err := l.client.Exists(ctx, keyPrefix+reference).Result()
	if err != nil {
		return false, errors.Internal("Failed to look up payment event", err)
	}
	return n > 0, nil
}

// Record stores reference unless it is already present
func (l *PaymentEventLog) Record(ctx context.Context, reference, eventType, email string) error {
	value := eventType + "|" + email
	if err := l.client.SetNX(ctx, keyPrefix+reference, value, l.ttl).Err(); err != nil {
		return errors.Internal("Failed to record payment event", err)
	}
	return nil
}
