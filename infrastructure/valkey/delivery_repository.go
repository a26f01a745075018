package valkey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/redis/go-redis/v9"

	"github.com/alexmorbo/slackhook/domain/delivery"
	"github.com/alexmorbo/slackhook/pkg/logger"
)

const (
	keyPrefix  = "slackhook:delivery:"
	DefaultTTL = 7 * 24 * time.Hour
)

var (
	redisSetOK  = metrics.NewCounter(`redis_operations_total{operation="set",status="ok"}`)
	redisSetErr = metrics.NewCounter(`redis_operations_total{operation="set",status="error"}`)
	redisSetDur = metrics.NewHistogram(`redis_operation_duration_seconds{operation="set"}`)

	redisGetOK   = metrics.NewCounter(`redis_operations_total{operation="get",status="ok"}`)
	redisGetErr  = metrics.NewCounter(`redis_operations_total{operation="get",status="error"}`)
	redisGetMiss = metrics.NewCounter(`redis_operations_total{operation="get",status="miss"}`)
	redisGetDur  = metrics.NewHistogram(`redis_operation_duration_seconds{operation="get"}`)
)

type deliveryData struct {
	ID          string    `json:"id"`
	Channel     string    `json:"channel"`
	Username    string    `json:"username"`
	Attachments int       `json:"attachments"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeliveryRepository journals relayed sends in valkey, each entry expiring after ttl.
type DeliveryRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewDeliveryRepository(client *redis.Client, ttl time.Duration, logger *slog.Logger) *DeliveryRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &DeliveryRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *DeliveryRepository) Save(ctx context.Context, d *delivery.Delivery) error {
	key := keyPrefix + d.ID()
	start := time.Now()

	data := deliveryData{
		ID:          d.ID(),
		Channel:     d.Channel(),
		Username:    d.Username(),
		Attachments: d.Attachments(),
		Status:      d.Status().String(),
		Error:       d.Error(),
		CreatedAt:   d.CreatedAt(),
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal delivery data: %w", err)
	}

	if err := r.client.Set(ctx, key, jsonData, r.ttl).Err(); err != nil {
		duration := time.Since(start).Milliseconds()
		r.logger.Error("Redis SET failed",
			logger.RedisFieldsWithError("set", key, duration, err.Error()),
		)
		redisSetErr.Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	duration := time.Since(start).Milliseconds()
	r.logger.Debug("Redis SET completed",
		logger.RedisFields("set", key, duration),
	)
	redisSetOK.Inc()
	redisSetDur.Update(float64(duration) / 1000)

	return nil
}

func (r *DeliveryRepository) FindByID(ctx context.Context, id string) (*delivery.Delivery, error) {
	key := keyPrefix + id
	start := time.Now()

	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		duration := time.Since(start).Milliseconds()
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Redis GET miss",
				logger.RedisFields("get", key, duration),
			)
			redisGetMiss.Inc()
			return nil, delivery.ErrNotFound
		}
		r.logger.Error("Redis GET failed",
			logger.RedisFieldsWithError("get", key, duration, err.Error()),
		)
		redisGetErr.Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var data deliveryData
	if err := json.Unmarshal([]byte(result), &data); err != nil {
		return nil, fmt.Errorf("unmarshal delivery data: %w", err)
	}

	duration := time.Since(start).Milliseconds()
	r.logger.Debug("Redis GET completed",
		logger.RedisFields("get", key, duration),
	)
	redisGetOK.Inc()
	redisGetDur.Update(float64(duration) / 1000)

	return delivery.RestoreDelivery(
		data.ID,
		data.Channel,
		data.Username,
		data.Attachments,
		delivery.Status(data.Status),
		data.Error,
		data.CreatedAt,
	), nil
}

func (r *DeliveryRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
