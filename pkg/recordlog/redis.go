package recordlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/younsl/rightsizer/internal/models"
)

// RedisWriter pushes records as JSON onto a Redis list named after the table
type RedisWriter struct {
	Client *redis.Client
}

// NewRedisWriter creates a new RedisWriter
func NewRedisWriter(client *redis.Client) *RedisWriter {
	return &RedisWriter{Client: client}
}

// PutRecord implements Writer
func (r *RedisWriter) PutRecord(ctx context.Context, table string, record models.Record) error {
	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if err := r.Client.LPush(ctx, table, jsonData).Err(); err != nil {
		return fmt.Errorf("failed to push to redis list: %w", err)
	}

	return nil
}

// Name identifies the backend in notices
func (r *RedisWriter) Name() string {
	return "redis"
}
