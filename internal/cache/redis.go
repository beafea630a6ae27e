// Package cache owns the Redis client shared by the snapshot store and the
// task-history queue.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Rdb is the global Redis client. Connect it once at application startup.
var Rdb *redis.Client

// TaskHistoryRecord is one completed draw, queued for the historian service.
type TaskHistoryRecord struct {
	PlayerID  uuid.UUID `json:"player_id"`
	Name      string    `json:"name"`
	TaskText  string    `json:"task_text"`
	Category  string    `json:"category"`
	Points    int       `json:"points"`
	Timestamp int64     `json:"timestamp"`
}

// Connect initializes the global Redis client and verifies connectivity.
func Connect(addr string, db int) error {
	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return nil
}

// PublishTaskHistory serializes the record and pushes it onto the history
// queue. This is a quick network send; the historian drains the list on its
// own schedule.
func PublishTaskHistory(ctx context.Context, queue string, record TaskHistoryRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal TaskHistoryRecord: %w", err)
	}
	if err := Rdb.RPush(ctx, queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list %q: %w", queue, err)
	}
	return nil
}
