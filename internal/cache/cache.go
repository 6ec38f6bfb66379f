// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/gillessed/palantarot-sub001/engine"
	"github.com/gillessed/palantarot-sub001/internal/config"
)

// Rdb is the shared Redis client. Nil until Init succeeds; callers treat a
// nil client as "history stream disabled".
var Rdb *redis.Client

// GameEventRecord is the wire form of one log entry on a table's history
// stream. Index is the event's position in the authoritative log, so
// consumers can detect gaps and re-request a catch-up.
type GameEventRecord struct {
	TableID   uuid.UUID          `json:"table_id"`
	Index     int                `json:"index"`
	Type      string             `json:"type"`
	Event     engine.PlayerEvent `json:"event"`
	Timestamp int64              `json:"timestamp_ms"`
}

// Init connects the shared client and verifies the connection.
func Init(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	Rdb = client
	logrus.WithField("addr", config.RedisAddr()).Info("connected to redis")
	return nil
}

func historyKey(tableID uuid.UUID) string {
	return fmt.Sprintf("table:%s:history", tableID)
}

// PublishGameEvent appends one record to the table's history list and
// publishes it on the table's channel for live consumers.
func PublishGameEvent(ctx context.Context, rec GameEventRecord) error {
	if Rdb == nil {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal event record: %w", err)
	}
	key := historyKey(rec.TableID)
	pipe := Rdb.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Publish(ctx, key, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish event record: %w", err)
	}
	return nil
}

// GameHistory reads back every record on a table's history list, oldest
// first.
func GameHistory(ctx context.Context, tableID uuid.UUID) ([]GameEventRecord, error) {
	if Rdb == nil {
		return nil, nil
	}
	raw, err := Rdb.LRange(ctx, historyKey(tableID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	out := make([]GameEventRecord, 0, len(raw))
	for _, item := range raw {
		var rec GameEventRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("decode history record: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}
