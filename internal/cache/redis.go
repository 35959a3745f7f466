// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/draftden/draftden/internal/models"
)

// DefaultQueueName is the Redis list (queue) name for pick event records.
var DefaultQueueName = "draftden_picks"

// snapshotTTL bounds how long a cached draft snapshot may serve reads.
const snapshotTTL = 10 * time.Minute

// ErrMiss is returned when no cached snapshot exists for a draft.
var ErrMiss = errors.New("cache miss")

// PickEventRecord is the queue payload downstream consumers see after each
// persisted pick.
type PickEventRecord struct {
	DraftID   uuid.UUID `json:"draft_id"`
	Seat      int       `json:"seat"`
	Round     int       `json:"round"`
	CardID    string    `json:"card_id"`
	CardName  string    `json:"card_name"`
	Timestamp int64     `json:"timestamp"`
}

// snapshotEnvelope pairs a draft with the version it was stored under, so a
// cached read carries a valid compare-and-swap base.
type snapshotEnvelope struct {
	Draft   *models.Draft `json:"draft"`
	Version int64         `json:"version"`
}

// Cache is a read-through cache for draft snapshots plus a pick event queue.
type Cache struct {
	rdb *redis.Client
}

// Connect initializes a Redis client from environment variables:
//   - REDIS_ADDR (default "localhost:6379")
//   - REDIS_DB (optional, default 0)
func Connect(ctx context.Context) (*Cache, error) {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	dbIdx := getEnvInt("REDIS_DB", 0)

	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return &Cache{rdb: rdb}, nil
}

func snapshotKey(draftID uuid.UUID) string {
	return "draft:" + draftID.String()
}

// GetDraft returns a cached snapshot and its version, or ErrMiss.
func (c *Cache) GetDraft(ctx context.Context, draftID uuid.UUID) (*models.Draft, int64, error) {
	data, err := c.rdb.Get(ctx, snapshotKey(draftID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, 0, ErrMiss
		}
		return nil, 0, fmt.Errorf("reading cached draft %s: %w", draftID, err)
	}
	var env snapshotEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, 0, fmt.Errorf("unmarshaling cached draft %s: %w", draftID, err)
	}
	return env.Draft, env.Version, nil
}

// SetDraft caches a snapshot at the given stored version.
func (c *Cache) SetDraft(ctx context.Context, d *models.Draft, version int64) error {
	data, err := json.Marshal(snapshotEnvelope{Draft: d, Version: version})
	if err != nil {
		return fmt.Errorf("marshaling draft %s for cache: %w", d.ID, err)
	}
	if err := c.rdb.Set(ctx, snapshotKey(d.ID), data, snapshotTTL).Err(); err != nil {
		return fmt.Errorf("caching draft %s: %w", d.ID, err)
	}
	return nil
}

// InvalidateDraft drops a cached snapshot.
func (c *Cache) InvalidateDraft(ctx context.Context, draftID uuid.UUID) error {
	return c.rdb.Del(ctx, snapshotKey(draftID)).Err()
}

// PublishPickEvent serializes the record to JSON and pushes it onto the
// pick queue. This does not block the calling logic beyond the network send.
func (c *Cache) PublishPickEvent(ctx context.Context, record PickEventRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal PickEventRecord: %w", err)
	}
	queueName := getEnv("PICK_QUEUE_NAME", DefaultQueueName)
	if err := c.rdb.RPush(ctx, queueName, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", queueName, err)
	}
	return nil
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
