package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const snapshotTTL = 24 * time.Hour

// ErrNoSnapshot is returned by Load when no snapshot exists for a collection.
var ErrNoSnapshot = errors.New("mirror: no snapshot")

// SnapshotCache persists the last successfully fetched item list per
// collection so a restarted console can serve stale data while the first
// refresh is in flight. A nil *SnapshotCache is valid and does nothing.
type SnapshotCache struct {
	redis  *redis.Client
	tracer trace.Tracer
}

// NewSnapshotCache creates a snapshot cache backed by redis.
func NewSnapshotCache(rdb *redis.Client, tracer trace.Tracer) *SnapshotCache {
	if rdb == nil {
		panic("mirror: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("dental.internal.mirror.snapshot")
	}
	return &SnapshotCache{
		redis:  rdb,
		tracer: tracer,
	}
}

// Save stores the item list for a collection, replacing any prior snapshot.
func (c *SnapshotCache) Save(ctx context.Context, collection string, items any) error {
	if c == nil {
		return nil
	}
	ctx, span := c.tracer.Start(ctx, "mirror.save_snapshot")
	defer span.End()

	data, err := json.Marshal(items)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("mirror: failed to marshal %s snapshot: %w", collection, err)
	}
	if err := c.redis.Set(ctx, snapshotKey(collection), data, snapshotTTL).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("mirror: failed to persist %s snapshot: %w", collection, err)
	}
	return nil
}

// Load reads the stored item list for a collection into out.
func (c *SnapshotCache) Load(ctx context.Context, collection string, out any) error {
	if c == nil {
		return ErrNoSnapshot
	}
	ctx, span := c.tracer.Start(ctx, "mirror.load_snapshot")
	defer span.End()

	data, err := c.redis.Get(ctx, snapshotKey(collection)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrNoSnapshot
		}
		span.RecordError(err)
		return fmt.Errorf("mirror: failed to load %s snapshot: %w", collection, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("mirror: failed to decode %s snapshot: %w", collection, err)
	}
	return nil
}

func snapshotKey(collection string) string {
	return fmt.Sprintf("snapshot:%s", collection)
}
