package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const syncQueueKey = "chain:sync:queue"

// SyncQueue implements ports.SyncQueue as a Redis list. Producers RPUSH
// entry ids after commit; the reconciler worker BLPOPs them. Losing a
// nudge is harmless because the batch sweep re-selects PENDING rows.
type SyncQueue struct {
	client *goredis.Client
}

// NewSyncQueue creates a new Redis-backed sync queue.
func NewSyncQueue(client *goredis.Client) *SyncQueue {
	return &SyncQueue{client: client}
}

// Enqueue pushes a ledger entry id onto the queue.
func (q *SyncQueue) Enqueue(ctx context.Context, entryID uuid.UUID) error {
	if err := q.client.RPush(ctx, syncQueueKey, entryID.String()).Err(); err != nil {
		return fmt.Errorf("rpush sync queue: %w", err)
	}
	return nil
}

// Dequeue blocks up to timeout for the next entry id. ok is false when
// the queue stayed empty.
func (q *SyncQueue) Dequeue(ctx context.Context, timeout time.Duration) (uuid.UUID, bool, error) {
	vals, err := q.client.BLPop(ctx, timeout, syncQueueKey).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("blpop sync queue: %w", err)
	}
	// BLPop returns [key, value].
	if len(vals) != 2 {
		return uuid.Nil, false, fmt.Errorf("unexpected blpop reply: %v", vals)
	}
	id, err := uuid.Parse(vals[1])
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("malformed entry id on sync queue: %w", err)
	}
	return id, true, nil
}
