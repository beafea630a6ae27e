// Package store is the persistence gateway for the session snapshot. Writes
// are fire-and-forget: a failed save is logged and swallowed, the in-memory
// session stays authoritative, and the next mutation or periodic tick is the
// implicit retry.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/dareloop/dareloop/internal/cache"
	"github.com/dareloop/dareloop/internal/models"
)

// SnapshotStore reads and writes the single flat session document. Per-mutation
// writes go through a one-deep queue drained by RunWriter, so saves reach
// Redis in order and a burst of mutations collapses into the newest state.
type SnapshotStore struct {
	key     string
	pending chan models.SessionSnapshot
}

// New returns a store writing the snapshot under the given Redis key.
func New(key string) *SnapshotStore {
	return &SnapshotStore{
		key:     key,
		pending: make(chan models.SessionSnapshot, 1),
	}
}

// Enqueue hands the writer the newest snapshot without blocking. A snapshot
// already waiting is replaced; only the latest state needs to survive.
func (s *SnapshotStore) Enqueue(snap models.SessionSnapshot) {
	for {
		select {
		case s.pending <- snap:
			return
		default:
		}
		select {
		case <-s.pending:
		default:
		}
	}
}

// RunWriter drains the queue one snapshot at a time until ctx is cancelled.
func (s *SnapshotStore) RunWriter(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-s.pending:
			s.Save(ctx, snap)
		}
	}
}

// Save overwrites the snapshot document wholesale. Never returns an error to
// the caller; gameplay must not block or fail on persistence.
func (s *SnapshotStore) Save(ctx context.Context, snap models.SessionSnapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		log.Errorf("snapshot marshal failed: %v", err)
		return
	}
	writeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := cache.Rdb.Set(writeCtx, s.key, data, 0).Err(); err != nil {
		log.Errorf("snapshot save failed: %v", err)
	}
}

// Load reads and parses the snapshot document. A missing key or a document
// that fails to parse both yield (nil, false): the caller starts fresh.
func (s *SnapshotStore) Load(ctx context.Context) (*models.SessionSnapshot, bool) {
	readCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	data, err := cache.Rdb.Get(readCtx, s.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Errorf("snapshot load failed: %v", err)
		}
		return nil, false
	}
	var snap models.SessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Warnf("snapshot parse failed, starting fresh: %v", err)
		return nil, false
	}
	return &snap, true
}

// RunPeriodic queues the snapshot produced by take every interval until ctx
// is cancelled. This is the safety net behind the per-mutation saves; routing
// it through the queue keeps the writer the only goroutine touching the key.
func (s *SnapshotStore) RunPeriodic(ctx context.Context, interval time.Duration, take func() models.SessionSnapshot) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(take())
		}
	}
}
