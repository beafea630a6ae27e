// cmd/historian is an asynchronous history service: it pops task-draw records
// from the Redis queue the game server feeds and persists them to Postgres in
// batches. Running it is optional; the game never waits on it.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"sync"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/dareloop/dareloop/internal/cache"
	"github.com/dareloop/dareloop/internal/config"
	"github.com/dareloop/dareloop/internal/database"
)

// Historian drains the Redis history queue into Postgres.
type Historian struct {
	queue      string
	batchSize  int
	flushDelay time.Duration

	mu    sync.Mutex
	batch []cache.TaskHistoryRecord
}

func newHistorian(cfg config.Config) *Historian {
	return &Historian{
		queue:      cfg.HistoryQueue,
		batchSize:  20,
		flushDelay: 500 * time.Millisecond,
		batch:      make([]cache.TaskHistoryRecord, 0, 20),
	}
}

// run reads records from the queue, accumulating a batch and flushing it
// either when full or on the flush ticker.
func (h *Historian) run(ctx context.Context) {
	ticker := time.NewTicker(h.flushDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.flush(context.Background())
			return
		case <-ticker.C:
			h.flush(ctx)
		default:
			res, err := cache.Rdb.BLPop(ctx, 3*time.Second, h.queue).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
					log.Errorf("BLPop: %v", err)
				}
				continue
			}
			if len(res) < 2 {
				continue
			}
			var record cache.TaskHistoryRecord
			if err := json.Unmarshal([]byte(res[1]), &record); err != nil {
				log.Warnf("invalid history record: %v", err)
				continue
			}
			h.append(ctx, record)
		}
	}
}

func (h *Historian) append(ctx context.Context, record cache.TaskHistoryRecord) {
	h.mu.Lock()
	h.batch = append(h.batch, record)
	full := len(h.batch) >= h.batchSize
	h.mu.Unlock()
	if full {
		h.flush(ctx)
	}
}

func (h *Historian) flush(ctx context.Context) {
	h.mu.Lock()
	if len(h.batch) == 0 {
		h.mu.Unlock()
		return
	}
	batch := h.batch
	h.batch = make([]cache.TaskHistoryRecord, 0, h.batchSize)
	h.mu.Unlock()

	if err := database.InsertTaskHistoryBatch(ctx, batch); err != nil {
		log.Errorf("failed to persist %d history record(s): %v", len(batch), err)
	}
}

func main() {
	cfg := config.Load()

	if err := cache.Connect(cfg.RedisAddr, cfg.RedisDB); err != nil {
		log.Fatalf("redis connect failed: %v", err)
	}
	database.Connect()
	defer database.DB.Close()

	ctx, cancel := context.WithCancel(context.Background())
	h := newHistorian(cfg)
	go h.run(ctx)

	log.Info("historian service started")
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	<-sigs
	log.Info("historian shutting down")
	cancel()
	time.Sleep(time.Second)
}
