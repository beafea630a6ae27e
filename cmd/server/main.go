// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/dareloop/dareloop/internal/auth"
	"github.com/dareloop/dareloop/internal/cache"
	"github.com/dareloop/dareloop/internal/config"
	"github.com/dareloop/dareloop/internal/game"
	"github.com/dareloop/dareloop/internal/handlers"
	"github.com/dareloop/dareloop/internal/middleware"
	"github.com/dareloop/dareloop/internal/store"
)

// snapshotInterval is the periodic safety-net save behind the per-mutation
// writes.
const snapshotInterval = 5 * time.Minute

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	cfg := config.Load()

	if err := auth.Init(); err != nil {
		logger.Fatalf("auth init failed: %v", err)
	}
	gate, err := auth.NewAdminGate(cfg.AdminSecret)
	if err != nil {
		logger.Fatalf("admin gate init failed: %v", err)
	}
	if err := cache.Connect(cfg.RedisAddr, cfg.RedisDB); err != nil {
		logger.Fatalf("redis connect failed: %v", err)
	}

	registry := auth.NewRegistry()
	session := game.NewSession(cfg.MaxPlayers, cfg.SessionResetTimeout, registry)
	session.SetHistoryQueue(cfg.HistoryQueue)

	snapshots := store.New(cfg.SnapshotKey)
	if snap, ok := snapshots.Load(context.Background()); ok {
		session.Restore(snap)
	}
	session.OnMutate = snapshots.Enqueue

	srv := handlers.NewServer(session, gate, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go snapshots.RunWriter(ctx)
	go session.RunPresence(ctx)
	go snapshots.RunPeriodic(ctx, snapshotInterval, session.Snapshot)

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", handlers.PingHandler)
	mux.Handle("/ws", middleware.LogMiddleware(logger)(srv.WSHandler()))

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Infof("listening on :%s", cfg.Port)
		errc <- httpServer.ListenAndServe()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	select {
	case err := <-errc:
		logger.Errorf("server exited: %v", err)
	case sig := <-sigs:
		logger.Infof("terminating: %v", sig)
	}

	// Last save on the way out.
	snapshots.Save(context.Background(), session.Snapshot())
}
