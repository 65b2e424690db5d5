// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/TradeLite0/logistics-v2-api/config"
	httpServer "github.com/TradeLite0/logistics-v2-api/handler/http"
	"github.com/TradeLite0/logistics-v2-api/internal/app/shipments"
	"github.com/TradeLite0/logistics-v2-api/internal/infra/jwtauth"
	"github.com/TradeLite0/logistics-v2-api/internal/infra/memory"
	"github.com/TradeLite0/logistics-v2-api/internal/infra/postgres"
	"github.com/TradeLite0/logistics-v2-api/internal/notify"
	notifyPort "github.com/TradeLite0/logistics-v2-api/internal/ports/notify"
	"github.com/TradeLite0/logistics-v2-api/internal/ports/repository"
	"github.com/TradeLite0/logistics-v2-api/internal/tracking"
	"github.com/TradeLite0/logistics-v2-api/pkg/kafka"
	"github.com/TradeLite0/logistics-v2-api/pkg/rabbitmq"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Storage backend: one orchestrator, pluggable store. Postgres for
	// real deployments, memory for local development.
	var (
		store   repository.ShipmentStore
		history repository.StatusHistoryStore
		tx      repository.TxManager
	)
	switch cfg.StoreBackend {
	case "memory":
		mem := memory.NewStore()
		store, history, tx = mem, mem, memory.NewTxManager(mem)
		log.Println("using in-memory store (nothing is persisted)")
	default:
		db, err := postgres.Open(cfg.DatabaseURL())
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer db.Close()
		store = postgres.NewShipmentStore(db)
		history = postgres.NewStatusHistoryStore(db)
		tx = postgres.NewTxManager(db)
	}

	// Kafka producer is optional: no broker, no events.
	var producer kafka.Publisher
	if cfg.KafkaBroker != "" {
		p := kafka.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic)
		defer p.Close()
		producer = p
	}

	// Push notifications ride the rabbitmq queue the notification
	// workers consume. Optional, like the producer.
	var notifier *notify.PushNotifier
	if cfg.AMQPURL != "" {
		rabbit, err := rabbitmq.NewClient(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer rabbit.Close()
		if err := rabbit.CreateQueue(notify.PushQueue); err != nil {
			log.Fatalf("failed to declare push queue: %v", err)
		}
		notifier = notify.NewPushNotifier(rabbit)
	}

	svc := shipments.NewService(store, history, tx, tracking.NewGenerator(), producer, wrapNotifier(notifier))
	server := httpServer.NewServer(svc, jwtauth.NewVerifier(cfg.JWTSecret))

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("http server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
}

// wrapNotifier avoids handing the service a non-nil interface wrapping
// a nil *PushNotifier when notifications are disabled.
func wrapNotifier(n *notify.PushNotifier) notifyPort.Notifier {
	if n == nil {
		return nil
	}
	return n
}
