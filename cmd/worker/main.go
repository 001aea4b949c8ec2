// Worker sweeps active submissions on an interval, evaluates each one's SLA
// clock, and publishes newly crossed thresholds to Kafka for the notification
// service. Without KAFKA_BROKERS escalations go to the process log.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pharma-content-review/backend/internal/config"
	"pharma-content-review/backend/internal/db"
	"pharma-content-review/backend/internal/notify"
	"pharma-content-review/backend/internal/sla"
	submissionrepo "pharma-content-review/backend/internal/submission/repository"
	"pharma-content-review/backend/internal/telemetry"
	teleotel "pharma-content-review/backend/internal/telemetry/otel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("worker: DATABASE_URL is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	providers, err := teleotel.NewProviders(ctx, cfg.OTLPEndpoint, "content-review-sla-worker", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	durations, err := cfg.SLADurations()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	metrics, err := telemetry.NewMetrics(providers.MeterProvider.Meter("content-review-sla-worker"))
	if err != nil {
		log.Fatalf("metrics: %v", err)
	}

	var notifier sla.Notifier = notify.LogNotifier{}
	if brokers := cfg.KafkaBrokersList(); len(brokers) > 0 {
		kn := notify.NewKafkaNotifier(brokers, cfg.EscalationTopic)
		defer kn.Close()
		notifier = kn
		log.Printf("worker: publishing escalations to %s", cfg.EscalationTopic)
	} else {
		log.Println("worker: KAFKA_BROKERS not set; logging escalations")
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("worker: shutting down...")
		cancel()
	}()

	subs := submissionrepo.NewPostgresRepository(database)
	sweeper := sla.NewSweeper(subs, durations, notifier, metrics, nil)

	interval := cfg.SweepInterval()
	log.Printf("worker: sweeping every %s", interval)
	sweeper.Run(ctx, interval)
	log.Println("worker: stopped")
}
