package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pharma-content-review/backend/internal/audit"
	auditrepo "pharma-content-review/backend/internal/audit/repository"
	"pharma-content-review/backend/internal/config"
	"pharma-content-review/backend/internal/db"
	"pharma-content-review/backend/internal/server"
	submissionrepo "pharma-content-review/backend/internal/submission/repository"
	"pharma-content-review/backend/internal/telemetry"
	teleotel "pharma-content-review/backend/internal/telemetry/otel"
	"pharma-content-review/backend/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env or set DATABASE_URL")
	}

	ctx := context.Background()

	providers, err := teleotel.NewProviders(ctx, cfg.OTLPEndpoint, "content-review-engine", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
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

	metrics, err := telemetry.NewMetrics(providers.MeterProvider.Meter("content-review-engine"))
	if err != nil {
		log.Fatalf("metrics: %v", err)
	}

	subs := submissionrepo.NewPostgresRepository(database)
	auditPG := auditrepo.NewPostgresRepository(database)
	sink := audit.Tee(auditPG, audit.NewLogSink(providers.LoggerProvider))

	engine := workflow.NewEngine(subs, sink,
		workflow.WithMetrics(metrics),
		workflow.WithTracer(providers.TracerProvider.Tracer("content-review-engine")),
	)

	srv := server.New(engine, subs, auditPG, durations, database, nil)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}
