package config

import (
	"testing"
	"time"

	"pharma-content-review/backend/internal/submission/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.EscalationTopic != "review-sla-escalations" {
		t.Errorf("EscalationTopic = %q", cfg.EscalationTopic)
	}
	if cfg.SweepInterval() != time.Minute {
		t.Errorf("SweepInterval = %s, want 1m", cfg.SweepInterval())
	}
}

func TestSLADurationsOverride(t *testing.T) {
	t.Setenv("SLA_SEO_REVIEW", "4h")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	durations, err := cfg.SLADurations()
	if err != nil {
		t.Fatalf("SLADurations: %v", err)
	}
	if durations[domain.StageSEOReview] != 4*time.Hour {
		t.Errorf("SEO_Review allowance = %s, want 4h", durations[domain.StageSEOReview])
	}
	// Unset stages keep defaults.
	if durations[domain.StageMLRReview] != 96*time.Hour {
		t.Errorf("MLR_Review allowance = %s, want 96h default", durations[domain.StageMLRReview])
	}
}

func TestSLADurationsInvalidOverride(t *testing.T) {
	t.Setenv("SLA_MLR_REVIEW", "ninety-six hours")
	if _, err := Load(); err == nil {
		t.Error("Load should reject unparseable SLA durations")
	}
}

func TestKafkaBrokersList(t *testing.T) {
	cfg := &Config{KafkaBrokers: "localhost:9092, broker-2:9092 ,"}
	got := cfg.KafkaBrokersList()
	if len(got) != 2 || got[0] != "localhost:9092" || got[1] != "broker-2:9092" {
		t.Errorf("brokers = %v", got)
	}
	cfg = &Config{}
	if got := cfg.KafkaBrokersList(); got != nil {
		t.Errorf("empty config brokers = %v, want nil", got)
	}
}
