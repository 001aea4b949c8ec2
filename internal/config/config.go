// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"pharma-content-review/backend/internal/sla"
	"pharma-content-review/backend/internal/submission/domain"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`

	// OTLPEndpoint is the OTLP gRPC collector endpoint (e.g. http://localhost:4317). Empty disables export.
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext export even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTLP_INSECURE"`

	// KafkaBrokers is a comma-separated list of broker addresses for escalation events. Empty disables Kafka.
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// EscalationTopic is the Kafka topic for SLA escalation events.
	EscalationTopic string `mapstructure:"ESCALATION_KAFKA_TOPIC"`

	// SLASweepInterval is how often the worker sweeps active submissions (e.g. "1m").
	SLASweepInterval string `mapstructure:"SLA_SWEEP_INTERVAL"`

	// Per-stage SLA allowances as Go durations (e.g. "24h"). Empty keeps the default.
	SLASubmitted         string `mapstructure:"SLA_SUBMITTED"`
	SLAAIProcessing      string `mapstructure:"SLA_AI_PROCESSING"`
	SLASEOReview         string `mapstructure:"SLA_SEO_REVIEW"`
	SLAClientReview      string `mapstructure:"SLA_CLIENT_REVIEW"`
	SLAMLRReview         string `mapstructure:"SLA_MLR_REVIEW"`
	SLARevisionRequested string `mapstructure:"SLA_REVISION_REQUESTED"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("APP_ENV", "")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("OTLP_INSECURE", false)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("ESCALATION_KAFKA_TOPIC", "review-sla-escalations")
	v.SetDefault("SLA_SWEEP_INTERVAL", "1m")
	v.SetDefault("SLA_SUBMITTED", "")
	v.SetDefault("SLA_AI_PROCESSING", "")
	v.SetDefault("SLA_SEO_REVIEW", "")
	v.SetDefault("SLA_CLIENT_REVIEW", "")
	v.SetDefault("SLA_MLR_REVIEW", "")
	v.SetDefault("SLA_REVISION_REQUESTED", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if _, err := cfg.SLADurations(); err != nil {
		return nil, err
	}
	if _, err := time.ParseDuration(cfg.SLASweepInterval); err != nil {
		return nil, fmt.Errorf("config: SLA_SWEEP_INTERVAL: %w", err)
	}

	return &cfg, nil
}

// SweepInterval parses SLASweepInterval. Returns 1m if unset or invalid.
func (c *Config) SweepInterval() time.Duration {
	d, err := time.ParseDuration(c.SLASweepInterval)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// SLADurations builds the per-stage allowance table: defaults overridden by
// any configured values. Returns an error for unparseable overrides.
func (c *Config) SLADurations() (sla.Durations, error) {
	durations := sla.DefaultDurations()
	overrides := map[domain.Stage]string{
		domain.StageSubmitted:         c.SLASubmitted,
		domain.StageAIProcessing:      c.SLAAIProcessing,
		domain.StageSEOReview:         c.SLASEOReview,
		domain.StageClientReview:      c.SLAClientReview,
		domain.StageMLRReview:         c.SLAMLRReview,
		domain.StageRevisionRequested: c.SLARevisionRequested,
	}
	for stage, raw := range overrides {
		if raw == "" {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("config: SLA duration for %s: invalid value %q", stage, raw)
		}
		durations[stage] = d
	}
	return durations, nil
}

// KafkaBrokersList returns broker addresses from the comma-separated config.
// An empty list means escalation events go to the process log only.
func (c *Config) KafkaBrokersList() []string {
	if c == nil || c.KafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
