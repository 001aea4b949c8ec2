// Package notify delivers SLA escalation events to the external notification
// service. Kafka is the deployment transport; the log notifier covers local
// runs without a broker.
package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"pharma-content-review/backend/internal/sla"
)

// KafkaNotifier publishes escalation events to a Kafka topic. Messages are
// keyed by submission ID so per-submission ordering is preserved across
// partitions.
type KafkaNotifier struct {
	writer *kafka.Writer
}

// NewKafkaNotifier creates a notifier writing to the given topic. brokers
// must be non-empty. Call Close when shutting down.
func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
	}
	return &KafkaNotifier{writer: writer}
}

// Notify serializes the event as JSON and writes it to the topic, with a
// short timeout so a slow broker does not stall the sweep.
func (n *KafkaNotifier) Notify(ctx context.Context, ev sla.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return n.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(ev.SubmissionID),
		Value: payload,
	})
}

// Close closes the Kafka writer. Safe to call multiple times.
func (n *KafkaNotifier) Close() error {
	if n == nil || n.writer == nil {
		return nil
	}
	return n.writer.Close()
}

// LogNotifier writes escalations to the process log. Used when no broker is
// configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, ev sla.Event) error {
	log.Printf("sla escalation: submission %s at %s crossed %d%% (%.0f%% elapsed)",
		ev.SubmissionID, ev.Stage, ev.ThresholdPct, ev.Fraction*100)
	return nil
}
