// Package publish hands completed analyses to downstream consumers.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/revradar/revradar/internal/models"
	"github.com/revradar/revradar/internal/textproc"
)

const ANALYSIS_TOPIC = "model-analyses"

// KafkaPublisher produces each persisted ModelAnalysis to a Kafka topic,
// keyed by canonical model name so downstream compaction keeps the latest
// artifact per model.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaPublisher(broker string) (*KafkaPublisher, error) {
	slog.Info("[KafkaPublisher] Initializing Kafka Producer...")

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   broker,
		"security.protocol":   "PLAINTEXT",
		"api.version.request": "true",
		"acks":                "all",
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaPublisher] Failed to create producer: %w", err)
	}

	slog.Info("[KafkaPublisher] Kafka Producer initialized successfully")
	return &KafkaPublisher{producer: p, topic: ANALYSIS_TOPIC}, nil
}

func (kp *KafkaPublisher) Publish(ctx context.Context, analysis *models.ModelAnalysis) error {
	jsonData, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("[KafkaPublisher] failed to marshal analysis: %w", err)
	}

	deliveryChan := make(chan kafka.Event, 1)
	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &kp.topic, Partition: kafka.PartitionAny},
		Key:            []byte(textproc.CanonicalKey(analysis.ModelName)),
		Value:          jsonData,
	}

	if err := kp.producer.Produce(msg, deliveryChan); err != nil {
		return fmt.Errorf("[KafkaPublisher] failed to produce message: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case e := <-deliveryChan:
		m, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("[KafkaPublisher] unexpected delivery event: %v", e)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("[KafkaPublisher] delivery failed: %w", m.TopicPartition.Error)
		}
	}

	slog.Info("[KafkaPublisher] Analysis published",
		slog.String("model", analysis.ModelName),
		slog.String("topic", kp.topic))
	return nil
}

func (kp *KafkaPublisher) Close() {
	slog.Info("[KafkaPublisher] Flushing Kafka producer before shutdown...")
	if remaining := kp.producer.Flush(5000); remaining > 0 {
		slog.Warn("[KafkaPublisher] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	kp.producer.Close()
}
