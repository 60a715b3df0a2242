package repository

import (
	"context"

	"FinDash/internal/domain/models"
)

// Publisher is the producer surface used by KafkaDisplay.
type Publisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
}

// KafkaDisplay publishes region updates to a topic, keyed by region name so
// each region stays ordered on its partition.
type KafkaDisplay struct {
	producer Publisher
	topic    string
}

// NewKafkaDisplay creates a Kafka region sink.
func NewKafkaDisplay(producer Publisher, topic string) *KafkaDisplay {
	return &KafkaDisplay{producer: producer, topic: topic}
}

func (k *KafkaDisplay) Deliver(ctx context.Context, region models.Region, text string) error {
	return k.producer.Publish(ctx, k.topic, []byte(region), models.RegionUpdate{Region: region, Text: text})
}
