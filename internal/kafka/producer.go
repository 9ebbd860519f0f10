// Package kafka carries booking events between the API process and the
// notifier worker.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// BookingEvent is published when a booking is created. Destination carries
// the catalog name when it could be resolved; the booking itself never
// depends on the destination existing.
type BookingEvent struct {
	Type          string `json:"type"`
	BookingID     int64  `json:"booking_id"`
	Reference     string `json:"reference"`
	UserID        int64  `json:"user_id"`
	Email         string `json:"email"`
	DestinationID int64  `json:"destination_id"`
	Destination   string `json:"destination"`
	Price         string `json:"price"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
