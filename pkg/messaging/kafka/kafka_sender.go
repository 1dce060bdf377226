package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/p2pdex/bookside/pkg/messaging"
	"github.com/segmentio/kafka-go"
)

// KafkaBookEventSender implements BookEventSender using Kafka
type KafkaBookEventSender struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaBookEventSender creates a new Kafka book event sender
func NewKafkaBookEventSender(brokerAddr, topic string) (*KafkaBookEventSender, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokerAddr),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &KafkaBookEventSender{
		writer: writer,
		topic:  topic,
	}, nil
}

// SendBookEvent sends a book event to Kafka
func (k *KafkaBookEventSender) SendBookEvent(ctx context.Context, event *messaging.BookEventMessage) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal book event: %w", err)
	}

	// Key by book name so one book's events stay ordered on one partition.
	msg := kafka.Message{
		Key:   []byte(event.Book),
		Value: data,
		Time:  time.Now(),
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}

	err = k.writer.WriteMessages(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send book event to Kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka writer
func (k *KafkaBookEventSender) Close() error {
	return k.writer.Close()
}

// Ensure KafkaBookEventSender implements BookEventSender
var _ messaging.BookEventSender = (*KafkaBookEventSender)(nil)
