package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/p2pdex/bookside/pkg/messaging"
)

// QueueMessageConsumer reads book events back off the Kafka queue.
type QueueMessageConsumer struct {
	consumer sarama.Consumer
	topic    string
}

// NewQueueMessageConsumer creates a consumer against the configured broker
func NewQueueMessageConsumer() (*QueueMessageConsumer, error) {
	brokers, t := currentConfig()

	consumer, err := sarama.NewConsumer([]string{brokers}, sarama.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	return &QueueMessageConsumer{consumer: consumer, topic: t}, nil
}

// ConsumeBookEvents consumes book events until the context is canceled,
// invoking handler per decoded message. Undecodable messages are skipped.
func (c *QueueMessageConsumer) ConsumeBookEvents(ctx context.Context, handler func(*messaging.BookEventMessage) error) error {
	partitionConsumer, err := c.consumer.ConsumePartition(c.topic, 0, sarama.OffsetNewest)
	if err != nil {
		return fmt.Errorf("failed to consume partition: %w", err)
	}
	defer partitionConsumer.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-partitionConsumer.Errors():
			return err
		case msg := <-partitionConsumer.Messages():
			var event messaging.BookEventMessage
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				continue
			}
			if err := handler(&event); err != nil {
				return err
			}
		}
	}
}

// Close closes the underlying consumer
func (c *QueueMessageConsumer) Close() error {
	return c.consumer.Close()
}
