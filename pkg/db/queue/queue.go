package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"github.com/p2pdex/bookside/pkg/messaging"
)

const maxRetry = 5

var (
	configMu   sync.RWMutex
	brokerList = "localhost:9092"
	topic      = "bookside-events"
)

// SetBrokerList overrides the Kafka broker address used by new senders.
func SetBrokerList(brokers string) {
	configMu.Lock()
	defer configMu.Unlock()
	brokerList = brokers
}

// SetTopic overrides the Kafka topic used by new senders.
func SetTopic(t string) {
	configMu.Lock()
	defer configMu.Unlock()
	topic = t
}

func currentConfig() (string, string) {
	configMu.RLock()
	defer configMu.RUnlock()
	return brokerList, topic
}

// QueueMessageSender implements the BookEventSender interface
// for sending book events to Kafka
type QueueMessageSender struct {
	producer sarama.SyncProducer
	topic    string
}

// NewQueueMessageSender creates a sender with its own Kafka producer
func NewQueueMessageSender() (*QueueMessageSender, error) {
	brokers, t := currentConfig()

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.Retry.Max = maxRetry

	producer, err := sarama.NewSyncProducer([]string{brokers}, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &QueueMessageSender{producer: producer, topic: t}, nil
}

// NewQueueMessageSenderWithProducer creates a sender around an existing
// producer. Used by tests with a mock producer.
func NewQueueMessageSenderWithProducer(producer sarama.SyncProducer, topic string) *QueueMessageSender {
	return &QueueMessageSender{producer: producer, topic: topic}
}

// SendBookEvent sends the book event to the Kafka queue
func (q *QueueMessageSender) SendBookEvent(_ context.Context, event *messaging.BookEventMessage) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal book event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: q.topic,
		Key:   sarama.StringEncoder(event.Book),
		Value: sarama.ByteEncoder(data),
	}

	_, _, err = q.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send book event to Kafka: %w", err)
	}

	return nil
}

// Close closes the underlying producer
func (q *QueueMessageSender) Close() error {
	return q.producer.Close()
}

// Ensure QueueMessageSender implements BookEventSender
var _ messaging.BookEventSender = (*QueueMessageSender)(nil)
