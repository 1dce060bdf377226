package queue

import (
	"sync"

	"github.com/IBM/sarama"
)

// mockProducer is an in-memory sarama.SyncProducer for tests. Sent messages
// are recorded and exposed through Sent, the same way MockBookEventSender
// records book events. Transactions are not modeled.
type mockProducer struct {
	mu       sync.Mutex
	messages []*sarama.ProducerMessage
}

// Sent returns a copy of the recorded messages.
func (m *mockProducer) Sent() []*sarama.ProducerMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	sent := make([]*sarama.ProducerMessage, len(m.messages))
	copy(sent, m.messages)
	return sent
}

func (m *mockProducer) SendMessage(msg *sarama.ProducerMessage) (partition int32, offset int64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return 0, int64(len(m.messages) - 1), nil
}

func (m *mockProducer) SendMessages(msgs []*sarama.ProducerMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}

func (m *mockProducer) IsTransactional() bool {
	return false
}

func (m *mockProducer) TxnStatus() sarama.ProducerTxnStatusFlag {
	return sarama.ProducerTxnFlagReady
}

func (m *mockProducer) BeginTxn() error { return nil }

func (m *mockProducer) CommitTxn() error { return nil }

func (m *mockProducer) AbortTxn() error { return nil }

func (m *mockProducer) AddMessageToTxn(*sarama.ConsumerMessage, string, *string) error {
	return nil
}

func (m *mockProducer) AddOffsetsToTxn(map[string][]*sarama.PartitionOffsetMetadata, string) error {
	return nil
}

// Ensure mockProducer implements SyncProducer
var _ sarama.SyncProducer = (*mockProducer)(nil)
