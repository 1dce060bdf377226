package messaging

import (
	"context"
	"sync"
)

// MockBookEventSender records events in memory for assertions in tests.
type MockBookEventSender struct {
	mu   sync.Mutex
	sent []*BookEventMessage
}

// NewMockBookEventSender creates a new MockBookEventSender.
func NewMockBookEventSender() *MockBookEventSender {
	return &MockBookEventSender{}
}

// SendBookEvent records the message.
func (m *MockBookEventSender) SendBookEvent(_ context.Context, msg *BookEventMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

// Sent returns a copy of the recorded messages.
func (m *MockBookEventSender) Sent() []*BookEventMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	sent := make([]*BookEventMessage, len(m.sent))
	copy(sent, m.sent)
	return sent
}

// Close does nothing.
func (m *MockBookEventSender) Close() error {
	return nil
}

// Ensure MockBookEventSender implements BookEventSender
var _ BookEventSender = (*MockBookEventSender)(nil)
