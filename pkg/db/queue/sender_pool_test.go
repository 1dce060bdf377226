package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p2pdex/bookside/pkg/messaging"
)

// stubSender fails with err when set and records whether it was closed.
type stubSender struct {
	err    error
	closed bool
}

func (s *stubSender) SendBookEvent(context.Context, *messaging.BookEventMessage) error {
	return s.err
}

func (s *stubSender) Close() error {
	s.closed = true
	return nil
}

// seedPool replaces the package pool with the given senders, bypassing the
// lazy Kafka-backed initialization.
func seedPool(t *testing.T, senders ...messaging.BookEventSender) {
	t.Helper()
	poolInitOnce.Do(func() {})
	senderPool = make(chan messaging.BookEventSender, maxPoolSize)
	for _, s := range senders {
		senderPool <- s
	}
}

func TestSendMessagePoolsSenderOnSuccess(t *testing.T) {
	sender := &stubSender{}
	seedPool(t, sender)

	err := SendMessage(context.Background(), &messaging.BookEventMessage{Book: "BTC-MB"})
	require.NoError(t, err)
	assert.Len(t, senderPool, 1)
	assert.False(t, sender.closed)
}

func TestSendMessageDoesNotPoolFailedSender(t *testing.T) {
	sender := &stubSender{err: errors.New("broker down")}
	seedPool(t, sender)

	err := SendMessage(context.Background(), &messaging.BookEventMessage{Book: "BTC-MB"})
	require.Error(t, err)

	// The broken sender is closed and dropped, not handed out again
	assert.True(t, sender.closed)
	assert.Empty(t, senderPool)
}

func TestSendMessageEmptyPool(t *testing.T) {
	seedPool(t)

	err := SendMessage(context.Background(), &messaging.BookEventMessage{Book: "BTC-MB"})
	assert.Error(t, err)
}
