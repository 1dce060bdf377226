package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p2pdex/bookside/pkg/messaging"
)

func TestQueueMessageSenderSendBookEvent(t *testing.T) {
	producer := &mockProducer{}
	sender := NewQueueMessageSenderWithProducer(producer, "test-topic")

	event := &messaging.BookEventMessage{
		Book:       "BTC-MB",
		Type:       messaging.EventTickInserted,
		OrderID:    "00000000000000000000000000000000000000aa.1",
		Base:       "BTC",
		Quote:      "MB",
		Price:      "0.5",
		IsAsk:      true,
		OccurredAt: 1700000000000,
	}

	err := sender.SendBookEvent(context.Background(), event)
	require.NoError(t, err)

	sent := producer.Sent()
	require.Len(t, sent, 1)
	msg := sent[0]
	assert.Equal(t, "test-topic", msg.Topic)

	key, err := msg.Key.Encode()
	require.NoError(t, err)
	assert.Equal(t, "BTC-MB", string(key))

	value, err := msg.Value.Encode()
	require.NoError(t, err)

	var decoded messaging.BookEventMessage
	require.NoError(t, json.Unmarshal(value, &decoded))
	assert.Equal(t, event.Book, decoded.Book)
	assert.Equal(t, event.Type, decoded.Type)
	assert.Equal(t, event.OrderID, decoded.OrderID)
	assert.Equal(t, event.Price, decoded.Price)
	assert.True(t, decoded.IsAsk)
}

func TestQueueMessageSenderClose(t *testing.T) {
	sender := NewQueueMessageSenderWithProducer(&mockProducer{}, "test-topic")
	assert.NoError(t, sender.Close())
}

func TestQueueConfigOverrides(t *testing.T) {
	SetBrokerList("broker:9093")
	SetTopic("override-topic")
	defer func() {
		SetBrokerList("localhost:9092")
		SetTopic("bookside-events")
	}()

	brokers, topic := currentConfig()
	assert.Equal(t, "broker:9093", brokers)
	assert.Equal(t, "override-topic", topic)
}
