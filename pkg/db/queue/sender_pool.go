package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/p2pdex/bookside/pkg/messaging"
)

var (
	senderPool   chan messaging.BookEventSender
	poolInitOnce sync.Once
	maxPoolSize  = 32
)

// initSenderPool initializes the sender pool
func initSenderPool() {
	poolInitOnce.Do(func() {
		senderPool = make(chan messaging.BookEventSender, maxPoolSize)
		for i := 0; i < maxPoolSize; i++ {
			sender, err := NewQueueMessageSender()
			if err != nil {
				fmt.Printf("Error creating sender: %v\n", err)
				continue
			}
			senderPool <- sender
		}
	})
}

// GetSender gets a sender from the pool
func GetSender() messaging.BookEventSender {
	initSenderPool()

	select {
	case sender := <-senderPool:
		return sender
	default:
		fmt.Printf("Warning: sender pool is empty\n")
		return nil
	}
}

// ReturnSender returns a sender to the pool
func ReturnSender(sender messaging.BookEventSender) {
	if sender == nil {
		return
	}

	select {
	case senderPool <- sender:
	default:
		fmt.Printf("Warning: sender pool is full\n")
		_ = sender.Close()
	}
}

// SendMessage sends a book event using a pooled sender. A sender that fails
// is closed and never returned to the pool.
func SendMessage(ctx context.Context, msg *messaging.BookEventMessage) error {
	sender := GetSender()
	if sender == nil {
		return fmt.Errorf("failed to get book event sender from pool")
	}

	if err := sender.SendBookEvent(ctx, msg); err != nil {
		fmt.Printf("Error sending book event: %v\n", err)
		_ = sender.Close()
		return err
	}

	ReturnSender(sender)
	return nil
}

// PooledSender adapts the package-level pool to the BookEventSender
// interface so an OrderBook can publish through it.
type PooledSender struct{}

// SendBookEvent sends through the pool.
func (PooledSender) SendBookEvent(ctx context.Context, msg *messaging.BookEventMessage) error {
	return SendMessage(ctx, msg)
}

// Close does nothing; pooled senders are shared.
func (PooledSender) Close() error {
	return nil
}

// Ensure PooledSender implements BookEventSender
var _ messaging.BookEventSender = PooledSender{}
