package messaging

import (
	"context"

	"github.com/p2pdex/bookside/pkg/core"
)

// EventType identifies what happened to the book.
type EventType string

// Book event types
const (
	EventTickInserted EventType = "TICK_INSERTED"
	EventTickRemoved  EventType = "TICK_REMOVED"
	EventTickExpired  EventType = "TICK_EXPIRED"
	EventSnapshot     EventType = "SNAPSHOT"
)

// BookEventMessage is the message published for every book mutation and for
// periodic snapshots. All payloads are plain records; consumers never receive
// references into the live book.
type BookEventMessage struct {
	Book       string                 `json:"book"`
	Type       EventType              `json:"type"`
	OrderID    string                 `json:"order_id,omitempty"`
	Base       string                 `json:"base,omitempty"`
	Quote      string                 `json:"quote,omitempty"`
	Price      string                 `json:"price,omitempty"`
	IsAsk      bool                   `json:"is_ask,omitempty"`
	Levels     []core.PriceLevelEntry `json:"levels,omitempty"`
	OccurredAt int64                  `json:"occurred_at"`
}

// BookEventSender defines an interface for publishing book events.
// This decouples the book package from specific transports like Kafka.
type BookEventSender interface {
	SendBookEvent(ctx context.Context, msg *BookEventMessage) error
	Close() error
}
