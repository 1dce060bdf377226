package book

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/p2pdex/bookside/pkg/core"
	"github.com/p2pdex/bookside/pkg/messaging"
	"github.com/p2pdex/bookside/pkg/otel"
)

// OrderBook holds both sides of a named book and publishes an event for
// every mutation. All operations are safe for concurrent use.
type OrderBook struct {
	mu     sync.RWMutex
	name   string
	bids   *core.Side
	asks   *core.Side
	sender messaging.BookEventSender
	logger zerolog.Logger
}

// NewOrderBook creates an empty book. The sender may be nil, in which case
// no events are published.
func NewOrderBook(name string, sender messaging.BookEventSender) *OrderBook {
	return &OrderBook{
		name:   name,
		bids:   core.NewSide(),
		asks:   core.NewSide(),
		sender: sender,
		logger: log.With().Str("book", name).Logger(),
	}
}

// Name returns the book's name
func (b *OrderBook) Name() string {
	return b.name
}

func (b *OrderBook) sideFor(isAsk bool) *core.Side {
	if isAsk {
		return b.asks
	}
	return b.bids
}

// InsertTick adds a tick to the bid or ask side according to its direction.
// The OrderID must not already rest on either side.
func (b *OrderBook) InsertTick(ctx context.Context, tick *core.Tick) error {
	ctx, span := otel.StartBookSpan(ctx, otel.SpanInsertTick,
		attribute.String(otel.AttributeBook, b.name),
		attribute.String(otel.AttributeOrderID, tick.ID().String()))
	defer otel.EndSpan(span)

	b.mu.Lock()
	if tick.IsAsk() {
		if b.bids.TickExists(tick.ID()) {
			b.mu.Unlock()
			return core.ErrDuplicateOrder
		}
	} else {
		if b.asks.TickExists(tick.ID()) {
			b.mu.Unlock()
			return core.ErrDuplicateOrder
		}
	}
	err := b.sideFor(tick.IsAsk()).InsertTick(tick)
	b.mu.Unlock()

	if err != nil {
		b.logger.Debug().
			Err(err).
			Str("order_id", tick.ID().String()).
			Msg("Tick rejected")
		return err
	}

	price, _ := tick.Price()
	otel.GetBookMetrics().RecordTickInserted(ctx, b.name, tick.IsAsk())
	b.logger.Debug().
		Str("order_id", tick.ID().String()).
		Str("price", price.String()).
		Bool("is_ask", tick.IsAsk()).
		Msg("Tick inserted")

	b.publish(ctx, &messaging.BookEventMessage{
		Book:       b.name,
		Type:       messaging.EventTickInserted,
		OrderID:    tick.ID().String(),
		Base:       price.Base(),
		Quote:      price.Quote(),
		Price:      price.Rate().String(),
		IsAsk:      tick.IsAsk(),
		OccurredAt: int64(core.Now()),
	})
	return nil
}

// RemoveTick removes a resting tick from whichever side holds it.
// Returns false when the OrderID is unknown.
func (b *OrderBook) RemoveTick(ctx context.Context, id core.OrderID) bool {
	ctx, span := otel.StartBookSpan(ctx, otel.SpanRemoveTick,
		attribute.String(otel.AttributeBook, b.name),
		attribute.String(otel.AttributeOrderID, id.String()))
	defer otel.EndSpan(span)

	b.mu.Lock()
	isAsk := true
	removed := b.asks.RemoveTick(id)
	if !removed {
		isAsk = false
		removed = b.bids.RemoveTick(id)
	}
	b.mu.Unlock()

	if !removed {
		return false
	}

	otel.GetBookMetrics().RecordTickRemoved(ctx, b.name)
	b.logger.Debug().
		Str("order_id", id.String()).
		Msg("Tick removed")

	b.publish(ctx, &messaging.BookEventMessage{
		Book:       b.name,
		Type:       messaging.EventTickRemoved,
		OrderID:    id.String(),
		IsAsk:      isAsk,
		OccurredAt: int64(core.Now()),
	})
	return true
}

// GetTick returns the resting tick with the given id from either side
func (b *OrderBook) GetTick(id core.OrderID) (*core.Tick, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if tick, err := b.asks.GetTick(id); err == nil {
		return tick, nil
	}
	return b.bids.GetTick(id)
}

// TickExists reports whether the id rests on either side
func (b *OrderBook) TickExists(id core.OrderID) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.asks.TickExists(id) || b.bids.TickExists(id)
}

// BestBid returns the highest bid price for the market, if any
func (b *OrderBook) BestBid(base, quote string) (core.Price, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bids.GetMaxPrice(base, quote)
}

// BestAsk returns the lowest ask price for the market, if any
func (b *OrderBook) BestAsk(base, quote string) (core.Price, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.asks.GetMinPrice(base, quote)
}

// BestBidLevel returns the level at the highest bid price, or nil
func (b *OrderBook) BestBidLevel(base, quote string) *core.PriceLevel {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bids.GetMaxPriceLevel(base, quote)
}

// BestAskLevel returns the level at the lowest ask price, or nil
func (b *OrderBook) BestAskLevel(base, quote string) *core.PriceLevel {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.asks.GetMinPriceLevel(base, quote)
}

// Markets returns the union of markets present on either side, sorted
func (b *OrderBook) Markets() []core.MarketKey {
	b.mu.RLock()
	defer b.mu.RUnlock()

	seen := make(map[core.MarketKey]bool)
	var keys []core.MarketKey
	for _, k := range b.bids.Markets() {
		seen[k] = true
		keys = append(keys, k)
	}
	for _, k := range b.asks.Markets() {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Base != keys[j].Base {
			return keys[i].Base < keys[j].Base
		}
		return keys[i].Quote < keys[j].Quote
	})
	return keys
}

// Len returns the total number of resting ticks on both sides
func (b *OrderBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bids.Len() + b.asks.Len()
}

// Snapshot returns a deep copy of the whole book
func (b *OrderBook) Snapshot() *core.BookSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &core.BookSnapshot{
		Book:    b.name,
		Bids:    b.bids.ListRepresentation(),
		Asks:    b.asks.ListRepresentation(),
		TakenAt: int64(core.Now()),
	}
}

// PublishSnapshot takes a snapshot and sends it as a SNAPSHOT event
func (b *OrderBook) PublishSnapshot(ctx context.Context) error {
	ctx, span := otel.StartBookSpan(ctx, otel.SpanSnapshot,
		attribute.String(otel.AttributeBook, b.name))
	defer otel.EndSpan(span)

	snapshot := b.Snapshot()
	levels := append([]core.PriceLevelEntry{}, snapshot.Bids...)
	levels = append(levels, snapshot.Asks...)

	if b.sender == nil {
		return nil
	}
	return b.sender.SendBookEvent(ctx, &messaging.BookEventMessage{
		Book:       b.name,
		Type:       messaging.EventSnapshot,
		Levels:     levels,
		OccurredAt: snapshot.TakenAt,
	})
}

// SweepExpired removes every tick whose lifetime has elapsed at the given
// instant and publishes an expiry event per tick. Returns the number of
// ticks dropped.
func (b *OrderBook) SweepExpired(ctx context.Context, now core.Timestamp) int {
	ctx, span := otel.StartBookSpan(ctx, otel.SpanSweepExpired,
		attribute.String(otel.AttributeBook, b.name))
	defer otel.EndSpan(span)

	b.mu.Lock()
	type expired struct {
		id    core.OrderID
		isAsk bool
	}
	var dropped []expired
	for _, id := range b.asks.ExpiredTicks(now) {
		if b.asks.RemoveTick(id) {
			dropped = append(dropped, expired{id: id, isAsk: true})
		}
	}
	for _, id := range b.bids.ExpiredTicks(now) {
		if b.bids.RemoveTick(id) {
			dropped = append(dropped, expired{id: id, isAsk: false})
		}
	}
	b.mu.Unlock()

	if len(dropped) == 0 {
		return 0
	}

	otel.AddAttributes(span, attribute.Int(otel.AttributeExpiredCount, len(dropped)))
	otel.GetBookMetrics().RecordTicksExpired(ctx, b.name, int64(len(dropped)))
	b.logger.Info().
		Int("count", len(dropped)).
		Msg("Swept expired ticks")

	for _, e := range dropped {
		b.publish(ctx, &messaging.BookEventMessage{
			Book:       b.name,
			Type:       messaging.EventTickExpired,
			OrderID:    e.id.String(),
			IsAsk:      e.isAsk,
			OccurredAt: int64(now),
		})
	}
	return len(dropped)
}

func (b *OrderBook) publish(ctx context.Context, msg *messaging.BookEventMessage) {
	if b.sender == nil {
		return
	}
	if err := b.sender.SendBookEvent(ctx, msg); err != nil {
		b.logger.Error().
			Err(err).
			Str("event", string(msg.Type)).
			Msg("Failed to publish book event")
	}
}
