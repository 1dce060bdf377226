package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	// bookMetrics holds the singleton instance
	bookMetrics *BookMetrics
	// meter is the global meter for book metrics
	meter = otel.GetMeterProvider().Meter(instrumentationName)
)

// BookMetrics holds metrics for order book operations
type BookMetrics struct {
	ticksInsertedTotal metric.Int64Counter
	ticksRemovedTotal  metric.Int64Counter
	ticksExpiredTotal  metric.Int64Counter
	bookDepth          metric.Int64UpDownCounter
}

// GetBookMetrics returns the BookMetrics singleton
func GetBookMetrics() *BookMetrics {
	if bookMetrics == nil {
		ticksInsertedTotal, err := meter.Int64Counter(
			"bookside.ticks_inserted.total",
			metric.WithDescription("Total number of ticks inserted into the book"),
			metric.WithUnit("{tick}"),
		)
		if err != nil {
			return &BookMetrics{}
		}

		ticksRemovedTotal, err := meter.Int64Counter(
			"bookside.ticks_removed.total",
			metric.WithDescription("Total number of ticks removed from the book"),
			metric.WithUnit("{tick}"),
		)
		if err != nil {
			return &BookMetrics{}
		}

		ticksExpiredTotal, err := meter.Int64Counter(
			"bookside.ticks_expired.total",
			metric.WithDescription("Total number of ticks dropped by the expiry sweep"),
			metric.WithUnit("{tick}"),
		)
		if err != nil {
			return &BookMetrics{}
		}

		bookDepth, err := meter.Int64UpDownCounter(
			"bookside.book_depth",
			metric.WithDescription("Current number of resting ticks per book"),
			metric.WithUnit("{tick}"),
		)
		if err != nil {
			return &BookMetrics{}
		}

		bookMetrics = &BookMetrics{
			ticksInsertedTotal: ticksInsertedTotal,
			ticksRemovedTotal:  ticksRemovedTotal,
			ticksExpiredTotal:  ticksExpiredTotal,
			bookDepth:          bookDepth,
		}
	}

	return bookMetrics
}

// RecordTickInserted increments the inserted ticks counter and book depth
func (m *BookMetrics) RecordTickInserted(ctx context.Context, book string, isAsk bool) {
	if m.ticksInsertedTotal == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("book", book),
		attribute.Bool("is_ask", isAsk),
	}
	m.ticksInsertedTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.bookDepth.Add(ctx, 1, metric.WithAttributes(attribute.String("book", book)))
}

// RecordTickRemoved increments the removed ticks counter and decrements depth
func (m *BookMetrics) RecordTickRemoved(ctx context.Context, book string) {
	if m.ticksRemovedTotal == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("book", book),
	}
	m.ticksRemovedTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.bookDepth.Add(ctx, -1, metric.WithAttributes(attrs...))
}

// RecordTicksExpired records ticks dropped by a sweep and adjusts depth
func (m *BookMetrics) RecordTicksExpired(ctx context.Context, book string, count int64) {
	if m.ticksExpiredTotal == nil || count == 0 {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("book", book),
	}
	m.ticksExpiredTotal.Add(ctx, count, metric.WithAttributes(attrs...))
	m.bookDepth.Add(ctx, -count, metric.WithAttributes(attrs...))
}
