package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// Span names
	SpanInsertTick   = "insert_tick"
	SpanRemoveTick   = "remove_tick"
	SpanSweepExpired = "sweep_expired"
	SpanSnapshot     = "snapshot"
	SpanSendToKafka  = "send_to_kafka"

	// Attribute keys
	AttributeBook         = "book.name"
	AttributeOrderID      = "tick.order_id"
	AttributeTickSide     = "tick.side"
	AttributeTickPrice    = "tick.price"
	AttributeMarket       = "tick.market"
	AttributeExpiredCount = "sweep.expired_count"
)

// StartBookSpan starts a new span for a book operation
func StartBookSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := GetBooksideTracer()
	if tracer == nil {
		return ctx, nil
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// AddAttributes adds attributes to a span
func AddAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	if span == nil {
		return
	}
	span.SetAttributes(attrs...)
}

// EndSpan ends a span if it exists
func EndSpan(span trace.Span) {
	if span == nil {
		return
	}
	span.End()
}
