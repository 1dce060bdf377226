package core

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/nikolaydubina/fpdecimal"
)

func makeTrader(t *testing.T, fill byte) TraderID {
	t.Helper()
	trader, err := NewTraderID(bytes.Repeat([]byte{fill}, TraderIDLength))
	if err != nil {
		t.Fatalf("NewTraderID() error = %v", err)
	}
	return trader
}

func makeTick(t *testing.T, fill byte, number OrderNumber, first, second float64, isAsk bool) *Tick {
	t.Helper()
	pair := NewAssetPair(mustAmount(t, first, "BTC"), mustAmount(t, second, "MB"))
	return NewTick(
		NewOrderID(makeTrader(t, fill), number),
		pair,
		Timeout(100*time.Second),
		Now(),
		isAsk,
	)
}

func TestTickAccessors(t *testing.T) {
	created := Now()
	pair := NewAssetPair(mustAmount(t, 60, "BTC"), mustAmount(t, 30, "MB"))
	id := NewOrderID(makeTrader(t, '0'), 1)

	tick := NewTick(id, pair, Timeout(100*time.Second), created, true)

	if tick.ID() != id {
		t.Errorf("ID() = %v, want %v", tick.ID(), id)
	}
	if tick.Timestamp() != created {
		t.Errorf("Timestamp() = %v, want %v", tick.Timestamp(), created)
	}
	if tick.Timeout().Duration() != 100*time.Second {
		t.Errorf("Timeout() = %v, want 100s", tick.Timeout())
	}
	if !tick.IsAsk() {
		t.Error("Expected IsAsk to be true")
	}
}

func TestTickPrice(t *testing.T) {
	tick := makeTick(t, '0', 1, 60, 30, true)

	price, err := tick.Price()
	if err != nil {
		t.Fatalf("Price() error = %v", err)
	}

	if !price.Rate().Equal(fpdecimal.FromFloat(0.5)) {
		t.Errorf("Rate() = %v, want 0.5", price.Rate())
	}
	if price.Base() != "BTC" || price.Quote() != "MB" {
		t.Errorf("market = %s/%s, want BTC/MB", price.Base(), price.Quote())
	}
}

func TestTickExpiry(t *testing.T) {
	created := Now()
	pair := NewAssetPair(mustAmount(t, 60, "BTC"), mustAmount(t, 30, "MB"))
	tick := NewTick(NewOrderID(makeTrader(t, '0'), 1), pair, Timeout(100*time.Second), created, false)

	wantExpiry := created + Timestamp((100 * time.Second).Milliseconds())
	if tick.ExpiresAt() != wantExpiry {
		t.Errorf("ExpiresAt() = %v, want %v", tick.ExpiresAt(), wantExpiry)
	}

	if tick.IsExpired(created) {
		t.Error("Expected tick not to be expired at creation")
	}
	if tick.IsExpired(wantExpiry) {
		t.Error("Expected tick to still be valid exactly at expiry")
	}
	if !tick.IsExpired(wantExpiry + 1) {
		t.Error("Expected tick to be expired past expiry")
	}
}

func TestTickJSONRoundTrip(t *testing.T) {
	tick := makeTick(t, '7', 42, 120, 30, true)

	data, err := json.Marshal(tick)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Tick
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded.ID() != tick.ID() {
		t.Errorf("ID() = %v, want %v", decoded.ID(), tick.ID())
	}
	if decoded.Timestamp() != tick.Timestamp() {
		t.Errorf("Timestamp() = %v, want %v", decoded.Timestamp(), tick.Timestamp())
	}
	if !decoded.IsAsk() {
		t.Error("Expected IsAsk to survive the round trip")
	}

	price, err := decoded.Price()
	if err != nil {
		t.Fatalf("Price() error = %v", err)
	}
	if !price.Rate().Equal(fpdecimal.FromFloat(0.25)) {
		t.Errorf("Rate() = %v, want 0.25", price.Rate())
	}
}
