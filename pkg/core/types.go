package core

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/nikolaydubina/fpdecimal"
)

// Snapshot records. These are plain deep copies of book state suitable for
// transmission or display; they hold no references into the live structure.

// AssetAmountEntry is the external form of an AssetAmount.
type AssetAmountEntry struct {
	Amount  string `json:"amount"`
	AssetID string `json:"asset_id"`
}

// AssetPairEntry is the external form of an AssetPair.
type AssetPairEntry struct {
	First  AssetAmountEntry `json:"first"`
	Second AssetAmountEntry `json:"second"`
}

// TickEntry is the external form of a Tick. Timestamp and Timeout are in
// milliseconds.
type TickEntry struct {
	TraderID    string         `json:"trader_id"`
	OrderNumber uint64         `json:"order_number"`
	Pair        AssetPairEntry `json:"pair"`
	Timestamp   int64          `json:"timestamp"`
	Timeout     int64          `json:"timeout"`
	IsAsk       bool           `json:"is_ask"`
}

// PriceLevelEntry describes one price level: its price and the ticks queued
// at it, oldest first.
type PriceLevelEntry struct {
	Price string      `json:"price"`
	Base  string      `json:"base"`
	Quote string      `json:"quote"`
	Ticks []TickEntry `json:"ticks"`
}

// BookSnapshot is a deep, read-only copy of a whole order book, both sides.
type BookSnapshot struct {
	Book    string            `json:"book"`
	Bids    []PriceLevelEntry `json:"bids"`
	Asks    []PriceLevelEntry `json:"asks"`
	TakenAt int64             `json:"taken_at"`
}

func newAssetAmountEntry(a AssetAmount) AssetAmountEntry {
	return AssetAmountEntry{
		Amount:  a.Amount().String(),
		AssetID: a.AssetID(),
	}
}

func newTickEntry(t *Tick) TickEntry {
	return TickEntry{
		TraderID:    t.ID().Trader().String(),
		OrderNumber: uint64(t.ID().Number()),
		Pair: AssetPairEntry{
			First:  newAssetAmountEntry(t.Pair().First()),
			Second: newAssetAmountEntry(t.Pair().Second()),
		},
		Timestamp: int64(t.Timestamp()),
		Timeout:   t.Timeout().Duration().Milliseconds(),
		IsAsk:     t.IsAsk(),
	}
}

func (e AssetAmountEntry) assetAmount() (AssetAmount, error) {
	amount, err := fpdecimal.FromString(e.Amount)
	if err != nil {
		return AssetAmount{}, fmt.Errorf("failed to parse amount %q: %w", e.Amount, err)
	}
	return NewAssetAmount(amount, e.AssetID)
}

// Tick reconstructs the Tick value described by the entry.
func (e TickEntry) Tick() (*Tick, error) {
	traderBytes, err := hex.DecodeString(e.TraderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTraderID, err)
	}
	trader, err := NewTraderID(traderBytes)
	if err != nil {
		return nil, err
	}

	first, err := e.Pair.First.assetAmount()
	if err != nil {
		return nil, err
	}
	second, err := e.Pair.Second.assetAmount()
	if err != nil {
		return nil, err
	}

	return NewTick(
		NewOrderID(trader, OrderNumber(e.OrderNumber)),
		NewAssetPair(first, second),
		Timeout(time.Duration(e.Timeout)*time.Millisecond),
		Timestamp(e.Timestamp),
		e.IsAsk,
	), nil
}
