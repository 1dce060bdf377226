package core

import "encoding/json"

// Tick is one standing order in the book. It is immutable once constructed:
// the asset pair, timeout and timestamp never change after insertion, so a
// Tick can be shared by value snapshots without copying concerns.
type Tick struct {
	id        OrderID
	pair      AssetPair
	timeout   Timeout
	timestamp Timestamp
	isAsk     bool
}

// NewTick creates a new immutable order record.
func NewTick(id OrderID, pair AssetPair, timeout Timeout, timestamp Timestamp, isAsk bool) *Tick {
	return &Tick{
		id:        id,
		pair:      pair,
		timeout:   timeout,
		timestamp: timestamp,
		isAsk:     isAsk,
	}
}

// ID returns the order id handle.
func (t *Tick) ID() OrderID {
	return t.id
}

// Pair returns the asset pair.
func (t *Tick) Pair() AssetPair {
	return t.pair
}

// Timeout returns the validity duration.
func (t *Tick) Timeout() Timeout {
	return t.timeout
}

// Timestamp returns the creation instant.
func (t *Tick) Timestamp() Timestamp {
	return t.timestamp
}

// IsAsk returns the direction flag.
func (t *Tick) IsAsk() bool {
	return t.isAsk
}

// Price derives the tick's price from its asset pair.
func (t *Tick) Price() (Price, error) {
	return NewPriceFromPair(t.pair)
}

// ExpiresAt returns the derived absolute expiry instant.
func (t *Tick) ExpiresAt() Timestamp {
	return t.timestamp + Timestamp(t.timeout.Duration().Milliseconds())
}

// IsExpired reports whether the tick's validity window has elapsed at now.
func (t *Tick) IsExpired(now Timestamp) bool {
	return t.ExpiresAt().Before(now)
}

// MarshalJSON implements custom JSON marshaling for Tick
func (t *Tick) MarshalJSON() ([]byte, error) {
	return json.Marshal(newTickEntry(t))
}

// UnmarshalJSON implements custom JSON unmarshaling for Tick
func (t *Tick) UnmarshalJSON(data []byte) error {
	var entry TickEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return err
	}

	tick, err := entry.Tick()
	if err != nil {
		return err
	}

	*t = *tick
	return nil
}

// String implements fmt.Stringer interface
func (t *Tick) String() string {
	j, _ := t.MarshalJSON()
	return string(j)
}
