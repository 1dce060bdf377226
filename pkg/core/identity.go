package core

import (
	"encoding/hex"
	"fmt"
)

// TraderIDLength is the fixed byte length of a trader identity.
const TraderIDLength = 20

// TraderID is an opaque fixed-length peer identity. It carries no ordering
// semantics; two TraderIDs are either equal or they are not.
type TraderID [TraderIDLength]byte

// NewTraderID builds a TraderID from raw identity bytes.
func NewTraderID(b []byte) (TraderID, error) {
	var id TraderID
	if len(b) != TraderIDLength {
		return id, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidTraderID, len(b), TraderIDLength)
	}
	copy(id[:], b)
	return id, nil
}

// Bytes returns a copy of the raw identity bytes.
func (t TraderID) Bytes() []byte {
	b := make([]byte, TraderIDLength)
	copy(b, t[:])
	return b
}

// String returns the hex form of the identity.
func (t TraderID) String() string {
	return hex.EncodeToString(t[:])
}

// OrderNumber is a per-trader sequence number. Uniqueness per trader is the
// trader's responsibility; this package only relies on (TraderID, OrderNumber)
// being unique together.
type OrderNumber uint64

// OrderID is the globally unique handle for a tick. It is a value type and
// usable as a map key.
type OrderID struct {
	trader TraderID
	number OrderNumber
}

// NewOrderID creates an OrderID from a trader identity and sequence number.
func NewOrderID(trader TraderID, number OrderNumber) OrderID {
	return OrderID{trader: trader, number: number}
}

// Trader returns the trader identity component.
func (id OrderID) Trader() TraderID {
	return id.trader
}

// Number returns the per-trader sequence number component.
func (id OrderID) Number() OrderNumber {
	return id.number
}

// String implements fmt.Stringer interface
func (id OrderID) String() string {
	return fmt.Sprintf("%s.%d", id.trader, id.number)
}
