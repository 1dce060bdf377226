package core

import (
	"fmt"
	"sort"
	"strings"
)

// tickLocator records where a tick lives. It stores addressing values only,
// never a pointer into the level structure, so level creation and removal can
// never dangle an index entry.
type tickLocator struct {
	key   MarketKey
	price Price
}

// Side holds all standing orders of one direction (all bids, or all asks)
// across all asset-pair markets. Ticks are reachable two ways: through the
// per-market price-ordered lists, and through a flat OrderID index that makes
// existence checks and removal O(1). Both structures are updated together on
// every mutation.
//
// A Side is a plain value with no process-wide state; it is not safe for
// concurrent mutation and expects a single logical owner to serialize calls.
type Side struct {
	markets map[MarketKey]*PriceLevelList
	index   map[OrderID]tickLocator
	count   int
}

// NewSide creates an empty side.
func NewSide() *Side {
	return &Side{
		markets: make(map[MarketKey]*PriceLevelList),
		index:   make(map[OrderID]tickLocator),
	}
}

// InsertTick adds a tick to its market, creating the market's level list on
// demand. Inserting an OrderID that already exists anywhere on the side is
// rejected with ErrDuplicateOrder and leaves the side untouched.
func (s *Side) InsertTick(tick *Tick) error {
	if _, exists := s.index[tick.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateOrder, tick.ID())
	}

	price, err := tick.Price()
	if err != nil {
		return err
	}
	key := price.MarketKey()

	list, exists := s.markets[key]
	if !exists {
		list = NewPriceLevelList(key)
		s.markets[key] = list
	}

	if err := list.InsertTick(tick); err != nil {
		if list.IsEmpty() {
			delete(s.markets, key)
		}
		return err
	}

	s.index[tick.ID()] = tickLocator{key: key, price: price}
	s.count++
	return nil
}

// RemoveTick removes the tick with the given id. It reports whether a removal
// occurred; an absent id is a routine outcome, not an error. A market whose
// last tick is removed disappears from the side entirely.
func (s *Side) RemoveTick(id OrderID) bool {
	loc, exists := s.index[id]
	if !exists {
		return false
	}

	list := s.markets[loc.key]
	removed := list.RemoveTick(id, loc.price)
	if list.IsEmpty() {
		delete(s.markets, loc.key)
	}
	delete(s.index, id)
	if removed {
		s.count--
	}
	return removed
}

// TickExists reports whether the id is currently on the side. O(1).
func (s *Side) TickExists(id OrderID) bool {
	_, exists := s.index[id]
	return exists
}

// GetTick returns the tick with the given id.
func (s *Side) GetTick(id OrderID) (*Tick, error) {
	loc, exists := s.index[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTickNotFound, id)
	}

	tick := s.markets[loc.key].Level(loc.price).Get(id)
	if tick == nil {
		return nil, fmt.Errorf("%w: %s", ErrTickNotFound, id)
	}
	return tick, nil
}

// GetMaxPrice returns the highest price in the (base, quote) market. The
// second return is false when the market is absent or empty.
func (s *Side) GetMaxPrice(base, quote string) (Price, bool) {
	list, exists := s.markets[MarketKey{Base: base, Quote: quote}]
	if !exists {
		return Price{}, false
	}
	return list.MaxPrice()
}

// GetMinPrice returns the lowest price in the (base, quote) market. The
// second return is false when the market is absent or empty.
func (s *Side) GetMinPrice(base, quote string) (Price, bool) {
	list, exists := s.markets[MarketKey{Base: base, Quote: quote}]
	if !exists {
		return Price{}, false
	}
	return list.MinPrice()
}

// GetMaxPriceLevel returns the highest-price level of the market with its
// queued ticks, or nil. A matching consumer reads this rather than just the
// rate.
func (s *Side) GetMaxPriceLevel(base, quote string) *PriceLevel {
	list, exists := s.markets[MarketKey{Base: base, Quote: quote}]
	if !exists {
		return nil
	}
	return list.MaxLevel()
}

// GetMinPriceLevel returns the lowest-price level of the market, or nil.
func (s *Side) GetMinPriceLevel(base, quote string) *PriceLevel {
	list, exists := s.markets[MarketKey{Base: base, Quote: quote}]
	if !exists {
		return nil
	}
	return list.MinLevel()
}

// Markets returns the keys of every market that currently has at least one
// tick, sorted for determinism. Empty when the side holds no ticks.
func (s *Side) Markets() []MarketKey {
	keys := make([]MarketKey, 0, len(s.markets))
	for key := range s.markets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Base != keys[j].Base {
			return keys[i].Base < keys[j].Base
		}
		return keys[i].Quote < keys[j].Quote
	})
	return keys
}

// ListRepresentation produces a deep, read-only snapshot: one entry per price
// level across all markets, each with its ticks in time-priority order.
func (s *Side) ListRepresentation() []PriceLevelEntry {
	entries := make([]PriceLevelEntry, 0, len(s.markets))
	for _, key := range s.Markets() {
		for _, level := range s.markets[key].Levels() {
			ticks := level.Ticks()
			entry := PriceLevelEntry{
				Price: level.Price().Rate().String(),
				Base:  key.Base,
				Quote: key.Quote,
				Ticks: make([]TickEntry, 0, len(ticks)),
			}
			for _, tick := range ticks {
				entry.Ticks = append(entry.Ticks, newTickEntry(tick))
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

// ExpiredTicks enumerates the ids of every tick whose validity window has
// elapsed at now. Sweeping them out is the caller's responsibility, via
// RemoveTick per id; this package schedules nothing.
func (s *Side) ExpiredTicks(now Timestamp) []OrderID {
	var expired []OrderID
	for _, list := range s.markets {
		for _, level := range list.Levels() {
			for _, tick := range level.Ticks() {
				if tick.IsExpired(now) {
					expired = append(expired, tick.ID())
				}
			}
		}
	}
	return expired
}

// Len returns the total tick count across all markets. O(1) via a counter
// maintained on every successful insert and remove.
func (s *Side) Len() int {
	return s.count
}

// String implements fmt.Stringer interface
func (s *Side) String() string {
	sb := strings.Builder{}
	for i, key := range s.Markets() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(s.markets[key].String())
	}
	return sb.String()
}
