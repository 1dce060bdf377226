package core

import (
	"fmt"
	"strings"
)

// levelNode links price levels in ascending rate order.
type levelNode struct {
	level *PriceLevel
	next  *levelNode
	prev  *levelNode
}

// PriceLevelList holds all price levels of one asset-pair market, ordered by
// rate. The head is the lowest price, the tail the highest, so best/worst
// price queries are O(1). Levels are also indexed by exact rate for O(1)
// removal by price; no operation scans the ordered structure to find a level.
type PriceLevelList struct {
	key    MarketKey
	head   *levelNode
	tail   *levelNode
	levels map[string]*levelNode
	ticks  int
}

// NewPriceLevelList creates an empty list for one market.
func NewPriceLevelList(key MarketKey) *PriceLevelList {
	return &PriceLevelList{
		key:    key,
		levels: make(map[string]*levelNode),
	}
}

// MarketKey returns the market this list belongs to.
func (pl *PriceLevelList) MarketKey() MarketKey {
	return pl.key
}

// InsertTick derives the tick's price and appends it to the level at that
// price, creating the level at its sorted position when absent.
func (pl *PriceLevelList) InsertTick(tick *Tick) error {
	price, err := tick.Price()
	if err != nil {
		return err
	}
	if price.MarketKey() != pl.key {
		return fmt.Errorf("%w: tick market %s, list market %s", ErrMismatchedMarket, price.MarketKey(), pl.key)
	}

	rateKey := price.Rate().String()
	if node, exists := pl.levels[rateKey]; exists {
		if err := node.level.Append(tick); err != nil {
			return err
		}
		pl.ticks++
		return nil
	}

	level := NewPriceLevel(price)
	if err := level.Append(tick); err != nil {
		return err
	}

	node := &levelNode{level: level}
	pl.levels[rateKey] = node
	pl.ticks++

	// Link at the sorted position, ascending by rate.
	if pl.head == nil {
		pl.head = node
		pl.tail = node
		return nil
	}

	rate := price.Rate()
	if rate.LessThan(pl.head.level.price.Rate()) {
		node.next = pl.head
		pl.head.prev = node
		pl.head = node
	} else if rate.GreaterThan(pl.tail.level.price.Rate()) {
		node.prev = pl.tail
		pl.tail.next = node
		pl.tail = node
	} else {
		current := pl.head
		for current != nil && rate.GreaterThan(current.level.price.Rate()) {
			current = current.next
		}
		node.next = current
		node.prev = current.prev
		current.prev.next = node
		current.prev = node
	}

	return nil
}

// RemoveTick removes the tick with the given id from the level at the given
// price. The level lookup is O(1) via the rate index. An emptied level is
// unlinked immediately; empty levels are never retained.
func (pl *PriceLevelList) RemoveTick(id OrderID, price Price) bool {
	node, exists := pl.levels[price.Rate().String()]
	if !exists {
		return false
	}

	if !node.level.Remove(id) {
		return false
	}
	pl.ticks--

	if node.level.IsEmpty() {
		delete(pl.levels, price.Rate().String())

		if node.prev != nil {
			node.prev.next = node.next
		} else {
			pl.head = node.next
		}
		if node.next != nil {
			node.next.prev = node.prev
		} else {
			pl.tail = node.prev
		}
	}

	return true
}

// Level returns the level at the exact price, or nil.
func (pl *PriceLevelList) Level(price Price) *PriceLevel {
	node, exists := pl.levels[price.Rate().String()]
	if !exists {
		return nil
	}
	return node.level
}

// MinPrice returns the lowest price in the market. The second return is false
// when the market holds no levels.
func (pl *PriceLevelList) MinPrice() (Price, bool) {
	if pl.head == nil {
		return Price{}, false
	}
	return pl.head.level.price, true
}

// MaxPrice returns the highest price in the market. The second return is
// false when the market holds no levels.
func (pl *PriceLevelList) MaxPrice() (Price, bool) {
	if pl.tail == nil {
		return Price{}, false
	}
	return pl.tail.level.price, true
}

// MinLevel returns the lowest-price level itself, or nil when empty. Callers
// use it to inspect or drain the best level without a second lookup.
func (pl *PriceLevelList) MinLevel() *PriceLevel {
	if pl.head == nil {
		return nil
	}
	return pl.head.level
}

// MaxLevel returns the highest-price level itself, or nil when empty.
func (pl *PriceLevelList) MaxLevel() *PriceLevel {
	if pl.tail == nil {
		return nil
	}
	return pl.tail.level
}

// Levels returns the market's levels in ascending price order.
func (pl *PriceLevelList) Levels() []*PriceLevel {
	levels := make([]*PriceLevel, 0, len(pl.levels))
	for node := pl.head; node != nil; node = node.next {
		levels = append(levels, node.level)
	}
	return levels
}

// Depth returns the number of price levels.
func (pl *PriceLevelList) Depth() int {
	return len(pl.levels)
}

// Len returns the total number of ticks across all levels.
func (pl *PriceLevelList) Len() int {
	return pl.ticks
}

// IsEmpty reports whether the market holds no ticks.
func (pl *PriceLevelList) IsEmpty() bool {
	return pl.ticks == 0
}

// String implements fmt.Stringer interface
func (pl *PriceLevelList) String() string {
	sb := strings.Builder{}
	sb.WriteString(pl.key.String() + ":")
	for node := pl.head; node != nil; node = node.next {
		sb.WriteString("\n" + node.level.String())
	}
	return sb.String()
}
