package core

import (
	"fmt"
	"strings"
)

// tickNode is a queue entry. The intrusive links make removal O(1) while the
// list itself keeps strict arrival order, which a map alone cannot.
type tickNode struct {
	tick *Tick
	next *tickNode
	prev *tickNode
}

// PriceLevel holds every tick of one market sharing one exact price, in
// arrival order (time priority, oldest first).
type PriceLevel struct {
	price Price
	head  *tickNode
	tail  *tickNode
	nodes map[OrderID]*tickNode
}

// NewPriceLevel creates an empty level at the given price.
func NewPriceLevel(price Price) *PriceLevel {
	return &PriceLevel{
		price: price,
		nodes: make(map[OrderID]*tickNode),
	}
}

// Price returns the level's price. Every tick in the level has exactly this
// price; PriceLevelList enforces that before delegating.
func (l *PriceLevel) Price() Price {
	return l.price
}

// Append adds a tick at the end of the time-priority queue.
func (l *PriceLevel) Append(tick *Tick) error {
	if _, exists := l.nodes[tick.ID()]; exists {
		return ErrDuplicateOrder
	}

	node := &tickNode{tick: tick}
	if l.tail == nil {
		l.head = node
		l.tail = node
	} else {
		node.prev = l.tail
		l.tail.next = node
		l.tail = node
	}
	l.nodes[tick.ID()] = node
	return nil
}

// Remove unlinks the tick with the given id. It reports whether a removal
// occurred; removing an absent id is not an error.
func (l *PriceLevel) Remove(id OrderID) bool {
	node, exists := l.nodes[id]
	if !exists {
		return false
	}

	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	delete(l.nodes, id)
	return true
}

// Get returns the tick with the given id, or nil.
func (l *PriceLevel) Get(id OrderID) *Tick {
	node, exists := l.nodes[id]
	if !exists {
		return nil
	}
	return node.tick
}

// First returns the oldest tick in the level, or nil when empty.
func (l *PriceLevel) First() *Tick {
	if l.head == nil {
		return nil
	}
	return l.head.tick
}

// Ticks returns the level's ticks in time-priority order.
func (l *PriceLevel) Ticks() []*Tick {
	ticks := make([]*Tick, 0, len(l.nodes))
	for node := l.head; node != nil; node = node.next {
		ticks = append(ticks, node.tick)
	}
	return ticks
}

// Len returns the number of ticks in the level.
func (l *PriceLevel) Len() int {
	return len(l.nodes)
}

// IsEmpty reports whether the level holds no ticks.
func (l *PriceLevel) IsEmpty() bool {
	return len(l.nodes) == 0
}

// String implements fmt.Stringer interface
func (l *PriceLevel) String() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%s -> ticks: %d", l.price, len(l.nodes)))
	return sb.String()
}
