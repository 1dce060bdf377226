package core

import (
	"errors"
	"testing"
)

func levelPrice(t *testing.T, tick *Tick) Price {
	t.Helper()
	price, err := tick.Price()
	if err != nil {
		t.Fatalf("Price() error = %v", err)
	}
	return price
}

func TestPriceLevelAppend(t *testing.T) {
	first := makeTick(t, '0', 1, 60, 30, true)
	second := makeTick(t, '1', 2, 60, 30, true)

	level := NewPriceLevel(levelPrice(t, first))
	if !level.IsEmpty() {
		t.Error("Expected new level to be empty")
	}
	if level.First() != nil {
		t.Error("Expected First() on empty level to be nil")
	}

	if err := level.Append(first); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := level.Append(second); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if level.Len() != 2 {
		t.Errorf("Len() = %d, want 2", level.Len())
	}
	if level.First().ID() != first.ID() {
		t.Errorf("First() = %v, want %v", level.First().ID(), first.ID())
	}
}

func TestPriceLevelAppendDuplicate(t *testing.T) {
	tick := makeTick(t, '0', 1, 60, 30, true)
	level := NewPriceLevel(levelPrice(t, tick))

	if err := level.Append(tick); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := level.Append(tick); !errors.Is(err, ErrDuplicateOrder) {
		t.Errorf("Append() error = %v, want ErrDuplicateOrder", err)
	}
	if level.Len() != 1 {
		t.Errorf("Len() = %d after duplicate, want 1", level.Len())
	}
}

func TestPriceLevelRemove(t *testing.T) {
	tick := makeTick(t, '0', 1, 60, 30, true)
	level := NewPriceLevel(levelPrice(t, tick))
	_ = level.Append(tick)

	if !level.Remove(tick.ID()) {
		t.Error("Expected Remove() of present id to report true")
	}
	if !level.IsEmpty() {
		t.Error("Expected level to be empty after removal")
	}
	if level.Remove(tick.ID()) {
		t.Error("Expected Remove() of absent id to report false")
	}
}

// Time priority must survive arbitrary removal interleavings of other ticks.
func TestPriceLevelTimePriority(t *testing.T) {
	ticks := make([]*Tick, 5)
	for i := range ticks {
		ticks[i] = makeTick(t, byte('0'+i), OrderNumber(i+1), 60, 30, true)
	}

	level := NewPriceLevel(levelPrice(t, ticks[0]))
	for _, tick := range ticks {
		if err := level.Append(tick); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	// Remove from the middle and the head.
	level.Remove(ticks[2].ID())
	level.Remove(ticks[0].ID())

	got := level.Ticks()
	want := []*Tick{ticks[1], ticks[3], ticks[4]}
	if len(got) != len(want) {
		t.Fatalf("Ticks() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID() != want[i].ID() {
			t.Errorf("Ticks()[%d] = %v, want %v", i, got[i].ID(), want[i].ID())
		}
	}

	if level.First().ID() != ticks[1].ID() {
		t.Errorf("First() = %v, want %v", level.First().ID(), ticks[1].ID())
	}
}

func TestPriceLevelGet(t *testing.T) {
	tick := makeTick(t, '0', 1, 60, 30, true)
	other := makeTick(t, '1', 2, 60, 30, true)
	level := NewPriceLevel(levelPrice(t, tick))
	_ = level.Append(tick)

	if got := level.Get(tick.ID()); got == nil || got.ID() != tick.ID() {
		t.Errorf("Get() = %v, want %v", got, tick.ID())
	}
	if level.Get(other.ID()) != nil {
		t.Error("Expected Get() of absent id to be nil")
	}
}
