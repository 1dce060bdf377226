package core

import (
	"testing"

	"github.com/nikolaydubina/fpdecimal"
)

func newListWith(t *testing.T, ticks ...*Tick) *PriceLevelList {
	t.Helper()
	list := NewPriceLevelList(MarketKey{Base: "BTC", Quote: "MB"})
	for _, tick := range ticks {
		if err := list.InsertTick(tick); err != nil {
			t.Fatalf("InsertTick() error = %v", err)
		}
	}
	return list
}

func TestPriceLevelListInsert(t *testing.T) {
	half := makeTick(t, '0', 1, 60, 30, true)     // rate 0.5
	quarter := makeTick(t, '1', 2, 120, 30, true) // rate 0.25
	halfAgain := makeTick(t, '2', 3, 60, 30, true)

	list := newListWith(t, half, quarter, halfAgain)

	if list.Len() != 3 {
		t.Errorf("Len() = %d, want 3", list.Len())
	}
	if list.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", list.Depth())
	}

	// No two levels share a price: both 0.5 ticks share one level.
	price, _ := half.Price()
	level := list.Level(price)
	if level == nil || level.Len() != 2 {
		t.Fatalf("Level(0.5) = %v, want level with 2 ticks", level)
	}
}

func TestPriceLevelListSortedOrder(t *testing.T) {
	// Insert out of order; levels must come back ascending.
	rates := []struct {
		first  float64
		second float64
	}{
		{60, 30},  // 0.5
		{120, 30}, // 0.25
		{30, 30},  // 1.0
		{40, 30},  // 0.75
	}

	list := NewPriceLevelList(MarketKey{Base: "BTC", Quote: "MB"})
	for i, r := range rates {
		tick := makeTick(t, byte('0'+i), OrderNumber(i+1), r.first, r.second, true)
		if err := list.InsertTick(tick); err != nil {
			t.Fatalf("InsertTick() error = %v", err)
		}
	}

	want := []float64{0.25, 0.5, 0.75, 1.0}
	levels := list.Levels()
	if len(levels) != len(want) {
		t.Fatalf("Levels() length = %d, want %d", len(levels), len(want))
	}
	for i, level := range levels {
		if !level.Price().Rate().Equal(fpdecimal.FromFloat(want[i])) {
			t.Errorf("Levels()[%d].Rate() = %v, want %v", i, level.Price().Rate(), want[i])
		}
	}
}

func TestPriceLevelListMinMax(t *testing.T) {
	list := NewPriceLevelList(MarketKey{Base: "BTC", Quote: "MB"})

	if _, ok := list.MinPrice(); ok {
		t.Error("Expected MinPrice() on empty list to report no value")
	}
	if _, ok := list.MaxPrice(); ok {
		t.Error("Expected MaxPrice() on empty list to report no value")
	}
	if list.MinLevel() != nil || list.MaxLevel() != nil {
		t.Error("Expected extreme levels on empty list to be nil")
	}

	_ = list.InsertTick(makeTick(t, '0', 1, 60, 30, true))  // 0.5
	_ = list.InsertTick(makeTick(t, '1', 2, 120, 30, true)) // 0.25

	minPrice, ok := list.MinPrice()
	if !ok || !minPrice.Rate().Equal(fpdecimal.FromFloat(0.25)) {
		t.Errorf("MinPrice() = (%v, %v), want 0.25", minPrice.Rate(), ok)
	}
	maxPrice, ok := list.MaxPrice()
	if !ok || !maxPrice.Rate().Equal(fpdecimal.FromFloat(0.5)) {
		t.Errorf("MaxPrice() = (%v, %v), want 0.5", maxPrice.Rate(), ok)
	}

	if list.MinLevel().Price() != minPrice {
		t.Errorf("MinLevel().Price() = %v, want %v", list.MinLevel().Price(), minPrice)
	}
	if list.MaxLevel().Price() != maxPrice {
		t.Errorf("MaxLevel().Price() = %v, want %v", list.MaxLevel().Price(), maxPrice)
	}
}

func TestPriceLevelListRemoveDropsEmptyLevel(t *testing.T) {
	half := makeTick(t, '0', 1, 60, 30, true)
	quarter := makeTick(t, '1', 2, 120, 30, true)
	list := newListWith(t, half, quarter)

	price, _ := half.Price()
	if !list.RemoveTick(half.ID(), price) {
		t.Fatal("Expected RemoveTick() to report true")
	}

	if list.Level(price) != nil {
		t.Error("Expected emptied level to be removed immediately")
	}
	if list.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", list.Depth())
	}

	// Max price moved down to the remaining level.
	maxPrice, ok := list.MaxPrice()
	if !ok || !maxPrice.Rate().Equal(fpdecimal.FromFloat(0.25)) {
		t.Errorf("MaxPrice() = (%v, %v), want 0.25", maxPrice.Rate(), ok)
	}
}

func TestPriceLevelListRemoveAbsent(t *testing.T) {
	half := makeTick(t, '0', 1, 60, 30, true)
	stranger := makeTick(t, '1', 2, 60, 30, true)
	list := newListWith(t, half)

	price, _ := half.Price()
	if list.RemoveTick(stranger.ID(), price) {
		t.Error("Expected RemoveTick() of absent id to report false")
	}

	other := NewPrice(fpdecimal.FromFloat(9.0), "BTC", "MB")
	if list.RemoveTick(half.ID(), other) {
		t.Error("Expected RemoveTick() at absent price to report false")
	}
	if list.Len() != 1 {
		t.Errorf("Len() = %d, want 1", list.Len())
	}
}

func TestPriceLevelListRejectsWrongMarket(t *testing.T) {
	list := NewPriceLevelList(MarketKey{Base: "ETH", Quote: "MB"})

	err := list.InsertTick(makeTick(t, '0', 1, 60, 30, true))
	if err == nil {
		t.Error("Expected InsertTick() with a BTC/MB tick to fail on an ETH/MB list")
	}
}
