package main

import (
	"context"
	"fmt"
	"time"

	"github.com/nikolaydubina/fpdecimal"

	"github.com/p2pdex/bookside/pkg/book"
	"github.com/p2pdex/bookside/pkg/core"
	"github.com/p2pdex/bookside/pkg/messaging"
)

func main() {
	ctx := context.Background()

	// Initialize a book with an in-memory event sender
	sender := messaging.NewMockBookEventSender()
	b := book.NewOrderBook("BTC-MB", sender)

	trader, err := core.NewTraderID([]byte("example-trader-0001!"))
	if err != nil {
		panic(err)
	}

	// An ask offering 60 BTC for 30 MB (0.5 MB per BTC)
	ask := core.NewTick(
		core.NewOrderID(trader, 1),
		mustPair(60, 30),
		core.Timeout(time.Minute),
		core.Now(),
		true,
	)
	if err := b.InsertTick(ctx, ask); err != nil {
		panic(err)
	}
	fmt.Printf("Inserted ask: %s\n", ask.ID())

	// A cheaper ask: 120 BTC for 30 MB (0.25 MB per BTC)
	cheaper := core.NewTick(
		core.NewOrderID(trader, 2),
		mustPair(120, 30),
		core.Timeout(time.Minute),
		core.Now(),
		true,
	)
	if err := b.InsertTick(ctx, cheaper); err != nil {
		panic(err)
	}
	fmt.Printf("Inserted ask: %s\n", cheaper.ID())

	if best, ok := b.BestAsk("BTC", "MB"); ok {
		fmt.Printf("Best ask: %s\n", best)
	}
	if level := b.BestAskLevel("BTC", "MB"); level != nil {
		fmt.Printf("Ticks at best ask: %d\n", level.Len())
	}

	// Remove the cheap ask and watch the best price move
	b.RemoveTick(ctx, cheaper.ID())
	if best, ok := b.BestAsk("BTC", "MB"); ok {
		fmt.Printf("Best ask after removal: %s\n", best)
	}

	// Summary
	snapshot := b.Snapshot()
	fmt.Println("\nBook state:")
	for _, level := range snapshot.Asks {
		fmt.Printf("- ASK %s %s/%s, %d tick(s)\n", level.Price, level.Quote, level.Base, len(level.Ticks))
	}
	fmt.Printf("Events published: %d\n", len(sender.Sent()))
}

func mustPair(first, second float64) core.AssetPair {
	firstAmount, err := core.NewAssetAmount(fpdecimal.FromFloat(first), "BTC")
	if err != nil {
		panic(err)
	}
	secondAmount, err := core.NewAssetAmount(fpdecimal.FromFloat(second), "MB")
	if err != nil {
		panic(err)
	}
	return core.NewAssetPair(firstAmount, secondAmount)
}
