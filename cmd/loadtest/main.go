package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/fatih/color"
	"github.com/nikolaydubina/fpdecimal"
	"golang.org/x/time/rate"

	"github.com/p2pdex/bookside/pkg/book"
	"github.com/p2pdex/bookside/pkg/core"
)

const (
	numWorkers       = 100
	ticksPerWorker   = 1000
	maxInsertsPerSec = 50000
)

func main() {
	removeRatio := flag.Float64("remove-ratio", 0.5, "Fraction of inserted ticks to remove afterwards")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		log.Println("Received interrupt signal, cleaning up...")
		cancel()
	}()

	b := book.NewOrderBook("load-test-book", nil)
	log.Printf("Starting %d workers, %d ticks per worker...", numWorkers, ticksPerWorker)

	limiter := rate.NewLimiter(rate.Limit(maxInsertsPerSec), maxInsertsPerSec)
	hist := hdrhistogram.New(1, int64(time.Second), 3)
	var histMu sync.Mutex

	var wg sync.WaitGroup
	errChan := make(chan error, numWorkers*ticksPerWorker)

	start := time.Now()
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			trader := workerTrader(workerID)
			r := rand.New(rand.NewSource(int64(workerID)))

			for j := 0; j < ticksPerWorker; j++ {
				if err := limiter.Wait(ctx); err != nil {
					errChan <- fmt.Errorf("rate limiter error: %v", err)
					return
				}

				tick := generateRandomTick(r, trader, uint64(j+1))
				opStart := time.Now()
				err := b.InsertTick(ctx, tick)
				elapsed := time.Since(opStart)

				histMu.Lock()
				_ = hist.RecordValue(elapsed.Nanoseconds())
				histMu.Unlock()

				if err != nil {
					errChan <- fmt.Errorf("failed to insert tick: %v", err)
					continue
				}

				if r.Float64() < *removeRatio {
					b.RemoveTick(ctx, tick.ID())
				}
			}
		}(i)
	}

	wg.Wait()
	duration := time.Since(start)
	close(errChan)

	var errors []error
	for err := range errChan {
		errors = append(errors, err)
	}

	printReport(b, hist, duration, len(errors))

	if len(errors) > 0 {
		log.Printf("First error: %v", errors[0])
		os.Exit(1)
	}
}

func printReport(b *book.OrderBook, hist *hdrhistogram.Histogram, duration time.Duration, errCount int) {
	color.NoColor = false
	cyan := color.New(color.FgCyan).SprintfFunc()
	green := color.New(color.FgGreen).SprintfFunc()
	red := color.New(color.FgRed).SprintfFunc()

	total := numWorkers * ticksPerWorker
	fmt.Println(cyan("=== Load test summary ==="))
	fmt.Printf("Duration:         %v\n", duration)
	fmt.Printf("Ticks attempted:  %d\n", total)
	fmt.Printf("Resting ticks:    %d\n", b.Len())
	fmt.Printf("Throughput:       %s inserts/sec\n", green("%.0f", float64(total)/duration.Seconds()))

	fmt.Println(cyan("=== Insert latency ==="))
	fmt.Printf("p50:  %v\n", time.Duration(hist.ValueAtQuantile(50)))
	fmt.Printf("p99:  %v\n", time.Duration(hist.ValueAtQuantile(99)))
	fmt.Printf("max:  %v\n", time.Duration(hist.Max()))

	if errCount > 0 {
		fmt.Printf("Errors: %s\n", red("%d", errCount))
	} else {
		fmt.Printf("Errors: %s\n", green("0"))
	}
}

func workerTrader(workerID int) core.TraderID {
	var b [core.TraderIDLength]byte
	copy(b[:], "loadtest-worker-")
	binary.BigEndian.PutUint32(b[core.TraderIDLength-4:], uint32(workerID))
	trader, err := core.NewTraderID(b[:])
	if err != nil {
		panic(err)
	}
	return trader
}

func generateRandomTick(r *rand.Rand, trader core.TraderID, number uint64) *core.Tick {
	// Quantities in a narrow band so many ticks share price levels
	first := fpdecimal.FromInt(10 + r.Intn(10))
	second := fpdecimal.FromInt(1 + r.Intn(5))

	firstAmount, err := core.NewAssetAmount(first, "BTC")
	if err != nil {
		panic(err)
	}
	secondAmount, err := core.NewAssetAmount(second, "MB")
	if err != nil {
		panic(err)
	}

	return core.NewTick(
		core.NewOrderID(trader, core.OrderNumber(number)),
		core.NewAssetPair(firstAmount, secondAmount),
		core.Timeout(time.Hour),
		core.Now(),
		r.Float64() < 0.5,
	)
}
