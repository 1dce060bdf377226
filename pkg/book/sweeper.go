package book

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/p2pdex/bookside/pkg/core"
)

// SweeperConfig controls the periodic expiry sweep
type SweeperConfig struct {
	Interval time.Duration
	Enabled  bool
}

// LoadSweeperConfig loads sweep settings from environment variables
func LoadSweeperConfig() SweeperConfig {
	v := viper.New()

	v.SetDefault("SWEEP_INTERVAL_SECONDS", 1)
	v.SetDefault("SWEEP_ENABLED", true)

	v.AutomaticEnv()

	return SweeperConfig{
		Interval: time.Duration(v.GetInt("SWEEP_INTERVAL_SECONDS")) * time.Second,
		Enabled:  v.GetBool("SWEEP_ENABLED"),
	}
}

// Sweeper periodically drops expired ticks from a set of books. Expiry is
// enforced by the sweep alone; a tick past its lifetime still rests on the
// book until the next pass.
type Sweeper struct {
	cfg   SweeperConfig
	books func() []*OrderBook
}

// NewSweeper creates a sweeper over the books returned by the provider.
// The provider is called on every pass so newly created books are covered.
func NewSweeper(cfg SweeperConfig, books func() []*OrderBook) *Sweeper {
	return &Sweeper{cfg: cfg, books: books}
}

// Run sweeps on the configured interval until the context is cancelled
func (s *Sweeper) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		log.Info().Msg("Expiry sweep disabled")
		return
	}

	log.Info().
		Dur("interval", s.cfg.Interval).
		Msg("Expiry sweep started")

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Expiry sweep stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx, core.Now())
		}
	}
}

// Sweep runs a single pass over all books at the given instant and returns
// the total number of ticks dropped
func (s *Sweeper) Sweep(ctx context.Context, now core.Timestamp) int {
	total := 0
	for _, b := range s.books() {
		total += b.SweepExpired(ctx, now)
	}
	return total
}
