package book

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p2pdex/bookside/pkg/core"
)

func TestLoadSweeperConfigDefaults(t *testing.T) {
	cfg := LoadSweeperConfig()
	assert.Equal(t, time.Second, cfg.Interval)
	assert.True(t, cfg.Enabled)
}

func TestLoadSweeperConfigFromEnv(t *testing.T) {
	t.Setenv("SWEEP_INTERVAL_SECONDS", "30")
	t.Setenv("SWEEP_ENABLED", "false")

	cfg := LoadSweeperConfig()
	assert.Equal(t, 30*time.Second, cfg.Interval)
	assert.False(t, cfg.Enabled)
}

func TestSweeperSweepsAllBooks(t *testing.T) {
	m := NewManager(nil, nil)
	ctx := context.Background()
	trader := makeTrader(t, 0x20)

	first, err := m.CreateBook("first")
	require.NoError(t, err)
	second, err := m.CreateBook("second")
	require.NoError(t, err)

	expiring := func(number uint64) *core.Tick {
		return core.NewTick(
			core.NewOrderID(trader, core.OrderNumber(number)),
			mustPair(t, 60, 30),
			core.Timeout(time.Second),
			core.Now(),
			true,
		)
	}
	require.NoError(t, first.InsertTick(ctx, expiring(1)))
	require.NoError(t, second.InsertTick(ctx, expiring(2)))
	require.NoError(t, second.InsertTick(ctx, makeTick(t, trader, 3, 100, 20, false)))

	sweeper := NewSweeper(SweeperConfig{Interval: time.Second, Enabled: true}, m.Books)

	future := core.Timestamp(int64(core.Now()) + 2000)
	assert.Equal(t, 2, sweeper.Sweep(ctx, future))
	assert.Equal(t, 0, first.Len())
	assert.Equal(t, 1, second.Len())
}

func TestSweeperRunHonorsContext(t *testing.T) {
	m := NewManager(nil, nil)
	sweeper := NewSweeper(SweeperConfig{Interval: 10 * time.Millisecond, Enabled: true}, m.Books)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancellation")
	}
}
