package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p2pdex/bookside/pkg/messaging"
)

func TestManagerCreateGetDrop(t *testing.T) {
	m := NewManager(nil, nil)

	b, err := m.CreateBook("BTC-MB")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "BTC-MB", b.Name())

	_, err = m.CreateBook("BTC-MB")
	assert.ErrorIs(t, err, ErrBookExists)

	got, err := m.GetBook("BTC-MB")
	require.NoError(t, err)
	assert.Same(t, b, got)

	_, err = m.GetBook("missing")
	assert.ErrorIs(t, err, ErrBookNotFound)

	require.NoError(t, m.DropBook("BTC-MB"))
	assert.ErrorIs(t, m.DropBook("BTC-MB"), ErrBookNotFound)
}

func TestManagerSharedSender(t *testing.T) {
	sender := messaging.NewMockBookEventSender()
	m := NewManager(sender, nil)
	ctx := context.Background()
	trader := makeTrader(t, 0x10)

	first, err := m.CreateBook("first")
	require.NoError(t, err)
	second, err := m.CreateBook("second")
	require.NoError(t, err)

	require.NoError(t, first.InsertTick(ctx, makeTick(t, trader, 1, 60, 30, true)))
	require.NoError(t, second.InsertTick(ctx, makeTick(t, trader, 2, 100, 20, false)))

	events := sender.Sent()
	require.Len(t, events, 2)
	assert.Equal(t, "first", events[0].Book)
	assert.Equal(t, "second", events[1].Book)
}

func TestManagerBooks(t *testing.T) {
	m := NewManager(nil, nil)

	_, err := m.CreateBook("a")
	require.NoError(t, err)
	_, err = m.CreateBook("b")
	require.NoError(t, err)

	assert.Len(t, m.Books(), 2)
}

func TestManagerArchiveWithoutStore(t *testing.T) {
	m := NewManager(nil, nil)
	_, err := m.CreateBook("BTC-MB")
	require.NoError(t, err)

	// No archive configured: archiving is a no-op, not an error
	assert.NoError(t, m.ArchiveSnapshot(context.Background(), "BTC-MB"))
	assert.NoError(t, m.ArchiveAll(context.Background()))

	// Unknown book still fails
	assert.ErrorIs(t, m.ArchiveSnapshot(context.Background(), "missing"), ErrBookNotFound)
}
