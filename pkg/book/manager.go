package book

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	redisbackend "github.com/p2pdex/bookside/pkg/backend/redis"
	"github.com/p2pdex/bookside/pkg/messaging"
)

// Manager errors
var (
	ErrBookExists   = errors.New("bookside: book already exists")
	ErrBookNotFound = errors.New("bookside: book not found")
)

// Manager is a registry of named books sharing one event sender and an
// optional snapshot archive.
type Manager struct {
	mu      sync.RWMutex
	books   map[string]*OrderBook
	sender  messaging.BookEventSender
	archive *redisbackend.SnapshotStore
}

// NewManager creates an empty registry. Both sender and archive may be nil.
func NewManager(sender messaging.BookEventSender, archive *redisbackend.SnapshotStore) *Manager {
	return &Manager{
		books:   make(map[string]*OrderBook),
		sender:  sender,
		archive: archive,
	}
}

// CreateBook registers a new empty book under the given name
func (m *Manager) CreateBook(name string) (*OrderBook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.books[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrBookExists, name)
	}

	b := NewOrderBook(name, m.sender)
	m.books[name] = b
	log.Info().Str("book", name).Msg("Book created")
	return b, nil
}

// GetBook returns the book registered under the given name
func (m *Manager) GetBook(name string) (*OrderBook, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.books[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBookNotFound, name)
	}
	return b, nil
}

// DropBook removes a book from the registry
func (m *Manager) DropBook(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.books[name]; !ok {
		return fmt.Errorf("%w: %s", ErrBookNotFound, name)
	}
	delete(m.books, name)
	log.Info().Str("book", name).Msg("Book dropped")
	return nil
}

// Books returns all registered books in no particular order
func (m *Manager) Books() []*OrderBook {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*OrderBook, 0, len(m.books))
	for _, b := range m.books {
		out = append(out, b)
	}
	return out
}

// ArchiveSnapshot saves the named book's current snapshot to the archive
func (m *Manager) ArchiveSnapshot(ctx context.Context, name string) error {
	b, err := m.GetBook(name)
	if err != nil {
		return err
	}
	if m.archive == nil {
		return nil
	}
	return m.archive.Save(ctx, b.Snapshot())
}

// ArchiveAll saves snapshots for every registered book. The first error is
// returned after all books have been attempted.
func (m *Manager) ArchiveAll(ctx context.Context) error {
	if m.archive == nil {
		return nil
	}

	var firstErr error
	for _, b := range m.Books() {
		if err := m.archive.Save(ctx, b.Snapshot()); err != nil {
			log.Error().
				Err(err).
				Str("book", b.Name()).
				Msg("Failed to archive snapshot")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
