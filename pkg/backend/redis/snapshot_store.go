package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/p2pdex/bookside/pkg/core"
)

// ErrSnapshotNotFound is returned when no snapshot is stored for a book
var ErrSnapshotNotFound = errors.New("bookside: snapshot not found")

// RedisOptions represents configuration options for Redis connection
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

var defaultOptions = &RedisOptions{
	Addr:     "localhost:6379",
	Password: "",
	DB:       0,
}

// SetDefaultRedisOptions sets the default options for Redis connections
func SetDefaultRedisOptions(options *RedisOptions) {
	defaultOptions = options
}

// GetRedisClient creates a new Redis client using the default options
func GetRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     defaultOptions.Addr,
		Password: defaultOptions.Password,
		DB:       defaultOptions.DB,
	})
}

// SnapshotStore archives book snapshots in Redis. The live book never
// reads from Redis on its hot path; snapshots exist for recovery and
// external inspection.
type SnapshotStore struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewSnapshotStore creates a new instance of SnapshotStore
func NewSnapshotStore(client *redis.Client, prefix string, logger *zap.Logger) *SnapshotStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotStore{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

func (s *SnapshotStore) snapshotKey(book string) string {
	return fmt.Sprintf("%s:snapshot:%s", s.prefix, book)
}

// Save stores a book snapshot, replacing any previous one for the same book
func (s *SnapshotStore) Save(ctx context.Context, snapshot *core.BookSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := s.snapshotKey(snapshot.Book)
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		s.logger.Error("failed to save snapshot",
			zap.String("book", snapshot.Book),
			zap.Error(err))
		return err
	}

	s.logger.Debug("snapshot saved",
		zap.String("book", snapshot.Book),
		zap.Int("bids", len(snapshot.Bids)),
		zap.Int("asks", len(snapshot.Asks)))
	return nil
}

// Load retrieves the latest snapshot for a book.
// Returns ErrSnapshotNotFound when none is stored.
func (s *SnapshotStore) Load(ctx context.Context, book string) (*core.BookSnapshot, error) {
	data, err := s.client.Get(ctx, s.snapshotKey(book)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		s.logger.Error("failed to load snapshot",
			zap.String("book", book),
			zap.Error(err))
		return nil, err
	}

	var snapshot core.BookSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.logger.Error("failed to unmarshal snapshot",
			zap.String("book", book),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}

// Delete removes the stored snapshot for a book, if any
func (s *SnapshotStore) Delete(ctx context.Context, book string) error {
	return s.client.Del(ctx, s.snapshotKey(book)).Err()
}
