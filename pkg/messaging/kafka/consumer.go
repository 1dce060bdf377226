package kafka

import (
	"context"

	"github.com/p2pdex/bookside/pkg/db/queue"
	"github.com/p2pdex/bookside/pkg/messaging"
	"github.com/rs/zerolog"
)

// SetupConsumer initializes and starts the Kafka consumer for book events
func SetupConsumer(ctx context.Context, logger zerolog.Logger) (*queue.QueueMessageConsumer, error) {
	kafkaConsumer, err := queue.NewQueueMessageConsumer()
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to create Kafka consumer - continuing without Kafka support")
		return nil, err
	}

	go func() {
		logger.Info().Msg("Starting Kafka consumer")
		err := kafkaConsumer.ConsumeBookEvents(ctx, func(msg *messaging.BookEventMessage) error {
			logger.Info().
				Str("book", msg.Book).
				Str("type", string(msg.Type)).
				Str("order_id", msg.OrderID).
				Str("base", msg.Base).
				Str("quote", msg.Quote).
				Str("price", msg.Price).
				Int("levels", len(msg.Levels)).
				Msg("Received book event")
			return nil
		})
		if err != nil {
			logger.Error().Err(err).Msg("Kafka consumer error")
		}
	}()

	return kafkaConsumer, nil
}
