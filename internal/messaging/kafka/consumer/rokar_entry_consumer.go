package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/customer"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/events"
)

// ConsumeRokarEntries applies saved ledger entries to customer outstanding
// balances. The customer service claims each entry key once, so redelivery
// after a crash or rebalance is harmless.
func ConsumeRokarEntries(
	ctx context.Context,
	reader *kafkago.Reader,
	customerService customer.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.rokar_entries")
	log.Info("rokar entry consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("rokar entry consumer stopped")
				return
			}
			log.Error("fetch rokar entry message failed", zap.Error(err))
			continue
		}

		var event events.RokarEntrySavedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode rokar.entry.saved event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if len(event.DuesLines) == 0 {
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := customerService.ApplyRokarDues(ctx, event); err != nil {
			log.Error("apply rokar dues failed",
				zap.String("entry_key", event.EntryKey),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit rokar entry message failed", zap.Error(err))
			continue
		}

		log.Info("rokar dues applied from event",
			zap.String("entry_key", event.EntryKey),
			zap.Int("lines", len(event.DuesLines)),
		)
	}
}
