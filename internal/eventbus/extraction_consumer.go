package eventbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/SharkFourSix/momo/internal/domain"
	"github.com/SharkFourSix/momo/internal/extraction"
	"github.com/SharkFourSix/momo/pkg/logger"
)

// ExtractionConsumer runs batch messages through the extraction registry and
// records the outcome per message. Messages that match no template still
// produce a result with Matched=false so batch counts add up.
type ExtractionConsumer struct {
	registry    *extraction.Registry
	repo        domain.Repository
	logger      *logger.Logger
	workerCount int
}

func NewExtractionConsumer(registry *extraction.Registry, repo domain.Repository, log *logger.Logger, workerCount int) *ExtractionConsumer {
	return &ExtractionConsumer{
		registry:    registry,
		repo:        repo,
		logger:      log,
		workerCount: workerCount,
	}
}

func (ec *ExtractionConsumer) Consume(ctx context.Context, event Event) error {
	processed, err := ec.repo.IsEventProcessed(ctx, event.ID)
	if err != nil {
		ec.logger.Error(ctx, "Failed to check event processed status",
			"event_id", event.ID,
			"error", err,
		)
		return err
	}

	if processed {
		ec.logger.Debug(ctx, "Event already processed, skipping",
			"event_id", event.ID,
		)
		return nil
	}

	payload, ok := event.Payload.(ExtractionEvent)
	if !ok {
		ec.logger.Error(ctx, "Invalid payload type for extraction event",
			"event_id", event.ID,
		)
		return fmt.Errorf("invalid payload type")
	}

	ctx = logger.WithBatchID(ctx, payload.BatchID)

	tx, err := ec.registry.Extract(ctx, payload.Provider, payload.Message, nil, domain.KindAny)
	if err != nil {
		ec.logger.Error(ctx, "Extraction returned hard error",
			"event_id", event.ID,
			"index", payload.Index,
			"error", err,
		)
		return err
	}

	result := domain.ExtractionResult{
		Index:   payload.Index,
		Matched: tx != nil,
	}
	if tx != nil {
		result.Kind = tx.Kind()
		result.Transaction = tx
	}

	ec.logger.Debug(ctx, "Message processed",
		"event_id", event.ID,
		"index", payload.Index,
		"matched", result.Matched,
		"kind", result.Kind,
	)

	if err := ec.repo.AddResult(ctx, payload.BatchID, result); err != nil {
		ec.logger.Error(ctx, "Failed to store result",
			"event_id", event.ID,
			"index", payload.Index,
			"error", err,
		)
		return err
	}

	if err := ec.repo.MarkEventProcessed(ctx, event.ID); err != nil {
		if errors.Is(err, domain.ErrDuplicateEvent) {
			// Another worker won the race for this event.
			ec.logger.Debug(ctx, "Event concurrently processed elsewhere",
				"event_id", event.ID,
			)
			return nil
		}
		ec.logger.Error(ctx, "Failed to mark event as processed",
			"event_id", event.ID,
			"error", err,
		)
		return err
	}

	if err := ec.repo.IncrementProcessedCount(ctx, payload.BatchID); err != nil {
		ec.logger.Error(ctx, "Failed to increment processed count",
			"event_id", event.ID,
			"error", err,
		)
	}

	return nil
}

func (ec *ExtractionConsumer) GetWorkerCount() int {
	return ec.workerCount
}
