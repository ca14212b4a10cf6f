package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SharkFourSix/momo/internal/domain"
	"github.com/SharkFourSix/momo/internal/eventbus"
	"github.com/SharkFourSix/momo/internal/extraction"
	"github.com/SharkFourSix/momo/pkg/logger"
)

type ExtractionService interface {
	Extract(ctx context.Context, provider, message string, opts map[string]string, want domain.Kind) (domain.Transaction, error)
	SubmitBatch(ctx context.Context, provider string, messages []string) (string, error)
	GetBatch(ctx context.Context, batchID string) (*domain.Batch, error)
	GetResults(ctx context.Context, batchID string, page, perPage int, kind *domain.Kind) ([]domain.ExtractionResult, int, error)
}

type extractionService struct {
	registry *extraction.Registry
	repo     domain.Repository
	eventBus eventbus.EventBus
	logger   *logger.Logger
}

func NewExtractionService(registry *extraction.Registry, repo domain.Repository, bus eventbus.EventBus, log *logger.Logger) ExtractionService {
	return &extractionService{
		registry: registry,
		repo:     repo,
		eventBus: bus,
		logger:   log,
	}
}

// Extract runs a single message through the registry. A nil transaction
// with a nil error means no transaction could be extracted, which is a
// normal outcome for this operation.
func (s *extractionService) Extract(ctx context.Context, provider, message string, opts map[string]string, want domain.Kind) (domain.Transaction, error) {
	tx, err := s.registry.Extract(ctx, provider, message, opts, want)
	if err != nil {
		s.logger.Warn(ctx, "Extraction rejected",
			"provider", provider,
			"error", err,
		)
		return nil, err
	}

	if tx == nil {
		s.logger.Debug(ctx, "No transaction extracted", "provider", provider)
		return nil, nil
	}

	s.logger.Info(ctx, "Transaction extracted",
		"provider", provider,
		"kind", tx.Kind(),
		"transaction_id", tx.TransactionID(),
	)

	return tx, nil
}

// SubmitBatch registers a batch and fans its messages out to the extraction
// workers. The returned batch id can be polled for status and results.
func (s *extractionService) SubmitBatch(ctx context.Context, provider string, messages []string) (string, error) {
	batchID := uuid.New().String()

	ctx = logger.WithBatchID(ctx, batchID)

	s.logger.Info(ctx, "Creating batch",
		"provider", provider,
		"message_count", len(messages),
	)

	if err := s.repo.CreateBatch(ctx, batchID, provider, len(messages)); err != nil {
		s.logger.Error(ctx, "Failed to create batch",
			"error", err,
		)
		return "", err
	}

	go func() {
		processCtx := logger.WithBatchID(context.Background(), batchID)
		s.publishBatch(processCtx, batchID, provider, messages)
	}()

	return batchID, nil
}

func (s *extractionService) publishBatch(ctx context.Context, batchID, provider string, messages []string) {
	successCount := 0
	errorCount := 0

	for i, message := range messages {
		event := eventbus.Event{
			ID:   fmt.Sprintf("%s-%d", batchID, i),
			Type: eventbus.EventTypeExtraction,
			Payload: eventbus.ExtractionEvent{
				BatchID:  batchID,
				Provider: provider,
				Message:  message,
				Index:    i,
			},
			Timestamp: time.Now(),
		}

		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error(ctx, "Failed to publish event",
				"event_id", event.ID,
				"index", i,
				"error", err,
			)
			errorCount++
			continue
		}

		successCount++
	}

	if errorCount > 0 && successCount == 0 {
		if err := s.repo.UpdateBatchStatus(ctx, batchID, domain.BatchStatusFailed); err != nil {
			s.logger.Error(ctx, "Failed to update batch status to failed",
				"error", err,
			)
		}
	}

	s.logger.Info(ctx, "Batch fan-out completed",
		"total", len(messages),
		"published", successCount,
		"failed", errorCount,
	)
}

func (s *extractionService) GetBatch(ctx context.Context, batchID string) (*domain.Batch, error) {
	ctx = logger.WithBatchID(ctx, batchID)

	batch, err := s.repo.GetBatch(ctx, batchID)
	if err != nil {
		s.logger.Error(ctx, "Failed to get batch",
			"error", err,
		)
		return nil, err
	}

	// The workers only bump counters; promote the batch once everything
	// has been processed.
	if batch.Status == domain.BatchStatusProcessing && batch.ProcessedCount >= batch.TotalCount {
		if err := s.repo.UpdateBatchStatus(ctx, batchID, domain.BatchStatusCompleted); err != nil {
			s.logger.Error(ctx, "Failed to complete batch",
				"error", err,
			)
		}
		batch, err = s.repo.GetBatch(ctx, batchID)
		if err != nil {
			return nil, err
		}
	}

	return batch, nil
}

func (s *extractionService) GetResults(ctx context.Context, batchID string, page, perPage int, kind *domain.Kind) ([]domain.ExtractionResult, int, error) {
	ctx = logger.WithBatchID(ctx, batchID)

	s.logger.Debug(ctx, "Getting results",
		"page", page,
		"per_page", perPage,
		"kind", kind,
	)

	results, total, err := s.repo.GetResults(ctx, batchID, page, perPage, kind)
	if err != nil {
		s.logger.Error(ctx, "Failed to get results",
			"error", err,
		)
		return nil, 0, err
	}

	return results, total, nil
}
