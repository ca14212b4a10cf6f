package domain

import "context"

type Repository interface {
	// Batch management
	CreateBatch(ctx context.Context, batchID, provider string, totalCount int) error
	GetBatch(ctx context.Context, batchID string) (*Batch, error)
	UpdateBatchStatus(ctx context.Context, batchID string, status BatchStatus) error
	IncrementProcessedCount(ctx context.Context, batchID string) error

	// Result operations
	AddResult(ctx context.Context, batchID string, result ExtractionResult) error
	GetResults(ctx context.Context, batchID string, page, perPage int, kind *Kind) ([]ExtractionResult, int, error)

	// Idempotency tracking
	IsEventProcessed(ctx context.Context, eventID string) (bool, error)
	MarkEventProcessed(ctx context.Context, eventID string) error
}
