package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SharkFourSix/momo/internal/domain"
)

// MemoryStore is the in-memory implementation of domain.Repository. Batches
// only live for the lifetime of the process; durable persistence is out of
// scope for this service.
type MemoryStore struct {
	batches         map[string]*domain.Batch
	results         map[string][]domain.ExtractionResult
	processedEvents map[string]bool
	mu              sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		batches:         make(map[string]*domain.Batch),
		results:         make(map[string][]domain.ExtractionResult),
		processedEvents: make(map[string]bool),
	}
}

func (s *MemoryStore) CreateBatch(ctx context.Context, batchID, provider string, totalCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batches[batchID] = &domain.Batch{
		ID:             batchID,
		Provider:       provider,
		Status:         domain.BatchStatusProcessing,
		ProcessedCount: 0,
		TotalCount:     totalCount,
		CreatedAt:      time.Now(),
	}

	s.results[batchID] = []domain.ExtractionResult{}

	return nil
}

func (s *MemoryStore) GetBatch(ctx context.Context, batchID string) (*domain.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batch, exists := s.batches[batchID]
	if !exists {
		return nil, domain.ErrBatchNotFound
	}

	// Copy so callers never observe a batch mid-mutation.
	out := *batch
	return &out, nil
}

func (s *MemoryStore) UpdateBatchStatus(ctx context.Context, batchID string, status domain.BatchStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, exists := s.batches[batchID]
	if !exists {
		return domain.ErrBatchNotFound
	}

	batch.Status = status
	if status == domain.BatchStatusCompleted || status == domain.BatchStatusFailed {
		now := time.Now()
		batch.CompletedAt = &now
	}

	return nil
}

func (s *MemoryStore) IncrementProcessedCount(ctx context.Context, batchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, exists := s.batches[batchID]
	if !exists {
		return domain.ErrBatchNotFound
	}

	batch.ProcessedCount++

	return nil
}

func (s *MemoryStore) AddResult(ctx context.Context, batchID string, result domain.ExtractionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.batches[batchID]
	if !exists {
		return domain.ErrBatchNotFound
	}

	s.results[batchID] = append(s.results[batchID], result)

	return nil
}

func (s *MemoryStore) GetResults(ctx context.Context, batchID string, page, perPage int, kind *domain.Kind) ([]domain.ExtractionResult, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.batches[batchID]
	if !exists {
		return nil, 0, domain.ErrBatchNotFound
	}

	results, exists := s.results[batchID]
	if !exists {
		return []domain.ExtractionResult{}, 0, nil
	}

	if page < 1 || perPage < 1 {
		return nil, 0, domain.ErrInvalidPageParams
	}

	var filtered []domain.ExtractionResult
	for _, result := range results {
		if kind != nil && result.Kind != *kind {
			continue
		}
		filtered = append(filtered, result)
	}

	// Workers finish out of order; keep pagination stable.
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Index < filtered[j].Index
	})

	total := len(filtered)

	start := (page - 1) * perPage
	end := start + perPage

	if start >= total {
		return []domain.ExtractionResult{}, total, nil
	}
	if end > total {
		end = total
	}

	return filtered[start:end], total, nil
}

func (s *MemoryStore) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.processedEvents[eventID], nil
}

func (s *MemoryStore) MarkEventProcessed(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.processedEvents[eventID] {
		return domain.ErrDuplicateEvent
	}
	s.processedEvents[eventID] = true

	return nil
}
