package repositories

import (
	"context"
	"sync"
	"time"

	"wiki-summary/models"
)

// MemorySummaryRepository keeps summaries in process memory.
// Used with storage.driver=memory and in tests; contents are lost on restart.
type MemorySummaryRepository struct {
	mu    sync.RWMutex
	byID  map[string]models.Summary
	byURL map[string]string
}

func NewMemorySummaryRepository() *MemorySummaryRepository {
	return &MemorySummaryRepository{
		byID:  make(map[string]models.Summary),
		byURL: make(map[string]string),
	}
}

func (r *MemorySummaryRepository) GetByID(ctx context.Context, id string) (*models.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *MemorySummaryRepository) Create(ctx context.Context, id, url, summary string) (*models.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; ok {
		return nil, ErrConflict
	}
	if _, ok := r.byURL[url]; ok {
		return nil, ErrConflict
	}
	s := models.Summary{ID: id, URL: url, Summary: summary, CreatedAt: time.Now().UTC()}
	r.byID[id] = s
	r.byURL[url] = id
	return &s, nil
}

// Len returns the number of stored summaries.
func (r *MemorySummaryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Ping always succeeds.
func (r *MemorySummaryRepository) Ping(ctx context.Context) error { return nil }
