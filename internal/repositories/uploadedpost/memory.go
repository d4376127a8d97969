package uploadedpost

import (
	"context"
	"sync"
	"time"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
)

// Memory is the ledger used when no database is configured. It only
// deduplicates within one process lifetime, which is all a one-shot
// migration needs.
type Memory struct {
	mu     sync.Mutex
	nextID int
	byKey  map[string]domain.UploadedPost
}

func NewMemory() *Memory {
	return &Memory{byKey: make(map[string]domain.UploadedPost)}
}

var _ Repository = (*Memory)(nil)

func (m *Memory) Create(ctx context.Context, rec domain.UploadedPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byKey[rec.SourceKey]; ok {
		return ErrAlreadyExists
	}
	m.nextID++
	rec.ID = m.nextID
	rec.CreatedAt = time.Now()
	m.byKey[rec.SourceKey] = rec
	return nil
}

func (m *Memory) Exists(ctx context.Context, sourceKey string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.byKey[sourceKey]
	return ok, nil
}

func (m *Memory) GetBySourceKey(ctx context.Context, sourceKey string) (*domain.UploadedPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.byKey[sourceKey]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (m *Memory) CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	var deleted int64
	for key, rec := range m.byKey {
		if rec.CreatedAt.Before(cutoff) {
			delete(m.byKey, key)
			deleted++
		}
	}
	return deleted, nil
}
