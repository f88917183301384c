package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/reposcout/internal/core/domain"
	"github.com/custodia-labs/reposcout/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexSink = (*IndexStore)(nil)

// IndexStore is an in-memory implementation of driven.IndexSink keyed by
// document ID.
type IndexStore struct {
	mu        sync.RWMutex
	index     string
	documents map[string]domain.OutputRecord
	order     []string
}

// NewIndexStore creates an in-memory index named index.
func NewIndexStore(index string) *IndexStore {
	return &IndexStore{
		index:     index,
		documents: make(map[string]domain.OutputRecord),
	}
}

// DocumentExists reports whether id has been ingested into index.
func (s *IndexStore) DocumentExists(_ context.Context, index, id string) (bool, error) {
	if id == "" {
		return false, domain.NewOpError("document exists", domain.KindInvalidInput, domain.ErrMissingCommit)
	}
	if index != s.index {
		return false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.documents[id]
	return ok, nil
}

// Ingest stores record under its document ID.
func (s *IndexStore) Ingest(_ context.Context, record *domain.OutputRecord) (string, error) {
	if record == nil || record.IsEmpty() {
		return "", domain.NewOpError("ingest", domain.KindInvalidInput, domain.ErrEmptyRecord)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := record.DocumentID()
	if _, ok := s.documents[id]; !ok {
		s.order = append(s.order, id)
	}
	s.documents[id] = *record
	return "Status: 200 OK, Body: stored in memory", nil
}

// Documents returns the ingested records in first-ingest order.
func (s *IndexStore) Documents() []domain.OutputRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.OutputRecord, 0, len(s.order))
	for _, id := range s.order {
		docs = append(docs, s.documents[id])
	}
	return docs
}
