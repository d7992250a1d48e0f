package store

import (
	"fmt"
	"sort"
	"sync"

	"docqa/internal/domain"
	"docqa/internal/port"
)

var _ port.DocumentStore = (*MemoryStore)(nil)

type docEntry struct {
	doc    domain.Document
	chunks []domain.Chunk
	index  port.VectorIndex
}

// MemoryStore keeps documents, their chunks and their vector index in a
// map guarded by a RWMutex. Publish installs a fully built entry in a
// single write, so readers never observe a document whose index is
// still filling.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]docEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]docEntry)}
}

// Publish makes a document visible. The chunks and index must be
// complete; after this call they are treated as read-only.
func (s *MemoryStore) Publish(doc domain.Document, chunks []domain.Chunk, index port.VectorIndex) error {
	if doc.ID == "" {
		return fmt.Errorf("store: document has no id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[doc.ID] = docEntry{doc: doc, chunks: chunks, index: index}
	return nil
}

func (s *MemoryStore) Get(id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return domain.Document{}, fmt.Errorf("%w: %s", domain.ErrUnknownDocument, id)
	}
	return entry.doc, nil
}

func (s *MemoryStore) Chunks(id string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDocument, id)
	}
	return entry.chunks, nil
}

func (s *MemoryStore) Index(id string) (port.VectorIndex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDocument, id)
	}
	return entry.index, nil
}

// List returns all documents ordered by creation time, then id.
func (s *MemoryStore) List() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.entries))
	for _, entry := range s.entries {
		docs = append(docs, entry.doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.Before(docs[j].CreatedAt)
		}
		return docs[i].ID < docs[j].ID
	})
	return docs
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownDocument, id)
	}
	delete(s.entries, id)
	return nil
}
