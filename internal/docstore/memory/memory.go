// Package memory provides an in-memory docstore.Store used by tests,
// seeding and local development. Collections are plain maps guarded by a
// mutex; semantics match the postgres implementation.
package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"sync"

	"negocio/internal/core/id"
	"negocio/internal/docstore"
)

// Store is a thread-safe in-memory document store.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte

	// FailAdd and FailUpdate, when set, force the next matching write to
	// fail with the given error. Used by tests to exercise partial-failure
	// paths of the finalizer.
	FailAdd    func(collection string) error
	FailUpdate func(collection, docID string) error
}

// New creates an empty store.
func New() *Store {
	return &Store{collections: make(map[string]map[string][]byte)}
}

func (s *Store) List(ctx context.Context, collection string, q docstore.Query) ([]docstore.Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []docstore.Doc
	for docID, data := range s.collections[collection] {
		fields := decodeFields(data)
		if !matches(fields, q.Filters) {
			continue
		}
		docs = append(docs, docstore.Doc{ID: docID, Data: bytes.Clone(data)})
	}

	if q.OrderBy != "" {
		sort.Slice(docs, func(i, j int) bool {
			less := fieldLess(decodeFields(docs[i].Data)[q.OrderBy], decodeFields(docs[j].Data)[q.OrderBy])
			if q.Descending {
				return !less
			}
			return less
		})
	} else {
		// Stable order for callers that do not sort: by id (UUIDv7 is
		// time-ordered).
		sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	}

	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs, nil
}

func (s *Store) Get(ctx context.Context, collection, docID string) (docstore.Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.collections[collection][docID]
	if !ok {
		return docstore.Doc{}, docstore.ErrNotFound
	}
	return docstore.Doc{ID: docID, Data: bytes.Clone(data)}, nil
}

func (s *Store) Add(ctx context.Context, collection string, data []byte) (string, error) {
	if s.FailAdd != nil {
		if err := s.FailAdd(collection); err != nil {
			return "", err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string][]byte)
	}
	docID := id.New()
	s.collections[collection][docID] = bytes.Clone(data)
	return docID, nil
}

func (s *Store) Update(ctx context.Context, collection, docID string, partial []byte) error {
	if s.FailUpdate != nil {
		if err := s.FailUpdate(collection, docID); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.collections[collection][docID]
	if !ok {
		return docstore.ErrNotFound
	}

	merged := decodeFields(current)
	for k, v := range decodeFields(partial) {
		merged[k] = v
	}
	data, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	s.collections[collection][docID] = data
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], docID)
	return nil
}

// Count returns the number of documents in a collection. Test helper.
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

func decodeFields(data []byte) map[string]any {
	fields := make(map[string]any)
	_ = json.Unmarshal(data, &fields)
	return fields
}

func matches(fields map[string]any, filters []docstore.Filter) bool {
	for _, f := range filters {
		want, _ := json.Marshal(f.Value)
		got, _ := json.Marshal(fields[f.Field])
		if !bytes.Equal(want, got) {
			return false
		}
	}
	return true
}

func fieldLess(a, b any) bool {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av < bv
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return av < bv
		}
	}
	// Missing or mixed-type fields sort before present ones.
	return a == nil && b != nil
}

var _ docstore.Store = (*Store)(nil)
