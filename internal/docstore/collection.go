package docstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Identifiable is implemented by entities whose id is assigned by the store.
type Identifiable interface {
	SetID(id string)
}

// Collection provides typed access to one named collection.
// It handles JSON round-trips so repositories work with domain structs.
type Collection[T any] struct {
	store Store
	name  string
}

// NewCollection creates a typed view over store's collection.
func NewCollection[T any](store Store, name string) *Collection[T] {
	return &Collection[T]{store: store, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.name }

// Get fetches and decodes a single document.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return nil, err
	}
	return c.decode(doc)
}

// List fetches and decodes all documents matching q.
func (c *Collection[T]) List(ctx context.Context, q Query) ([]*T, error) {
	docs, err := c.store.List(ctx, c.name, q)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(docs))
	for _, doc := range docs {
		entity, err := c.decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

// Add encodes entity and stores it, returning the assigned id.
// If entity implements Identifiable the id is written back.
func (c *Collection[T]) Add(ctx context.Context, entity *T) (string, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return "", fmt.Errorf("encode %s document: %w", c.name, err)
	}
	docID, err := c.store.Add(ctx, c.name, data)
	if err != nil {
		return "", err
	}
	if ident, ok := any(entity).(Identifiable); ok {
		ident.SetID(docID)
	}
	return docID, nil
}

// Update applies a partial update built from fields.
func (c *Collection[T]) Update(ctx context.Context, id string, fields map[string]any) error {
	partial, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode %s partial: %w", c.name, err)
	}
	return c.store.Update(ctx, c.name, id, partial)
}

// Replace overwrites the whole document body with entity.
func (c *Collection[T]) Replace(ctx context.Context, id string, entity *T) error {
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", c.name, err)
	}
	return c.store.Update(ctx, c.name, id, data)
}

// Delete removes the document. Deleting an absent document is not an error.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

func (c *Collection[T]) decode(doc Doc) (*T, error) {
	entity := new(T)
	if err := json.Unmarshal(doc.Data, entity); err != nil {
		return nil, fmt.Errorf("decode %s document %s: %w", c.name, doc.ID, err)
	}
	if ident, ok := any(entity).(Identifiable); ok {
		ident.SetID(doc.ID)
	}
	return entity, nil
}
