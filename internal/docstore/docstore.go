// Package docstore defines the document-store collaborator the domain
// depends on: named collections of JSON documents with list/get/add/update/
// delete operations. Each operation is atomic at single-document granularity
// only; no multi-document transactions are assumed. Implementations live in
// the postgres and memory subpackages.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get and Update when no document has the id.
var ErrNotFound = errors.New("docstore: document not found")

// Doc is a stored document: an opaque JSON body plus its id.
type Doc struct {
	ID   string
	Data []byte
}

// Filter is an equality predicate on a top-level field of the document body.
type Filter struct {
	Field string
	Value any
}

// Query selects and orders documents within a collection.
// OrderBy names a top-level field; date fields are stored as RFC 3339
// strings, so lexicographic order matches chronological order.
type Query struct {
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
}

// Where appends an equality filter.
func (q Query) Where(field string, value any) Query {
	q.Filters = append(q.Filters, Filter{Field: field, Value: value})
	return q
}

// Store is the persistence collaborator contract.
//
// Update applies a shallow JSON merge: top-level fields present in partial
// replace the stored ones, everything else is kept. This mirrors the
// partial-update semantics of hosted document databases.
type Store interface {
	List(ctx context.Context, collection string, q Query) ([]Doc, error)
	Get(ctx context.Context, collection, id string) (Doc, error)
	Add(ctx context.Context, collection string, data []byte) (string, error)
	Update(ctx context.Context, collection, id string, partial []byte) error
	Delete(ctx context.Context, collection, id string) error
}
