package sales

import (
	"context"
	"strings"
	"time"

	"negocio/internal/docstore"
)

// CollectionName is the backing docstore collection.
const CollectionName = "sales"

// ListFilter narrows sale ledger queries.
type ListFilter struct {
	// Search matches client name or any line's product name,
	// case-insensitive.
	Search string

	// Date restricts to sales on that calendar day (UTC).
	Date *time.Time

	Limit int
}

// Repository defines sale ledger operations. Create is the durability
// boundary of the finalize flow: once it succeeds the sale has happened.
// The core never deletes sales; removal is an admin action elsewhere.
type Repository interface {
	Create(ctx context.Context, sale *Sale) error
	GetByID(ctx context.Context, saleID string) (*Sale, error)
	List(ctx context.Context, f ListFilter) ([]*Sale, error)
}

// Repo implements Repository over the document store.
type Repo struct {
	col *docstore.Collection[Sale]
}

// NewRepo creates a sale repository.
func NewRepo(store docstore.Store) *Repo {
	return &Repo{col: docstore.NewCollection[Sale](store, CollectionName)}
}

func (r *Repo) Create(ctx context.Context, sale *Sale) error {
	_, err := r.col.Add(ctx, sale)
	return err
}

func (r *Repo) GetByID(ctx context.Context, saleID string) (*Sale, error) {
	return r.col.Get(ctx, saleID)
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]*Sale, error) {
	items, err := r.col.List(ctx, docstore.Query{OrderBy: "timestamp", Descending: true})
	if err != nil {
		return nil, err
	}

	filtered := make([]*Sale, 0, len(items))
	for _, s := range items {
		if !matchesFilter(s, f) {
			continue
		}
		filtered = append(filtered, s)
		if f.Limit > 0 && len(filtered) == f.Limit {
			break
		}
	}
	return filtered, nil
}

func matchesFilter(s *Sale, f ListFilter) bool {
	if f.Date != nil {
		y1, m1, d1 := s.Timestamp.UTC().Date()
		y2, m2, d2 := f.Date.UTC().Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			return false
		}
	}
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(s.ClientName), needle) {
		return true
	}
	for _, l := range s.Lines {
		if strings.Contains(strings.ToLower(l.Name), needle) {
			return true
		}
	}
	return false
}

var _ Repository = (*Repo)(nil)
