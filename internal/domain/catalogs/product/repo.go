package product

import (
	"context"

	"negocio/internal/docstore"
)

// CollectionName is the backing docstore collection.
const CollectionName = "products"

// Repository defines product persistence operations.
// StockOf and DecrementStock read and write the live stock value; the sales
// finalizer depends on them for commit-time re-validation and the clamped
// decrement.
type Repository interface {
	List(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, productID string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, productID string) error

	// StockOf returns the freshly-read stock for a product.
	StockOf(ctx context.Context, productID string) (int64, error)

	// DecrementStock subtracts qty from the stored stock, clamping at 0.
	// Read-modify-write on a single document; stock never goes negative.
	DecrementStock(ctx context.Context, productID string, qty int64) error
}

// Repo implements Repository over the document store.
type Repo struct {
	col *docstore.Collection[Product]
}

// NewRepo creates a product repository.
func NewRepo(store docstore.Store) *Repo {
	return &Repo{col: docstore.NewCollection[Product](store, CollectionName)}
}

func (r *Repo) List(ctx context.Context) ([]*Product, error) {
	return r.col.List(ctx, docstore.Query{OrderBy: "name"})
}

func (r *Repo) GetByID(ctx context.Context, productID string) (*Product, error) {
	return r.col.Get(ctx, productID)
}

func (r *Repo) Create(ctx context.Context, p *Product) error {
	_, err := r.col.Add(ctx, p)
	return err
}

func (r *Repo) Update(ctx context.Context, p *Product) error {
	return r.col.Replace(ctx, p.ID, p)
}

func (r *Repo) Delete(ctx context.Context, productID string) error {
	return r.col.Delete(ctx, productID)
}

func (r *Repo) StockOf(ctx context.Context, productID string) (int64, error) {
	p, err := r.col.Get(ctx, productID)
	if err != nil {
		return 0, err
	}
	return p.Stock, nil
}

func (r *Repo) DecrementStock(ctx context.Context, productID string, qty int64) error {
	p, err := r.col.Get(ctx, productID)
	if err != nil {
		return err
	}
	remaining := p.Stock - qty
	if remaining < 0 {
		remaining = 0
	}
	return r.col.Update(ctx, productID, map[string]any{"stock": remaining})
}

var _ Repository = (*Repo)(nil)
