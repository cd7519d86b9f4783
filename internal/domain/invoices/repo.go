package invoices

import (
	"context"

	"negocio/internal/core/apperror"
	"negocio/internal/docstore"
)

// CollectionName is the backing docstore collection.
const CollectionName = "invoices"

// Repository defines invoice persistence. Invoices are written once at
// issue time and never mutated afterwards.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, invoiceID string) (*Invoice, error)
	GetBySaleID(ctx context.Context, saleID string) (*Invoice, error)
	List(ctx context.Context, limit int) ([]*Invoice, error)
}

// Repo implements Repository over the document store.
type Repo struct {
	col *docstore.Collection[Invoice]
}

// NewRepo creates an invoice repository.
func NewRepo(store docstore.Store) *Repo {
	return &Repo{col: docstore.NewCollection[Invoice](store, CollectionName)}
}

func (r *Repo) Create(ctx context.Context, inv *Invoice) error {
	_, err := r.col.Add(ctx, inv)
	return err
}

func (r *Repo) GetByID(ctx context.Context, invoiceID string) (*Invoice, error) {
	inv, err := r.col.Get(ctx, invoiceID)
	if err != nil {
		return nil, apperror.NewNotFound("invoice", invoiceID).WithCause(err)
	}
	return inv, nil
}

func (r *Repo) GetBySaleID(ctx context.Context, saleID string) (*Invoice, error) {
	items, err := r.col.List(ctx, docstore.Query{}.Where("saleId", saleID))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewNotFound("invoice for sale", saleID)
	}
	return items[0], nil
}

func (r *Repo) List(ctx context.Context, limit int) ([]*Invoice, error) {
	return r.col.List(ctx, docstore.Query{OrderBy: "issuedAt", Descending: true, Limit: limit})
}

var _ Repository = (*Repo)(nil)
