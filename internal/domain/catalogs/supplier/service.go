package supplier

import (
	"context"

	"negocio/internal/core/apperror"
	"negocio/internal/core/entity"
	"negocio/internal/docstore"
)

// CollectionName is the backing docstore collection.
const CollectionName = "suppliers"

// Service provides CRUD for the supplier catalog.
type Service struct {
	col *docstore.Collection[Supplier]
}

// NewService creates a supplier service.
func NewService(store docstore.Store) *Service {
	return &Service{col: docstore.NewCollection[Supplier](store, CollectionName)}
}

func (s *Service) Create(ctx context.Context, sup *Supplier) error {
	if err := sup.Validate(ctx); err != nil {
		return err
	}
	if sup.CreatedAt.IsZero() {
		sup.Record = entity.NewRecord()
	}
	if _, err := s.col.Add(ctx, sup); err != nil {
		return apperror.NewPersistence("create supplier", err)
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, supplierID string) (*Supplier, error) {
	sup, err := s.col.Get(ctx, supplierID)
	if err != nil {
		return nil, apperror.NewNotFound("supplier", supplierID).WithCause(err)
	}
	return sup, nil
}

func (s *Service) List(ctx context.Context) ([]*Supplier, error) {
	return s.col.List(ctx, docstore.Query{OrderBy: "name"})
}

func (s *Service) Update(ctx context.Context, sup *Supplier) error {
	if sup.ID == "" {
		return apperror.NewValidation("id is required")
	}
	if err := sup.Validate(ctx); err != nil {
		return err
	}
	if err := s.col.Replace(ctx, sup.ID, sup); err != nil {
		return apperror.NewPersistence("update supplier", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, supplierID string) error {
	return s.col.Delete(ctx, supplierID)
}
