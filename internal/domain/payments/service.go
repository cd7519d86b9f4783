package payments

import (
	"context"
	"strings"
	"time"

	"negocio/internal/core/apperror"
	"negocio/internal/core/entity"
	"negocio/internal/docstore"
)

// CollectionName is the backing docstore collection.
const CollectionName = "payments"

// Filter narrows payment listings.
type Filter struct {
	// Search matches the client name, case-insensitive.
	Search string

	// From and To bound PaidAt inclusively.
	From *time.Time
	To   *time.Time
}

// Service provides CRUD for the payment register.
type Service struct {
	col *docstore.Collection[Payment]
}

// NewService creates a payment service.
func NewService(store docstore.Store) *Service {
	return &Service{col: docstore.NewCollection[Payment](store, CollectionName)}
}

func (s *Service) Create(ctx context.Context, p *Payment) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if p.CreatedAt.IsZero() {
		p.Record = entity.NewRecord()
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now().UTC()
	}
	if _, err := s.col.Add(ctx, p); err != nil {
		return apperror.NewPersistence("create payment", err)
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, paymentID string) (*Payment, error) {
	p, err := s.col.Get(ctx, paymentID)
	if err != nil {
		return nil, apperror.NewNotFound("payment", paymentID).WithCause(err)
	}
	return p, nil
}

// List returns payments newest first, optionally filtered.
func (s *Service) List(ctx context.Context, f Filter) ([]*Payment, error) {
	items, err := s.col.List(ctx, docstore.Query{OrderBy: "paidAt", Descending: true})
	if err != nil {
		return nil, err
	}
	filtered := items[:0]
	for _, p := range items {
		if matchesFilter(p, f) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func matchesFilter(p *Payment, f Filter) bool {
	if f.From != nil && p.PaidAt.Before(*f.From) {
		return false
	}
	if f.To != nil && p.PaidAt.After(*f.To) {
		return false
	}
	if f.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.ClientName), strings.ToLower(f.Search))
}

func (s *Service) Update(ctx context.Context, p *Payment) error {
	if p.ID == "" {
		return apperror.NewValidation("id is required")
	}
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if err := s.col.Replace(ctx, p.ID, p); err != nil {
		return apperror.NewPersistence("update payment", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, paymentID string) error {
	return s.col.Delete(ctx, paymentID)
}
