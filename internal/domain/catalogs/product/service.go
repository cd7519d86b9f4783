package product

import (
	"context"
	"strings"

	"negocio/internal/core/apperror"
	"negocio/internal/core/entity"
	"negocio/pkg/logger"
)

// Service provides catalog operations for products.
type Service struct {
	repo Repository
}

// NewService creates a product service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new product.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if p.CreatedAt.IsZero() {
		p.Record = entity.NewRecord()
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return apperror.NewPersistence("create product", err)
	}
	logger.Info(ctx, "product created", "id", p.ID, "name", p.Name)
	return nil
}

// GetByID fetches one product.
func (s *Service) GetByID(ctx context.Context, productID string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, apperror.NewNotFound("product", productID).WithCause(err)
	}
	return p, nil
}

// List returns products ordered by name, optionally filtered by a
// case-insensitive search over name and code.
func (s *Service) List(ctx context.Context, search string) ([]*Product, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return items, nil
	}
	needle := strings.ToLower(search)
	filtered := items[:0]
	for _, p := range items {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Code), needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Update validates and replaces an existing product.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if p.ID == "" {
		return apperror.NewValidation("id is required")
	}
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return apperror.NewPersistence("update product", err)
	}
	return nil
}

// Delete removes a product from the catalog.
func (s *Service) Delete(ctx context.Context, productID string) error {
	return s.repo.Delete(ctx, productID)
}
