package client

import (
	"context"
	"strings"

	"negocio/internal/core/apperror"
	"negocio/internal/core/entity"
	"negocio/internal/docstore"
)

// CollectionName is the backing docstore collection.
const CollectionName = "clients"

// Service provides CRUD for the client catalog.
type Service struct {
	col *docstore.Collection[Client]
}

// NewService creates a client service.
func NewService(store docstore.Store) *Service {
	return &Service{col: docstore.NewCollection[Client](store, CollectionName)}
}

func (s *Service) Create(ctx context.Context, c *Client) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	if c.CreatedAt.IsZero() {
		c.Record = entity.NewRecord()
	}
	if _, err := s.col.Add(ctx, c); err != nil {
		return apperror.NewPersistence("create client", err)
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, clientID string) (*Client, error) {
	c, err := s.col.Get(ctx, clientID)
	if err != nil {
		return nil, apperror.NewNotFound("client", clientID).WithCause(err)
	}
	return c, nil
}

// List returns clients ordered by name, optionally filtered by a
// case-insensitive search over name and email.
func (s *Service) List(ctx context.Context, search string) ([]*Client, error) {
	items, err := s.col.List(ctx, docstore.Query{OrderBy: "name"})
	if err != nil {
		return nil, err
	}
	if search == "" {
		return items, nil
	}
	needle := strings.ToLower(search)
	filtered := items[:0]
	for _, c := range items {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Email), needle) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (s *Service) Update(ctx context.Context, c *Client) error {
	if c.ID == "" {
		return apperror.NewValidation("id is required")
	}
	if err := c.Validate(ctx); err != nil {
		return err
	}
	if err := s.col.Replace(ctx, c.ID, c); err != nil {
		return apperror.NewPersistence("update client", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, clientID string) error {
	return s.col.Delete(ctx, clientID)
}
