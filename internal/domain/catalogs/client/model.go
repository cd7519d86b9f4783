// Package client provides the client (customer) catalog.
package client

import (
	"context"
	"strings"

	"negocio/internal/core/apperror"
	"negocio/internal/core/entity"
)

// Client is a customer record. The sales flow stores only a free-text
// customer name on the sale; this catalog backs the lookup/autocomplete
// and plain bookkeeping.
type Client struct {
	entity.Record

	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// NewClient creates a client with required fields.
func NewClient(name string) *Client {
	return &Client{Record: entity.NewRecord(), Name: name}
}

// Validate checks catalog invariants.
func (c *Client) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
