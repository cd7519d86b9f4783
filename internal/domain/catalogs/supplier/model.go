// Package supplier provides the supplier catalog.
package supplier

import (
	"context"
	"strings"

	"negocio/internal/core/apperror"
	"negocio/internal/core/entity"
)

// Supplier is a goods supplier record.
type Supplier struct {
	entity.Record

	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// NewSupplier creates a supplier with required fields.
func NewSupplier(name string) *Supplier {
	return &Supplier{Record: entity.NewRecord(), Name: name}
}

// Validate checks catalog invariants.
func (s *Supplier) Validate(ctx context.Context) error {
	if strings.TrimSpace(s.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
