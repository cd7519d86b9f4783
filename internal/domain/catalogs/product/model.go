// Package product provides the product catalog: the read view used by the
// sales flow plus catalog maintenance.
package product

import (
	"context"
	"strings"

	"negocio/internal/core/apperror"
	"negocio/internal/core/entity"
	"negocio/internal/core/types"
)

// DefaultMinStock is the low-stock threshold used when a product does not
// define its own.
const DefaultMinStock int64 = 5

// Product is a catalog item with on-hand stock.
// Legacy documents may lack the stock field entirely; it decodes to 0,
// which is the defined default.
type Product struct {
	entity.Record

	Name       string           `json:"name"`
	Code       string           `json:"code,omitempty"`
	UnitPrice  types.MinorUnits `json:"unitPrice"`
	Stock      int64            `json:"stock"`
	MinStock   int64            `json:"minStock,omitempty"`
	SupplierID string           `json:"supplierId,omitempty"`
}

// NewProduct creates a product with required fields.
func NewProduct(name, code string, unitPrice types.MinorUnits, stock int64) *Product {
	return &Product{
		Record:    entity.NewRecord(),
		Name:      name,
		Code:      code,
		UnitPrice: unitPrice,
		Stock:     stock,
	}
}

// Validate checks catalog invariants.
func (p *Product) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if p.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price must not be negative").
			WithDetail("field", "unitPrice")
	}
	if p.Stock < 0 {
		return apperror.NewValidation("stock must not be negative").
			WithDetail("field", "stock")
	}
	return nil
}

// EffectiveMinStock returns the low-stock threshold for this product.
func (p *Product) EffectiveMinStock() int64 {
	if p.MinStock > 0 {
		return p.MinStock
	}
	return DefaultMinStock
}
