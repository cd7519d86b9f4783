package invoices

import (
	"context"

	"negocio/internal/core/apperror"
	"negocio/internal/domain/sales"
	"negocio/pkg/logger"
	"negocio/pkg/numerator"
)

// NumberPrefix is the invoice series prefix: FAC-2026-00001.
const NumberPrefix = "FAC"

// Generator issues invoices for committed sales: assigns the next number
// in the series and persists the document. Exactly one invoice is issued
// per finalized sale; reprints re-render the stored document.
type Generator struct {
	repo      Repository
	numerator *numerator.Service
}

// NewGenerator creates an invoice generator.
func NewGenerator(repo Repository, num *numerator.Service) *Generator {
	return &Generator{repo: repo, numerator: num}
}

// Issue derives, numbers and persists the invoice for a sale.
func (g *Generator) Issue(ctx context.Context, sale *sales.Sale) (*Invoice, error) {
	inv := FromSale(sale)

	number, err := g.numerator.GetNextNumber(ctx, numerator.DefaultConfig(NumberPrefix), inv.IssuedAt)
	if err != nil {
		return nil, apperror.NewPersistence("assign invoice number", err)
	}
	inv.Number = number

	if err := g.repo.Create(ctx, inv); err != nil {
		return nil, apperror.NewPersistence("create invoice", err)
	}

	logger.Info(ctx, "invoice issued",
		"invoice_id", inv.ID,
		"number", inv.Number,
		"sale_id", inv.SaleID,
		"total", inv.Total.Int64())
	return inv, nil
}
