// Package invoices derives and stores the invoice issued for every
// committed sale: one invoice per sale, numbered sequentially, rendered to
// PDF on demand.
package invoices

import (
	"time"

	"negocio/internal/core/entity"
	"negocio/internal/core/types"
	"negocio/internal/domain/sales"
)

// Invoice is the fiscal document derived from a committed sale. Its lines
// and totals are a pure function of the sale; only the number and issue
// timestamp are minted at generation time.
type Invoice struct {
	entity.Record

	Number     string           `json:"number"`
	SaleID     string           `json:"saleId"`
	ClientName string           `json:"clientName"`
	Lines      []sales.Line     `json:"lines"`
	Total      types.MinorUnits `json:"total"`
	Payment    sales.Payment    `json:"payment"`
	IssuedAt   time.Time        `json:"issuedAt"`
}

// FromSale derives the invoice body from a sale. Pure; the number is
// assigned by the generator when the invoice is issued.
func FromSale(sale *sales.Sale) *Invoice {
	lines := make([]sales.Line, len(sale.Lines))
	copy(lines, sale.Lines)
	return &Invoice{
		Record:     entity.NewRecord(),
		SaleID:     sale.ID,
		ClientName: sale.ClientName,
		Lines:      lines,
		Total:      sale.Total,
		Payment:    sale.Payment,
		IssuedAt:   time.Now().UTC(),
	}
}
