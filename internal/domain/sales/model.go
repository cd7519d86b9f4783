// Package sales provides the sale aggregate: the in-progress cart, payment
// settlement and the persisted sale ledger.
package sales

import (
	"time"

	"negocio/internal/core/entity"
	"negocio/internal/core/types"
)

// DefaultCustomerName is recorded when the operator leaves the customer
// blank. Sales do not require a catalog client.
const DefaultCustomerName = "N/A"

// Line is one cart/sale line. Price is captured at add time and never
// re-fetched, so a later catalog price change does not alter an in-progress
// cart or a committed sale.
type Line struct {
	ProductID string           `json:"productId"`
	Name      string           `json:"name"`
	Code      string           `json:"code,omitempty"`
	UnitPrice types.MinorUnits `json:"unitPrice"`
	Quantity  int64            `json:"quantity"`
	Subtotal  types.MinorUnits `json:"subtotal"`
	Note      string           `json:"note,omitempty"`
}

// PaymentMethod is how a sale was settled.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

// Payment is the resolved settlement of a sale.
type Payment struct {
	Method   PaymentMethod    `json:"method"`
	Tendered types.MinorUnits `json:"tendered"`
	Change   types.MinorUnits `json:"change"`
}

// Sale is a committed sale. Immutable after creation: edits elsewhere in
// the system replace the whole record, never mutate lines in place.
type Sale struct {
	entity.Record

	ClientName string           `json:"clientName"`
	Lines      []Line           `json:"lines"`
	Total      types.MinorUnits `json:"total"`
	Payment    Payment          `json:"payment"`
	Timestamp  time.Time        `json:"timestamp"`
}

// NewSale snapshots a cart and payment into a sale record.
func NewSale(cart *Cart, payment Payment) *Sale {
	clientName := cart.CustomerName
	if clientName == "" {
		clientName = DefaultCustomerName
	}
	lines := make([]Line, len(cart.Lines))
	copy(lines, cart.Lines)
	return &Sale{
		Record:     entity.NewRecord(),
		ClientName: clientName,
		Lines:      lines,
		Total:      cart.Total(),
		Payment:    payment,
		Timestamp:  time.Now().UTC(),
	}
}
