package dto

import (
	"negocio/internal/core/types"
	"negocio/internal/domain/finance"
	"negocio/internal/domain/payments"
)

// --- Payments ---

// PaymentRequest records or updates a client payment. Amount is minor units.
type PaymentRequest struct {
	ClientID    string `json:"clientId" binding:"required"`
	ClientName  string `json:"clientName" binding:"required"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Method      string `json:"method" binding:"required"`
	Description string `json:"description"`
}

// ToPayment maps the request onto a payment.
func (r PaymentRequest) ToPayment(p *payments.Payment) {
	p.ClientID = r.ClientID
	p.ClientName = r.ClientName
	p.Amount = types.MinorUnits(r.Amount)
	p.Method = r.Method
	p.Description = r.Description
}

// --- Finance ---

// MovementRequest records a manual ledger entry. Date is YYYY-MM-DD and
// defaults to today when omitted.
type MovementRequest struct {
	Type        string `json:"type" binding:"required,oneof=income expense"`
	Category    string `json:"category" binding:"required"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Description string `json:"description"`
	Method      string `json:"method"`
	Reference   string `json:"reference"`
	Date        string `json:"date"`
}

// ToMovement maps the request onto a movement. The date field is parsed
// by the handler.
func (r MovementRequest) ToMovement(m *finance.Movement) {
	m.Type = finance.MovementType(r.Type)
	m.Category = r.Category
	m.Amount = types.MinorUnits(r.Amount)
	m.Description = r.Description
	m.Method = r.Method
	m.Reference = r.Reference
}
