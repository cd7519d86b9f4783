// Package payments records client payments outside the sale flow:
// deposits, settlements of an account balance, partial payments.
package payments

import (
	"context"
	"strings"
	"time"

	"negocio/internal/core/apperror"
	"negocio/internal/core/entity"
	"negocio/internal/core/types"
)

// Payment is a recorded client payment. The client name is snapshotted at
// registration time so the record survives later catalog edits, same as
// the sale ledger does.
type Payment struct {
	entity.Record

	ClientID    string           `json:"clientId"`
	ClientName  string           `json:"clientName"`
	Amount      types.MinorUnits `json:"amount"`
	Method      string           `json:"method"`
	Description string           `json:"description,omitempty"`
	PaidAt      time.Time        `json:"paidAt"`
}

// NewPayment creates a payment with required fields, dated now.
func NewPayment(clientID, clientName string, amount types.MinorUnits, method string) *Payment {
	return &Payment{
		Record:     entity.NewRecord(),
		ClientID:   clientID,
		ClientName: clientName,
		Amount:     amount,
		Method:     method,
		PaidAt:     time.Now().UTC(),
	}
}

// Validate checks payment invariants.
func (p *Payment) Validate(ctx context.Context) error {
	if p.ClientID == "" {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}
	if !p.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}
	if strings.TrimSpace(p.Method) == "" {
		return apperror.NewValidation("method is required").
			WithDetail("field", "method")
	}
	return nil
}
