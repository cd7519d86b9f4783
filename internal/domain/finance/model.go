// Package finance keeps the income/expense ledger. Entries are recorded
// manually or imported from finalized sales; each sale imports at most once.
package finance

import (
	"context"
	"strings"
	"time"

	"negocio/internal/core/apperror"
	"negocio/internal/core/entity"
	"negocio/internal/core/types"
)

// MovementType classifies a ledger entry.
type MovementType string

const (
	MovementIncome  MovementType = "income"
	MovementExpense MovementType = "expense"
)

// Origin tells how a movement entered the ledger.
type Origin string

const (
	OriginManual Origin = "manual"
	OriginSale   Origin = "sale"
)

// Movement is one ledger entry. Sale-imported entries keep the sale id so
// the import stays idempotent.
type Movement struct {
	entity.Record

	Type        MovementType     `json:"type"`
	Category    string           `json:"category"`
	Amount      types.MinorUnits `json:"amount"`
	Description string           `json:"description,omitempty"`
	Method      string           `json:"method,omitempty"`
	Reference   string           `json:"reference,omitempty"`
	Origin      Origin           `json:"origin"`
	SaleID      string           `json:"saleId,omitempty"`
	Date        time.Time        `json:"date"`
}

// NewMovement creates a manual movement dated now.
func NewMovement(typ MovementType, category string, amount types.MinorUnits) *Movement {
	return &Movement{
		Record:   entity.NewRecord(),
		Type:     typ,
		Category: category,
		Amount:   amount,
		Origin:   OriginManual,
		Date:     time.Now().UTC(),
	}
}

// Validate checks ledger invariants.
func (m *Movement) Validate(ctx context.Context) error {
	if m.Type != MovementIncome && m.Type != MovementExpense {
		return apperror.NewValidation("type must be income or expense").
			WithDetail("field", "type")
	}
	if strings.TrimSpace(m.Category) == "" {
		return apperror.NewValidation("category is required").
			WithDetail("field", "category")
	}
	if !m.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}
	return nil
}

// Summary aggregates a set of movements.
type Summary struct {
	Income  types.MinorUnits `json:"income"`
	Expense types.MinorUnits `json:"expense"`
	Balance types.MinorUnits `json:"balance"`
}

// Summarize totals the given movements. Balance is income minus expense
// and may be negative.
func Summarize(movements []*Movement) Summary {
	var sum Summary
	for _, m := range movements {
		switch m.Type {
		case MovementIncome:
			sum.Income += m.Amount
		case MovementExpense:
			sum.Expense += m.Amount
		}
	}
	sum.Balance = sum.Income - sum.Expense
	return sum
}
