// Package reports derives sales statistics from the ledger: period
// summaries, per-day totals and top products. Settlement amounts stay in
// exact minor units; only derived metrics (average ticket) use decimals.
package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"negocio/internal/core/types"
	"negocio/internal/domain/sales"
)

// Summary aggregates a period of the ledger.
type Summary struct {
	From          time.Time        `json:"from"`
	To            time.Time        `json:"to"`
	SaleCount     int              `json:"saleCount"`
	Revenue       types.MinorUnits `json:"revenue"`
	CashTotal     types.MinorUnits `json:"cashTotal"`
	TransferTotal types.MinorUnits `json:"transferTotal"`

	// AverageTicket is revenue divided by sale count, in minor units with
	// two decimal places. Zero when the period has no sales.
	AverageTicket types.Money `json:"averageTicket"`
}

// DailyTotal is one calendar day of the ledger (UTC).
type DailyTotal struct {
	Date      string           `json:"date"`
	SaleCount int              `json:"saleCount"`
	Revenue   types.MinorUnits `json:"revenue"`
}

// ProductTotal ranks one product by quantity sold.
type ProductTotal struct {
	ProductID string           `json:"productId"`
	Name      string           `json:"name"`
	Quantity  int64            `json:"quantity"`
	Revenue   types.MinorUnits `json:"revenue"`
}

// Service computes reports over the sale ledger.
type Service struct {
	sales sales.Repository
}

// NewService creates a report service.
func NewService(salesRepo sales.Repository) *Service {
	return &Service{sales: salesRepo}
}

// Summary aggregates sales with from <= timestamp < to.
func (s *Service) Summary(ctx context.Context, from, to time.Time) (*Summary, error) {
	items, err := s.listPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	sum := &Summary{From: from, To: to, AverageTicket: decimal.Zero}
	for _, sale := range items {
		sum.SaleCount++
		sum.Revenue += sale.Total
		switch sale.Payment.Method {
		case sales.PaymentCash:
			sum.CashTotal += sale.Total
		case sales.PaymentTransfer:
			sum.TransferTotal += sale.Total
		}
	}

	if sum.SaleCount > 0 {
		sum.AverageTicket = sum.Revenue.Decimal().
			Div(decimal.NewFromInt(int64(sum.SaleCount))).
			Round(2)
	}
	return sum, nil
}

// DailyTotals breaks the period into UTC calendar days, oldest first.
// Days without sales are omitted.
func (s *Service) DailyTotals(ctx context.Context, from, to time.Time) ([]*DailyTotal, error) {
	items, err := s.listPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*DailyTotal)
	for _, sale := range items {
		day := sale.Timestamp.UTC().Format("2006-01-02")
		total, ok := byDay[day]
		if !ok {
			total = &DailyTotal{Date: day}
			byDay[day] = total
		}
		total.SaleCount++
		total.Revenue += sale.Total
	}

	out := make([]*DailyTotal, 0, len(byDay))
	for _, total := range byDay {
		out = append(out, total)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// TopProducts ranks products by quantity sold in the period.
func (s *Service) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]*ProductTotal, error) {
	items, err := s.listPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string]*ProductTotal)
	for _, sale := range items {
		for _, line := range sale.Lines {
			total, ok := byProduct[line.ProductID]
			if !ok {
				total = &ProductTotal{ProductID: line.ProductID, Name: line.Name}
				byProduct[line.ProductID] = total
			}
			total.Quantity += line.Quantity
			total.Revenue += line.Subtotal
		}
	}

	out := make([]*ProductTotal, 0, len(byProduct))
	for _, total := range byProduct {
		out = append(out, total)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Service) listPeriod(ctx context.Context, from, to time.Time) ([]*sales.Sale, error) {
	items, err := s.sales.List(ctx, sales.ListFilter{})
	if err != nil {
		return nil, err
	}

	var filtered []*sales.Sale
	for _, sale := range items {
		ts := sale.Timestamp
		if !from.IsZero() && ts.Before(from) {
			continue
		}
		if !to.IsZero() && !ts.Before(to) {
			continue
		}
		filtered = append(filtered, sale)
	}
	return filtered, nil
}
