package finance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"negocio/internal/core/apperror"
	"negocio/internal/core/entity"
	"negocio/internal/docstore"
	"negocio/internal/domain/sales"
)

// CollectionName is the backing docstore collection.
const CollectionName = "movements"

// SaleCategory is the category stamped on sale-imported income entries.
const SaleCategory = "sale"

// Filter narrows ledger listings.
type Filter struct {
	// Type restricts to one movement type. Empty means both.
	Type MovementType

	// Category matches case-insensitive as a substring.
	Category string

	// From and To bound Date inclusively.
	From *time.Time
	To   *time.Time
}

// Service provides the income/expense ledger over the document store.
type Service struct {
	col   *docstore.Collection[Movement]
	sales sales.Repository
}

// NewService creates a finance service.
func NewService(store docstore.Store, salesRepo sales.Repository) *Service {
	return &Service{
		col:   docstore.NewCollection[Movement](store, CollectionName),
		sales: salesRepo,
	}
}

// Create records a manual movement. A zero date defaults to now.
func (s *Service) Create(ctx context.Context, m *Movement) error {
	if err := m.Validate(ctx); err != nil {
		return err
	}
	if m.CreatedAt.IsZero() {
		m.Record = entity.NewRecord()
	}
	if m.Origin == "" {
		m.Origin = OriginManual
	}
	if m.Date.IsZero() {
		m.Date = time.Now().UTC()
	}
	if _, err := s.col.Add(ctx, m); err != nil {
		return apperror.NewPersistence("create movement", err)
	}
	return nil
}

// List returns movements newest first, optionally filtered.
func (s *Service) List(ctx context.Context, f Filter) ([]*Movement, error) {
	items, err := s.col.List(ctx, docstore.Query{OrderBy: "date", Descending: true})
	if err != nil {
		return nil, err
	}
	filtered := items[:0]
	for _, m := range items {
		if matchesFilter(m, f) {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

func matchesFilter(m *Movement, f Filter) bool {
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.From != nil && m.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && m.Date.After(*f.To) {
		return false
	}
	if f.Category == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Category), strings.ToLower(f.Category))
}

// Summarize lists the filtered movements and totals them.
func (s *Service) Summarize(ctx context.Context, f Filter) (Summary, error) {
	items, err := s.List(ctx, f)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(items), nil
}

// UnimportedSales returns finalized sales that have no income entry yet.
func (s *Service) UnimportedSales(ctx context.Context) ([]*sales.Sale, error) {
	imported, err := s.importedSaleIDs(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.sales.List(ctx, sales.ListFilter{})
	if err != nil {
		return nil, err
	}
	pending := all[:0]
	for _, sale := range all {
		if !imported[sale.ID] {
			pending = append(pending, sale)
		}
	}
	return pending, nil
}

// ImportSales records the named sales as income entries. Sales that were
// imported before are skipped, so re-posting the same selection is safe.
// Returns the movements actually created.
func (s *Service) ImportSales(ctx context.Context, saleIDs []string) ([]*Movement, error) {
	imported, err := s.importedSaleIDs(ctx)
	if err != nil {
		return nil, err
	}

	created := make([]*Movement, 0, len(saleIDs))
	for _, saleID := range saleIDs {
		if imported[saleID] {
			continue
		}
		sale, err := s.sales.GetByID(ctx, saleID)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				return created, apperror.NewNotFound("sale", saleID).WithCause(err)
			}
			return created, err
		}

		m := &Movement{
			Record:      entity.NewRecord(),
			Type:        MovementIncome,
			Category:    SaleCategory,
			Amount:      sale.Total,
			Description: fmt.Sprintf("Sale to %s", sale.ClientName),
			Method:      string(sale.Payment.Method),
			Reference:   sale.ID,
			Origin:      OriginSale,
			SaleID:      sale.ID,
			Date:        sale.Timestamp,
		}
		if _, err := s.col.Add(ctx, m); err != nil {
			return created, apperror.NewPersistence("import sale", err)
		}
		imported[saleID] = true
		created = append(created, m)
	}
	return created, nil
}

func (s *Service) importedSaleIDs(ctx context.Context) (map[string]bool, error) {
	entries, err := s.col.List(ctx, docstore.Query{}.Where("origin", string(OriginSale)))
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(entries))
	for _, m := range entries {
		ids[m.SaleID] = true
	}
	return ids, nil
}

func (s *Service) Delete(ctx context.Context, movementID string) error {
	return s.col.Delete(ctx, movementID)
}

// DeleteMany removes the named movements, stopping at the first failure.
func (s *Service) DeleteMany(ctx context.Context, movementIDs []string) error {
	for _, id := range movementIDs {
		if err := s.col.Delete(ctx, id); err != nil {
			return apperror.NewPersistence("delete movement", err).
				WithDetail("id", id)
		}
	}
	return nil
}
