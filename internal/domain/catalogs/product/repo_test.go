package product

import (
	"context"
	"errors"
	"testing"

	"negocio/internal/docstore"
	"negocio/internal/docstore/memory"
)

func newRepo(t *testing.T) (*Repo, *Product) {
	t.Helper()
	repo := NewRepo(memory.New())
	p := NewProduct("Café molido", "CAF", 8500, 10)
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return repo, p
}

func TestStockOfReadsLiveValue(t *testing.T) {
	repo, p := newRepo(t)
	ctx := context.Background()

	stock, err := repo.StockOf(ctx, p.ID)
	if err != nil {
		t.Fatalf("StockOf: %v", err)
	}
	if stock != 10 {
		t.Errorf("stock = %d, want 10", stock)
	}

	if err := repo.DecrementStock(ctx, p.ID, 4); err != nil {
		t.Fatalf("DecrementStock: %v", err)
	}
	stock, err = repo.StockOf(ctx, p.ID)
	if err != nil {
		t.Fatalf("StockOf: %v", err)
	}
	if stock != 6 {
		t.Errorf("stock = %d, want 6", stock)
	}
}

func TestDecrementStockClampsAtZero(t *testing.T) {
	repo, p := newRepo(t)
	ctx := context.Background()

	if err := repo.DecrementStock(ctx, p.ID, 25); err != nil {
		t.Fatalf("DecrementStock: %v", err)
	}
	stock, err := repo.StockOf(ctx, p.ID)
	if err != nil {
		t.Fatalf("StockOf: %v", err)
	}
	if stock != 0 {
		t.Errorf("stock = %d, want clamp at 0", stock)
	}
}

func TestDecrementStockKeepsSiblingFields(t *testing.T) {
	repo, p := newRepo(t)
	ctx := context.Background()

	if err := repo.DecrementStock(ctx, p.ID, 1); err != nil {
		t.Fatalf("DecrementStock: %v", err)
	}
	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != p.Name || got.UnitPrice != p.UnitPrice || got.Code != p.Code {
		t.Errorf("partial stock update clobbered the document: %+v", got)
	}
}

func TestStockOfUnknownProduct(t *testing.T) {
	repo, _ := newRepo(t)

	if _, err := repo.StockOf(context.Background(), "missing"); !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestEffectiveMinStockDefault(t *testing.T) {
	p := NewProduct("Azúcar", "AZU", 3200, 3)
	if got := p.EffectiveMinStock(); got != DefaultMinStock {
		t.Errorf("EffectiveMinStock = %d, want default %d", got, DefaultMinStock)
	}

	p.MinStock = 12
	if got := p.EffectiveMinStock(); got != 12 {
		t.Errorf("EffectiveMinStock = %d, want 12", got)
	}
}
