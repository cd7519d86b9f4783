package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"negocio/internal/core/apperror"
	"negocio/internal/docstore/memory"
	"negocio/internal/domain/catalogs/product"
	"negocio/internal/domain/invoices"
	"negocio/internal/domain/sales"
	"negocio/pkg/numerator"
)

type fixture struct {
	store     *memory.Store
	products  *product.Repo
	salesRepo *sales.Repo
	finalizer *Finalizer

	coffee *product.Product
	sugar  *product.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.New()
	productRepo := product.NewRepo(store)

	coffee := product.NewProduct("Café molido", "CAF", 8500, 10)
	sugar := product.NewProduct("Azúcar", "AZU", 3200, 3)
	for _, p := range []*product.Product{coffee, sugar} {
		if err := productRepo.Create(ctx, p); err != nil {
			t.Fatalf("create product: %v", err)
		}
	}

	salesRepo := sales.NewRepo(store)
	generator := invoices.NewGenerator(invoices.NewRepo(store), numerator.New(store))

	return &fixture{
		store:     store,
		products:  productRepo,
		salesRepo: salesRepo,
		finalizer: NewFinalizer(productRepo, salesRepo, generator),
		coffee:    coffee,
		sugar:     sugar,
	}
}

func (f *fixture) cart(t *testing.T) *sales.Cart {
	t.Helper()
	cart := sales.NewCart()
	if err := cart.AddLine(f.coffee, 2, f.coffee.UnitPrice, ""); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := cart.AddLine(f.sugar, 1, f.sugar.UnitPrice, ""); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	return cart
}

func (f *fixture) stockOf(t *testing.T, productID string) int64 {
	t.Helper()
	stock, err := f.products.StockOf(context.Background(), productID)
	if err != nil {
		t.Fatalf("StockOf: %v", err)
	}
	return stock
}

func TestFinalizeHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cart := f.cart(t) // total 2*8500 + 3200 = 20200

	result, err := f.finalizer.Finalize(ctx, cart, sales.PaymentCash, 25000)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if result.State != StateCompleted {
		t.Errorf("State = %s, want %s", result.State, StateCompleted)
	}
	if result.Sale.Total != 20200 {
		t.Errorf("Total = %d, want 20200", result.Sale.Total)
	}
	if result.Sale.Payment.Change != 4800 {
		t.Errorf("Change = %d, want 4800", result.Sale.Payment.Change)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	// Exactly one sale and one invoice persisted.
	if n := f.store.Count(sales.CollectionName); n != 1 {
		t.Errorf("sales persisted = %d, want 1", n)
	}
	if n := f.store.Count(invoices.CollectionName); n != 1 {
		t.Errorf("invoices persisted = %d, want 1", n)
	}

	// Stock decreased by exactly the sold quantities.
	if got := f.stockOf(t, f.coffee.ID); got != 8 {
		t.Errorf("coffee stock = %d, want 8", got)
	}
	if got := f.stockOf(t, f.sugar.ID); got != 2 {
		t.Errorf("sugar stock = %d, want 2", got)
	}

	// Invoice references the sale and carries the series number.
	wantNumber := fmt.Sprintf("FAC-%d-00001", time.Now().Year())
	if result.Invoice == nil {
		t.Fatal("no invoice in result")
	}
	if result.Invoice.SaleID != result.Sale.ID {
		t.Errorf("invoice.SaleID = %s, want %s", result.Invoice.SaleID, result.Sale.ID)
	}
	if result.Invoice.Number != wantNumber {
		t.Errorf("invoice.Number = %s, want %s", result.Invoice.Number, wantNumber)
	}

	if !cart.IsEmpty() {
		t.Error("cart must be empty after successful finalize")
	}
}

func TestFinalizeEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.finalizer.Finalize(context.Background(), sales.NewCart(), sales.PaymentCash, 1000)
	if !apperror.IsCode(err, apperror.CodeEmptyCart) {
		t.Fatalf("want EMPTY_CART, got %v", err)
	}
}

func TestFinalizeInsufficientPayment(t *testing.T) {
	f := newFixture(t)
	cart := f.cart(t)

	_, err := f.finalizer.Finalize(context.Background(), cart, sales.PaymentCash, 100)
	if !apperror.IsCode(err, apperror.CodeInsufficientPayment) {
		t.Fatalf("want INSUFFICIENT_PAYMENT, got %v", err)
	}
	if n := f.store.Count(sales.CollectionName); n != 0 {
		t.Errorf("sale persisted on rejected payment: %d", n)
	}
	if len(cart.Lines) != 2 {
		t.Error("cart must be preserved on rejection")
	}
}

func TestFinalizeInventoryConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cart := f.cart(t)

	// Another sale drains coffee stock after this cart was built.
	if err := f.products.DecrementStock(ctx, f.coffee.ID, 9); err != nil {
		t.Fatalf("DecrementStock: %v", err)
	}

	_, err := f.finalizer.Finalize(ctx, cart, sales.PaymentCash, 25000)
	if !apperror.IsCode(err, apperror.CodeInventoryConflict) {
		t.Fatalf("want INVENTORY_CONFLICT, got %v", err)
	}

	appErr, _ := apperror.AsAppError(err)
	shortfalls, _ := appErr.Details["products"].([]map[string]any)
	if len(shortfalls) != 1 {
		t.Fatalf("shortfalls = %v, want exactly the coffee line", appErr.Details)
	}
	if shortfalls[0]["name"] != f.coffee.Name {
		t.Errorf("shortfall names %v, want %s", shortfalls[0]["name"], f.coffee.Name)
	}
	if shortfalls[0]["available"] != int64(1) {
		t.Errorf("available = %v, want 1", shortfalls[0]["available"])
	}

	// Nothing persisted, cart retryable.
	if n := f.store.Count(sales.CollectionName); n != 0 {
		t.Errorf("sale persisted on conflict: %d", n)
	}
	if len(cart.Lines) != 2 {
		t.Error("cart must be preserved on conflict")
	}
}

func TestFinalizeSaleWriteFailureIsFatal(t *testing.T) {
	f := newFixture(t)
	cart := f.cart(t)

	f.store.FailAdd = func(collection string) error {
		if collection == sales.CollectionName {
			return errors.New("connection reset")
		}
		return nil
	}

	_, err := f.finalizer.Finalize(context.Background(), cart, sales.PaymentCash, 25000)
	if !apperror.IsCode(err, apperror.CodePersistence) {
		t.Fatalf("want PERSISTENCE_FAILURE, got %v", err)
	}

	if len(cart.Lines) != 2 {
		t.Error("cart must be preserved when the sale write fails")
	}
	if n := f.store.Count(invoices.CollectionName); n != 0 {
		t.Errorf("invoice persisted without a sale: %d", n)
	}
	if got := f.stockOf(t, f.coffee.ID); got != 10 {
		t.Errorf("stock mutated without a sale: %d", got)
	}
}

func TestFinalizeStockDecrementFailureIsWarning(t *testing.T) {
	f := newFixture(t)
	cart := f.cart(t)

	f.store.FailUpdate = func(collection, docID string) error {
		if collection == product.CollectionName && docID == f.coffee.ID {
			return errors.New("write timeout")
		}
		return nil
	}

	result, err := f.finalizer.Finalize(context.Background(), cart, sales.PaymentCash, 25000)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], f.coffee.Name) {
		t.Errorf("warnings = %v, want one naming %s", result.Warnings, f.coffee.Name)
	}

	// The sale stands; the other decrement went through.
	if n := f.store.Count(sales.CollectionName); n != 1 {
		t.Errorf("sales persisted = %d, want 1", n)
	}
	if got := f.stockOf(t, f.sugar.ID); got != 2 {
		t.Errorf("sugar stock = %d, want 2", got)
	}
	if got := f.stockOf(t, f.coffee.ID); got != 10 {
		t.Errorf("coffee stock = %d, want untouched 10", got)
	}
}

func TestFinalizeInvoiceFailureIsWarning(t *testing.T) {
	f := newFixture(t)
	cart := f.cart(t)

	f.store.FailAdd = func(collection string) error {
		if collection == invoices.CollectionName {
			return errors.New("disk full")
		}
		return nil
	}

	result, err := f.finalizer.Finalize(context.Background(), cart, sales.PaymentTransfer, 0)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if result.Invoice != nil {
		t.Error("result carries an invoice that was not persisted")
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "invoice") {
		t.Errorf("warnings = %v, want one about the invoice", result.Warnings)
	}
	if n := f.store.Count(sales.CollectionName); n != 1 {
		t.Errorf("sales persisted = %d, want 1", n)
	}
	if !cart.IsEmpty() {
		t.Error("cart must be cleared: the sale of record exists")
	}
}

func TestFinalizeStockClampsAtZero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// The TOCTOU window: stock drops between re-validation and decrement.
	// The clamp keeps persisted stock at 0 instead of negative.
	cart := sales.NewCart()
	if err := cart.AddLine(f.sugar, 3, f.sugar.UnitPrice, ""); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := f.products.DecrementStock(ctx, f.sugar.ID, 5); err != nil {
		t.Fatalf("DecrementStock: %v", err)
	}
	if got := f.stockOf(t, f.sugar.ID); got != 0 {
		t.Fatalf("clamped stock = %d, want 0", got)
	}
}

func TestFinalizeHooksRunAfterCommit(t *testing.T) {
	f := newFixture(t)
	cart := f.cart(t)

	var hookedSaleID string
	calls := 0
	f.finalizer.OnSaleFinalized(func(ctx context.Context, sale *sales.Sale) {
		calls++
		hookedSaleID = sale.ID
	})

	result, err := f.finalizer.Finalize(context.Background(), cart, sales.PaymentTransfer, 0)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("hook calls = %d, want 1", calls)
	}
	if hookedSaleID != result.Sale.ID {
		t.Errorf("hook sale = %s, want %s", hookedSaleID, result.Sale.ID)
	}
}

func TestFinalizeTransferForcesSettlement(t *testing.T) {
	f := newFixture(t)
	cart := f.cart(t)

	result, err := f.finalizer.Finalize(context.Background(), cart, sales.PaymentTransfer, 999)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if result.Sale.Payment.Tendered != result.Sale.Total {
		t.Errorf("Tendered = %d, want total %d", result.Sale.Payment.Tendered, result.Sale.Total)
	}
	if !result.Sale.Payment.Change.IsZero() {
		t.Errorf("Change = %d, want 0", result.Sale.Payment.Change)
	}
}
