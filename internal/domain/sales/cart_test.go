package sales

import (
	"testing"

	"negocio/internal/core/apperror"
	"negocio/internal/core/types"
	"negocio/internal/domain/catalogs/product"
)

func testProduct(name string, price types.MinorUnits, stock int64) *product.Product {
	p := product.NewProduct(name, "", price, stock)
	p.ID = "prod-" + name
	return p
}

func TestCartTotalIsSumOfSubtotals(t *testing.T) {
	cart := NewCart()
	coffee := testProduct("coffee", 8500, 100)
	sugar := testProduct("sugar", 3200, 100)

	if err := cart.AddLine(coffee, 3, coffee.UnitPrice, ""); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}
	if err := cart.AddLine(sugar, 2, sugar.UnitPrice, ""); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}

	want := types.MinorUnits(3*8500 + 2*3200)
	if got := cart.Total(); got != want {
		t.Errorf("Total mismatch\nwant: %d\ngot:  %d", want, got)
	}

	var sum types.MinorUnits
	for _, l := range cart.Lines {
		if l.Subtotal != l.UnitPrice*types.MinorUnits(l.Quantity) {
			t.Errorf("subtotal drift on %s: %d != %d * %d", l.Name, l.Subtotal, l.UnitPrice, l.Quantity)
		}
		sum += l.Subtotal
	}
	if sum != cart.Total() {
		t.Errorf("Total() != sum of subtotals: %d != %d", cart.Total(), sum)
	}
}

func TestAddLineInsufficientStock(t *testing.T) {
	cart := NewCart()
	p := testProduct("bread", 4500, 5)

	if err := cart.AddLine(p, 6, p.UnitPrice, ""); !apperror.IsCode(err, apperror.CodeInsufficientStock) {
		t.Fatalf("want INSUFFICIENT_STOCK, got %v", err)
	}
	if !cart.IsEmpty() {
		t.Error("failed add must leave the cart unchanged")
	}
}

func TestAddLineSumsAcrossLinesOfSameProduct(t *testing.T) {
	cart := NewCart()
	p := testProduct("milk", 2800, 10)

	if err := cart.AddLine(p, 6, p.UnitPrice, "batch A"); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}
	// 6 reserved + 5 > 10
	if err := cart.AddLine(p, 5, p.UnitPrice, "batch B"); !apperror.IsCode(err, apperror.CodeInsufficientStock) {
		t.Fatalf("want INSUFFICIENT_STOCK, got %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Errorf("cart changed on failed add: %d lines", len(cart.Lines))
	}
	// 6 + 4 fits exactly
	if err := cart.AddLine(p, 4, p.UnitPrice, "batch B"); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}
	if got := cart.QuantityFor(p.ID); got != 10 {
		t.Errorf("QuantityFor = %d, want 10", got)
	}
}

func TestAddLineValidation(t *testing.T) {
	cart := NewCart()
	p := testProduct("tea", 5000, 10)

	if err := cart.AddLine(p, 0, p.UnitPrice, ""); !apperror.IsCode(err, apperror.CodeValidation) {
		t.Errorf("zero quantity: want VALIDATION_ERROR, got %v", err)
	}
	if err := cart.AddLine(p, 1, -1, ""); !apperror.IsCode(err, apperror.CodeValidation) {
		t.Errorf("negative price: want VALIDATION_ERROR, got %v", err)
	}
	if !cart.IsEmpty() {
		t.Error("failed adds must leave the cart unchanged")
	}
}

func TestAddLinePriceOverride(t *testing.T) {
	cart := NewCart()
	p := testProduct("cake", 12000, 3)

	if err := cart.AddLine(p, 2, 10000, "discount"); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}
	if cart.Lines[0].UnitPrice != 10000 {
		t.Errorf("UnitPrice = %d, want override 10000", cart.Lines[0].UnitPrice)
	}
	if cart.Lines[0].Subtotal != 20000 {
		t.Errorf("Subtotal = %d, want 20000", cart.Lines[0].Subtotal)
	}
}

func TestRemoveLineOutOfRangeIsNoOp(t *testing.T) {
	cart := NewCart()
	p := testProduct("rice", 3000, 10)
	if err := cart.AddLine(p, 1, p.UnitPrice, ""); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}

	cart.RemoveLine(-1)
	cart.RemoveLine(5)
	if len(cart.Lines) != 1 {
		t.Errorf("out-of-range remove changed the cart: %d lines", len(cart.Lines))
	}

	cart.RemoveLine(0)
	if !cart.IsEmpty() {
		t.Error("in-range remove did not remove the line")
	}
}

func TestClearResetsCustomerName(t *testing.T) {
	cart := NewCart()
	cart.CustomerName = "María"
	p := testProduct("oil", 9000, 10)
	if err := cart.AddLine(p, 1, p.UnitPrice, ""); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}

	cart.Clear()
	if !cart.IsEmpty() || cart.CustomerName != "" {
		t.Errorf("Clear left state behind: %d lines, name %q", len(cart.Lines), cart.CustomerName)
	}
}

func TestNewSaleDefaultsCustomerName(t *testing.T) {
	cart := NewCart()
	p := testProduct("soap", 1500, 10)
	if err := cart.AddLine(p, 2, p.UnitPrice, ""); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}

	sale := NewSale(cart, Payment{Method: PaymentCash, Tendered: 3000})
	if sale.ClientName != DefaultCustomerName {
		t.Errorf("ClientName = %q, want %q", sale.ClientName, DefaultCustomerName)
	}
	if sale.Total != 3000 {
		t.Errorf("Total = %d, want 3000", sale.Total)
	}

	// Snapshot: clearing the cart must not affect the sale.
	cart.Clear()
	if len(sale.Lines) != 1 {
		t.Error("sale lines must be a snapshot, not a reference")
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	cart := reg.Create()

	got, err := reg.Get(cart.ID)
	if err != nil || got != cart {
		t.Fatalf("Get(%s) = %v, %v", cart.ID, got, err)
	}

	reg.Remove(cart.ID)
	if _, err := reg.Get(cart.ID); !apperror.IsNotFound(err) {
		t.Errorf("want NOT_FOUND after Remove, got %v", err)
	}
}
