// Package checkout orchestrates sale finalization: the state machine that
// re-validates stock, commits the sale, reconciles inventory and issues the
// invoice. It sits above the sales, product and invoice packages so that
// none of them depend on each other.
package checkout

import (
	"context"
	"fmt"

	"negocio/internal/core/apperror"
	"negocio/internal/core/types"
	"negocio/internal/domain/catalogs/product"
	"negocio/internal/domain/invoices"
	"negocio/internal/domain/sales"
	"negocio/pkg/logger"
)

// State is the finalization phase a request is in, or ended in.
type State string

const (
	StateComposing         State = "composing"
	StateValidating        State = "validating"
	StateCommitting        State = "committing"
	StateCompleted         State = "completed"
	StateRejected          State = "rejected"
	StateInventoryConflict State = "inventory_conflict"
)

// Result is the outcome of a completed finalization. Warnings carry
// non-fatal reconciliation problems: the sale stands, but a stock decrement
// or the invoice issue did not go through and needs manual follow-up.
type Result struct {
	State    State             `json:"state"`
	Sale     *sales.Sale       `json:"sale"`
	Invoice  *invoices.Invoice `json:"invoice,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}

// Hook runs after a sale is durably committed. Hooks must not fail the
// finalization; they are called synchronously with the committed sale.
type Hook func(ctx context.Context, sale *sales.Sale)

// Finalizer drives a cart through validation and commit.
//
// The durability boundary is the sale write: before it, any failure leaves
// the cart intact and nothing persisted; after it, the sale stands and
// every further problem is reported as a warning instead of an error.
type Finalizer struct {
	products  product.Repository
	sales     sales.Repository
	generator *invoices.Generator
	hooks     []Hook
}

// NewFinalizer creates a finalizer.
func NewFinalizer(products product.Repository, salesRepo sales.Repository, generator *invoices.Generator) *Finalizer {
	return &Finalizer{products: products, sales: salesRepo, generator: generator}
}

// OnSaleFinalized registers a hook invoked after each committed sale.
// Not safe for concurrent use with Finalize; register during wiring.
func (f *Finalizer) OnSaleFinalized(h Hook) {
	f.hooks = append(f.hooks, h)
}

// Finalize runs the full finalization for a cart.
//
// Validation failures (empty cart, short payment, stock conflicts) return
// an error with the cart untouched, so the operator can adjust and retry.
// On success the cart is cleared and the result carries the sale, the
// invoice and any reconciliation warnings.
func (f *Finalizer) Finalize(ctx context.Context, cart *sales.Cart, method sales.PaymentMethod, tendered types.MinorUnits) (*Result, error) {
	// Validating
	if cart.IsEmpty() {
		return nil, apperror.NewBusinessRule(apperror.CodeEmptyCart, "cart has no lines")
	}

	payment, err := sales.ResolvePayment(cart.Total(), method, tendered)
	if err != nil {
		return nil, err
	}

	if err := f.revalidateStock(ctx, cart); err != nil {
		return nil, err
	}

	// Committing: the sale write is the point of no return.
	sale := sales.NewSale(cart, payment)
	if err := f.sales.Create(ctx, sale); err != nil {
		logger.Error(ctx, "sale commit failed", "cart_id", cart.ID, "error", err)
		return nil, apperror.NewPersistence("create sale", err)
	}

	result := &Result{State: StateCompleted, Sale: sale}

	f.reconcileStock(ctx, sale, result)

	invoice, err := f.generator.Issue(ctx, sale)
	if err != nil {
		logger.Error(ctx, "invoice issue failed", "sale_id", sale.ID, "error", err)
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("invoice was not issued for sale %s: %v", sale.ID, err))
	} else {
		result.Invoice = invoice
	}

	for _, h := range f.hooks {
		h(ctx, sale)
	}

	cart.Clear()

	logger.Info(ctx, "sale finalized",
		"sale_id", sale.ID,
		"total", sale.Total.Int64(),
		"lines", len(sale.Lines),
		"warnings", len(result.Warnings))
	return result, nil
}

// revalidateStock re-reads live stock for every product in the cart and
// collects all shortfalls before reporting, so the operator sees the whole
// conflict at once.
func (f *Finalizer) revalidateStock(ctx context.Context, cart *sales.Cart) error {
	var shortfalls []map[string]any

	for _, pr := range productRequests(cart) {
		available, err := f.products.StockOf(ctx, pr.productID)
		if err != nil {
			return apperror.NewPersistence("read stock", err)
		}
		if pr.quantity > available {
			shortfalls = append(shortfalls, map[string]any{
				"productId": pr.productID,
				"name":      pr.name,
				"requested": pr.quantity,
				"available": available,
			})
		}
	}

	if len(shortfalls) > 0 {
		return apperror.NewInventoryConflict(shortfalls)
	}
	return nil
}

// reconcileStock decrements stock per product. Failures do not undo the
// committed sale; each is recorded as a warning for manual correction.
func (f *Finalizer) reconcileStock(ctx context.Context, sale *sales.Sale, result *Result) {
	cartView := &sales.Cart{Lines: sale.Lines}
	for _, pr := range productRequests(cartView) {
		if err := f.products.DecrementStock(ctx, pr.productID, pr.quantity); err != nil {
			logger.Warn(ctx, "stock decrement failed",
				"sale_id", sale.ID, "product_id", pr.productID, "error", err)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("stock was not decremented for %s (-%d): %v", pr.name, pr.quantity, err))
		}
	}
}

type productRequest struct {
	productID string
	name      string
	quantity  int64
}

// productRequests folds cart lines into one request per product, keeping
// first-seen order.
func productRequests(cart *sales.Cart) []productRequest {
	index := make(map[string]int)
	var requests []productRequest
	for _, l := range cart.Lines {
		if i, ok := index[l.ProductID]; ok {
			requests[i].quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(requests)
		requests = append(requests, productRequest{productID: l.ProductID, name: l.Name, quantity: l.Quantity})
	}
	return requests
}
