package sales

import (
	"sync"

	"negocio/internal/core/apperror"
	"negocio/internal/core/id"
	"negocio/internal/core/types"
	"negocio/internal/domain/catalogs/product"
)

// Cart is one in-progress sale composition. It is owned by a single
// operator for the duration of the sale and discarded on cancel or after a
// successful finalize.
//
// The stock check here is the soft half of a two-phase check: it gives the
// operator immediate feedback against the catalog as loaded, while the
// finalizer re-checks against freshly-read stock at commit time.
type Cart struct {
	ID           string `json:"id"`
	CustomerName string `json:"customerName,omitempty"`
	Lines        []Line `json:"lines"`
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{ID: id.New(), Lines: make([]Line, 0)}
}

// QuantityFor sums the quantity already carted for a product. A product may
// appear on multiple lines (different noted batches); availability checks
// must see them as one reservation.
func (c *Cart) QuantityFor(productID string) int64 {
	var total int64
	for _, l := range c.Lines {
		if l.ProductID == productID {
			total += l.Quantity
		}
	}
	return total
}

// AddLine appends a line for p. unitPrice may override the catalog price;
// pass p.UnitPrice to keep it. Fails with INSUFFICIENT_STOCK when the new
// quantity plus what the cart already reserves exceeds p.Stock; the cart is
// left unchanged. Stock itself is not mutated here - that happens only at
// finalize commit.
func (c *Cart) AddLine(p *product.Product, quantity int64, unitPrice types.MinorUnits, note string) error {
	if quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if unitPrice.IsNegative() {
		return apperror.NewValidation("unit price must not be negative").
			WithDetail("field", "unitPrice")
	}

	reserved := c.QuantityFor(p.ID)
	if quantity+reserved > p.Stock {
		return apperror.NewInsufficientStock(p.Name, quantity+reserved, p.Stock)
	}

	c.Lines = append(c.Lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Code:      p.Code,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Subtotal:  unitPrice * types.MinorUnits(quantity),
		Note:      note,
	})
	return nil
}

// RemoveLine removes the line at index. Out-of-range indexes are a no-op.
func (c *Cart) RemoveLine(index int) {
	if index < 0 || index >= len(c.Lines) {
		return
	}
	c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)
}

// Clear empties the cart and resets the customer name.
func (c *Cart) Clear() {
	c.Lines = c.Lines[:0]
	c.CustomerName = ""
}

// Total sums line subtotals. Pure; no side effects.
func (c *Cart) Total() types.MinorUnits {
	var total types.MinorUnits
	for _, l := range c.Lines {
		total += l.Subtotal
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// Registry holds the server-side carts of active operators, keyed by cart
// id. Carts are in-memory only; a cancelled or finalized cart is removed
// with no persistence side effects.
type Registry struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewRegistry creates an empty cart registry.
func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Cart)}
}

// Create registers a new empty cart.
func (r *Registry) Create() *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart := NewCart()
	r.carts[cart.ID] = cart
	return cart
}

// Get returns the cart with the given id.
func (r *Registry) Get(cartID string) (*Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[cartID]
	if !ok {
		return nil, apperror.NewNotFound("cart", cartID)
	}
	return cart, nil
}

// Remove drops a cart (cancel, or cleanup after finalize).
func (r *Registry) Remove(cartID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, cartID)
}
