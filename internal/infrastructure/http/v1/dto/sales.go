package dto

// --- Carts ---

// AddLineRequest appends a line to a cart. UnitPrice, when present,
// overrides the catalog price for this line.
type AddLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
	UnitPrice *int64 `json:"unitPrice" binding:"omitempty,min=0"`
	Note      string `json:"note"`
}

// SetCustomerRequest sets the free-text customer name on a cart.
type SetCustomerRequest struct {
	CustomerName string `json:"customerName"`
}

// FinalizeRequest commits a cart. Tendered is ignored for transfers.
type FinalizeRequest struct {
	Method   string `json:"method" binding:"required,oneof=cash transfer"`
	Tendered int64  `json:"tendered" binding:"min=0"`
}
