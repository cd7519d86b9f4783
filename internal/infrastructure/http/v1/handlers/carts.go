package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"negocio/internal/core/apperror"
	"negocio/internal/core/types"
	"negocio/internal/domain/catalogs/product"
	"negocio/internal/domain/checkout"
	"negocio/internal/domain/sales"
	"negocio/internal/infrastructure/http/v1/dto"
)

// CartHandler serves cart composition and finalization.
type CartHandler struct {
	*BaseHandler
	registry  *sales.Registry
	products  *product.Service
	finalizer *checkout.Finalizer
}

// NewCartHandler creates a cart handler.
func NewCartHandler(base *BaseHandler, registry *sales.Registry, products *product.Service, finalizer *checkout.Finalizer) *CartHandler {
	return &CartHandler{BaseHandler: base, registry: registry, products: products, finalizer: finalizer}
}

// RegisterRoutes registers cart endpoints.
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.DELETE("/:id", h.Cancel)
	rg.PUT("/:id/customer", h.SetCustomer)
	rg.POST("/:id/lines", h.AddLine)
	rg.DELETE("/:id/lines/:index", h.RemoveLine)
	rg.POST("/:id/finalize", h.Finalize)
}

// Create starts an empty cart.
func (h *CartHandler) Create(c *gin.Context) {
	cart := h.registry.Create()
	h.OK(c, cart)
}

func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.registry.Get(c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cart)
}

// Cancel discards a cart with no persistence side effects.
func (h *CartHandler) Cancel(c *gin.Context) {
	h.registry.Remove(c.Param("id"))
	h.NoContent(c)
}

func (h *CartHandler) SetCustomer(c *gin.Context) {
	var req dto.SetCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cart, err := h.registry.Get(c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	cart.CustomerName = req.CustomerName
	h.OK(c, cart)
}

// AddLine appends a product line. The catalog price is used unless the
// request overrides it.
func (h *CartHandler) AddLine(c *gin.Context) {
	var req dto.AddLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cart, err := h.registry.Get(c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	p, err := h.products.GetByID(c.Request.Context(), req.ProductID)
	if err != nil {
		h.Error(c, err)
		return
	}

	unitPrice := p.UnitPrice
	if req.UnitPrice != nil {
		unitPrice = types.MinorUnits(*req.UnitPrice)
	}

	if err := cart.AddLine(p, req.Quantity, unitPrice, req.Note); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cart)
}

// RemoveLine removes a line by position. Out-of-range indexes are a no-op.
func (h *CartHandler) RemoveLine(c *gin.Context) {
	cart, err := h.registry.Get(c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.Error(c, apperror.NewValidation("index must be an integer").WithDetail("field", "index"))
		return
	}
	cart.RemoveLine(index)
	h.OK(c, cart)
}

// Finalize commits the cart: sale, stock reconciliation, invoice.
func (h *CartHandler) Finalize(c *gin.Context) {
	var req dto.FinalizeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cart, err := h.registry.Get(c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.finalizer.Finalize(c.Request.Context(),
		cart, sales.PaymentMethod(req.Method), types.MinorUnits(req.Tendered))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.registry.Remove(cart.ID)
	h.OK(c, result)
}
