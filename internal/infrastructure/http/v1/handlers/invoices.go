package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"negocio/internal/domain/invoices"
	"negocio/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler serves issued invoices and their PDF rendition.
type InvoiceHandler struct {
	*BaseHandler
	repo     invoices.Repository
	renderer *invoices.Renderer
}

// NewInvoiceHandler creates an invoice handler.
func NewInvoiceHandler(base *BaseHandler, repo invoices.Repository, renderer *invoices.Renderer) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: base, repo: repo, renderer: renderer}
}

// RegisterRoutes registers invoice endpoints. Invoices are immutable:
// read-only over HTTP, created only by the finalizer.
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/pdf", h.PDF)
	rg.GET("/by-sale/:saleId", h.GetBySale)
}

func (h *InvoiceHandler) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context(), h.ParseIntQuery(c, "limit", 0))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	inv, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, inv)
}

func (h *InvoiceHandler) GetBySale(c *gin.Context) {
	inv, err := h.repo.GetBySaleID(c.Request.Context(), c.Param("saleId"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, inv)
}

// PDF renders the invoice for printing. Re-rendering a stored invoice is
// the supported reprint path.
func (h *InvoiceHandler) PDF(c *gin.Context) {
	inv, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	body, err := h.renderer.Render(inv)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", inv.Number+".pdf"))
	c.Data(http.StatusOK, "application/pdf", body)
}
