package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"negocio/internal/core/apperror"
	"negocio/internal/domain/sales"
	"negocio/internal/infrastructure/http/v1/dto"
)

// SalesHandler serves the committed sale ledger.
type SalesHandler struct {
	*BaseHandler
	repo sales.Repository
}

// NewSalesHandler creates a sales handler.
func NewSalesHandler(base *BaseHandler, repo sales.Repository) *SalesHandler {
	return &SalesHandler{BaseHandler: base, repo: repo}
}

// RegisterRoutes registers sale ledger endpoints. The ledger is read-only
// over HTTP; sales are created through cart finalization only.
func (h *SalesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
}

func (h *SalesHandler) List(c *gin.Context) {
	filter := sales.ListFilter{
		Search: c.Query("search"),
		Limit:  h.ParseIntQuery(c, "limit", 0),
	}
	if day := c.Query("date"); day != "" {
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			h.Error(c, apperror.NewValidation("date must be YYYY-MM-DD").WithDetail("field", "date"))
			return
		}
		filter.Date = &parsed
	}

	items, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

func (h *SalesHandler) Get(c *gin.Context) {
	sale, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if !apperror.IsAppError(err) {
			err = apperror.NewNotFound("sale", c.Param("id")).WithCause(err)
		}
		h.Error(c, err)
		return
	}
	h.OK(c, sale)
}
