package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"negocio/internal/core/apperror"
	"negocio/internal/domain/finance"
	"negocio/internal/infrastructure/http/v1/dto"
)

// FinanceHandler serves the income/expense ledger.
type FinanceHandler struct {
	*BaseHandler
	service *finance.Service
}

// NewFinanceHandler creates a finance handler.
func NewFinanceHandler(base *BaseHandler, service *finance.Service) *FinanceHandler {
	return &FinanceHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers ledger endpoints.
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/movements", h.List)
	rg.POST("/movements", h.Create)
	rg.DELETE("/movements/:id", h.Delete)
	rg.POST("/movements/bulk-delete", h.BulkDelete)
	rg.GET("/summary", h.Summary)
	rg.GET("/unimported-sales", h.UnimportedSales)
	rg.POST("/import-sales", h.ImportSales)
}

func (h *FinanceHandler) List(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

func (h *FinanceHandler) Summary(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	sum, err := h.service.Summarize(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, sum)
}

func (h *FinanceHandler) Create(c *gin.Context) {
	var req dto.MovementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	var m finance.Movement
	req.ToMovement(&m)
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			h.Error(c, apperror.NewValidation("date must be YYYY-MM-DD").WithDetail("field", "date"))
			return
		}
		m.Date = parsed
	}
	if err := h.service.Create(c.Request.Context(), &m); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, m.ID)
}

func (h *FinanceHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

func (h *FinanceHandler) BulkDelete(c *gin.Context) {
	var req dto.IDsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.service.DeleteMany(c.Request.Context(), req.IDs); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

func (h *FinanceHandler) UnimportedSales(c *gin.Context) {
	items, err := h.service.UnimportedSales(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

func (h *FinanceHandler) ImportSales(c *gin.Context) {
	var req dto.IDsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	created, err := h.service.ImportSales(c.Request.Context(), req.IDs)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(created))
}

func (h *FinanceHandler) parseFilter(c *gin.Context) (finance.Filter, bool) {
	filter := finance.Filter{
		Type:     finance.MovementType(c.Query("type")),
		Category: c.Query("category"),
	}
	if filter.Type != "" && filter.Type != finance.MovementIncome && filter.Type != finance.MovementExpense {
		h.Error(c, apperror.NewValidation("type must be income or expense").WithDetail("field", "type"))
		return finance.Filter{}, false
	}

	from, ok := parseDayQuery(c, "from", false)
	if !ok {
		h.Error(c, apperror.NewValidation("from must be YYYY-MM-DD").WithDetail("field", "from"))
		return finance.Filter{}, false
	}
	to, ok := parseDayQuery(c, "to", true)
	if !ok {
		h.Error(c, apperror.NewValidation("to must be YYYY-MM-DD").WithDetail("field", "to"))
		return finance.Filter{}, false
	}
	filter.From, filter.To = from, to
	return filter, true
}
