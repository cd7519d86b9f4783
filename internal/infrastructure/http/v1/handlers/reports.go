package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"negocio/internal/core/apperror"
	"negocio/internal/domain/reports"
	"negocio/internal/infrastructure/http/v1/dto"
)

// ReportsHandler serves sales statistics.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers report endpoints.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/summary", h.Summary)
	rg.GET("/daily", h.Daily)
	rg.GET("/top-products", h.TopProducts)
}

func (h *ReportsHandler) Summary(c *gin.Context) {
	from, to, ok := h.period(c)
	if !ok {
		return
	}
	summary, err := h.service.Summary(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}

func (h *ReportsHandler) Daily(c *gin.Context) {
	from, to, ok := h.period(c)
	if !ok {
		return
	}
	totals, err := h.service.DailyTotals(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(totals))
}

func (h *ReportsHandler) TopProducts(c *gin.Context) {
	from, to, ok := h.period(c)
	if !ok {
		return
	}
	top, err := h.service.TopProducts(c.Request.Context(), from, to, h.ParseIntQuery(c, "limit", 10))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(top))
}

// period parses optional from/to query params (YYYY-MM-DD). The to bound
// is exclusive at the start of the next day.
func (h *ReportsHandler) period(c *gin.Context) (time.Time, time.Time, bool) {
	var from, to time.Time

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			h.Error(c, apperror.NewValidation("from must be YYYY-MM-DD").WithDetail("field", "from"))
			return from, to, false
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			h.Error(c, apperror.NewValidation("to must be YYYY-MM-DD").WithDetail("field", "to"))
			return from, to, false
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, true
}
