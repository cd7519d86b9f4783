package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"negocio/internal/core/apperror"
	"negocio/internal/domain/payments"
	"negocio/internal/infrastructure/http/v1/dto"
)

// PaymentsHandler serves the client payment register.
type PaymentsHandler struct {
	*BaseHandler
	service *payments.Service
}

// NewPaymentsHandler creates a payments handler.
func NewPaymentsHandler(base *BaseHandler, service *payments.Service) *PaymentsHandler {
	return &PaymentsHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers payment endpoints.
func (h *PaymentsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *PaymentsHandler) List(c *gin.Context) {
	filter := payments.Filter{Search: c.Query("search")}

	from, ok := parseDayQuery(c, "from", false)
	if !ok {
		h.Error(c, apperror.NewValidation("from must be YYYY-MM-DD").WithDetail("field", "from"))
		return
	}
	to, ok := parseDayQuery(c, "to", true)
	if !ok {
		h.Error(c, apperror.NewValidation("to must be YYYY-MM-DD").WithDetail("field", "to"))
		return
	}
	filter.From, filter.To = from, to

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

func (h *PaymentsHandler) Get(c *gin.Context) {
	p, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

func (h *PaymentsHandler) Create(c *gin.Context) {
	var req dto.PaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	var p payments.Payment
	req.ToPayment(&p)
	if err := h.service.Create(c.Request.Context(), &p); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, p.ID)
}

func (h *PaymentsHandler) Update(c *gin.Context) {
	var req dto.PaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ToPayment(p)
	if err := h.service.Update(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

func (h *PaymentsHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// parseDayQuery reads a YYYY-MM-DD query parameter. With endOfDay the
// returned instant is the last second of that day, so inclusive range
// filters cover the whole day.
func parseDayQuery(c *gin.Context, name string, endOfDay bool) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, false
	}
	if endOfDay {
		parsed = parsed.Add(24*time.Hour - time.Second)
	}
	return &parsed, true
}
