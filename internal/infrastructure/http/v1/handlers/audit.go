package handlers

import (
	"github.com/gin-gonic/gin"

	"negocio/internal/domain/audit"
	"negocio/internal/infrastructure/http/v1/dto"
)

// AuditHandler serves the audit trail.
type AuditHandler struct {
	*BaseHandler
	service *audit.Service
}

// NewAuditHandler creates an audit handler.
func NewAuditHandler(base *BaseHandler, service *audit.Service) *AuditHandler {
	return &AuditHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers audit endpoints.
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:entityType/:entityId", h.History)
}

func (h *AuditHandler) History(c *gin.Context) {
	entries, err := h.service.History(c.Request.Context(),
		c.Param("entityType"), c.Param("entityId"), h.ParseIntQuery(c, "limit", 50))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(entries))
}
