package handlers

import (
	"github.com/gin-gonic/gin"

	"negocio/internal/domain/alerts"
	"negocio/internal/infrastructure/http/v1/dto"
)

// AlertsHandler serves stock alerts.
type AlertsHandler struct {
	*BaseHandler
	service *alerts.Service
}

// NewAlertsHandler creates an alerts handler.
func NewAlertsHandler(base *BaseHandler, service *alerts.Service) *AlertsHandler {
	return &AlertsHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers alert endpoints.
func (h *AlertsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/low-stock", h.LowStock)
	rg.GET("/rule", h.Rule)
}

func (h *AlertsHandler) LowStock(c *gin.Context) {
	items, err := h.service.LowStock(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

func (h *AlertsHandler) Rule(c *gin.Context) {
	h.OK(c, gin.H{"rule": h.service.Rule()})
}
