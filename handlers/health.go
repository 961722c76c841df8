package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photostudio/broker"
	"photostudio/utils"
)

// HealthHandler serves the read-only health/introspection surface.
type HealthHandler struct {
	Broker *broker.Broker
}

// NewHealthHandler builds a HealthHandler.
func NewHealthHandler(b *broker.Broker) *HealthHandler {
	return &HealthHandler{Broker: b}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"service":        "photostudio",
		"queues":         h.Broker.QueueDepths(),
		"total_messages": h.Broker.PendingTotal(),
		"dependencies":   utils.GetHealthStatus(),
	})
}
