package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"photostudio/database/repository"
	"photostudio/services/integration"
	"photostudio/services/notification"
)

// ConsumerHandler exposes the read surfaces of the in-process consumers plus
// the hall catalog.
type ConsumerHandler struct {
	Notifications notification.NotificationService
	Integration   integration.IntegrationService
	Halls         repository.HallRepository
}

// Notifications handles GET /api/notifications.
func (h *ConsumerHandler) ListNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items := h.Notifications.Recent(limit)
	c.JSON(http.StatusOK, gin.H{"notifications": items, "total": len(items)})
}

// IntegrationEvents handles GET /api/integration/events.
func (h *ConsumerHandler) IntegrationEvents(c *gin.Context) {
	events := h.Integration.Events()
	c.JSON(http.StatusOK, gin.H{"events": events, "total": len(events)})
}

// ListHalls handles GET /api/halls.
func (h *ConsumerHandler) ListHalls(c *gin.Context) {
	halls, err := h.Halls.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"halls": halls})
}
