package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photostudio/broker"
)

// queuePeekLimit bounds how many pending messages the introspection endpoint
// exposes per queue.
const queuePeekLimit = 10

// BrokerHandler exposes the broker's publish/subscribe/introspection surface.
type BrokerHandler struct {
	Broker *broker.Broker
}

// NewBrokerHandler builds a BrokerHandler.
func NewBrokerHandler(b *broker.Broker) *BrokerHandler {
	return &BrokerHandler{Broker: b}
}

// Publish handles POST /broker/publish. Publishing always succeeds; the
// response carries the message id and queue depth for observability.
func (h *BrokerHandler) Publish(c *gin.Context) {
	var body struct {
		EventType     string                 `json:"event_type"`
		SourceService string                 `json:"source_service"`
		Payload       map[string]interface{} `json:"payload"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if body.EventType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_type is required"})
		return
	}
	source := body.SourceService
	if source == "" {
		source = "unknown"
	}

	receipt := h.Broker.Publish(body.EventType, source, body.Payload)
	c.JSON(http.StatusOK, gin.H{
		"status":     "published",
		"message_id": receipt.MessageID,
		"queue_size": receipt.QueueDepth,
	})
}

// Queues handles GET /broker/queues.
func (h *BrokerHandler) Queues(c *gin.Context) {
	c.JSON(http.StatusOK, h.Broker.QueueSnapshot(queuePeekLimit))
}

// Subscribe handles POST /broker/subscribe, the runtime subscription
// endpoint. Duplicate registrations are idempotent.
func (h *BrokerHandler) Subscribe(c *gin.Context) {
	var body struct {
		EventType   string `json:"event_type"`
		Subscriber  string `json:"subscriber"`
		CallbackURL string `json:"callback_url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if body.EventType == "" || body.Subscriber == "" || body.CallbackURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_type, subscriber, callback_url are required"})
		return
	}

	h.Broker.Subscribe(body.EventType, body.Subscriber, body.CallbackURL)
	c.JSON(http.StatusOK, gin.H{"status": "subscribed"})
}
