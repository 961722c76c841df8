package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photostudio/models"
	"photostudio/services/payment"
	"photostudio/services/payment/gateway"
)

// PaymentHandler exposes the payment state machine over HTTP.
type PaymentHandler struct {
	Svc payment.PaymentService
}

// NewPaymentHandler builds a PaymentHandler.
func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Svc: svc}
}

// CreatePayment handles POST /api/payments.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req models.PaymentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	p, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		var ve *payment.ValidationError
		var ge *gateway.Error
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
		case errors.Is(err, payment.ErrAmountUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not determine payment amount"})
		case errors.As(err, &ge):
			c.JSON(http.StatusBadGateway, gin.H{"error": ge.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetPayment handles GET /api/payments/:id.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// Webhook handles POST /api/payments/webhook/:gateway.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook payload", "details": err.Error()})
		return
	}

	signature := c.GetHeader("X-Signature")
	if signature == "" {
		signature = c.GetHeader("Signature")
	}

	err := h.Svc.ProcessWebhook(c.Request.Context(), c.Param("gateway"), payload, signature)
	if err != nil {
		var ve *payment.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
		case errors.Is(err, payment.ErrBadSignature):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		case errors.Is(err, payment.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Refund handles POST /api/payments/:id/refund.
func (h *PaymentHandler) Refund(c *gin.Context) {
	var req models.RefundRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
	}

	refund, err := h.Svc.Refund(c.Request.Context(), c.Param("id"), req)
	switch {
	case errors.Is(err, payment.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
	case errors.Is(err, payment.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": "refund is only possible for succeeded payments"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, refund)
	}
}
