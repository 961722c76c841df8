package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"photostudio/models"
	"photostudio/services/payment/gateway"
)

// Create starts a payment for a booking. When no amount is given it is
// resolved through the booking service's read contract; a missing or
// non-positive amount fails with ErrAmountUnavailable. Gateway failures
// surface to the caller.
func (s *DefaultPaymentService) Create(ctx context.Context, req models.PaymentCreateRequest) (*models.Payment, error) {
	if req.BookingID == "" {
		return nil, NewValidationError("booking_id", "required")
	}

	amount, err := s.resolveAmount(ctx, req)
	if err != nil {
		return nil, err
	}

	method := req.PaymentMethod
	if method == "" {
		method = models.PaymentMethodYooKassa
	}
	gw, err := s.Gateways(method)
	if err != nil {
		return nil, NewValidationError("payment_method", err.Error())
	}

	result, err := gw.CreatePayment(ctx, amount, req.BookingID, req.ReturnURL)
	if err != nil {
		return nil, err
	}

	p := &models.Payment{
		PaymentID:         uuid.New().String(),
		BookingID:         req.BookingID,
		Amount:            amount,
		PaymentMethod:     method,
		Status:            models.PaymentStatusPending,
		ExternalPaymentID: result.ExternalPaymentID,
		PaymentURL:        result.PaymentURL,
		CreatedAt:         time.Now(),
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("store payment: %w", err)
	}

	s.Logger.Info("payment created",
		zap.String("payment_id", p.PaymentID),
		zap.String("booking_id", p.BookingID),
		zap.String("method", method),
		zap.Float64("amount", amount),
	)
	return p, nil
}

// Get returns the payment or ErrNotFound.
func (s *DefaultPaymentService) Get(ctx context.Context, paymentID string) (*models.Payment, error) {
	p, err := s.Repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// ProcessWebhook normalizes a gateway notification, transitions the matching
// payment and drives the saga forward. A repeated succeeded webhook updates
// nothing: the transition plus the downstream confirm call fire only when the
// new status is succeeded AND the previous one was not.
func (s *DefaultPaymentService) ProcessWebhook(ctx context.Context, gatewayName string, payload map[string]interface{}, signature string) error {
	gw, err := s.Gateways(gatewayName)
	if err != nil {
		return NewValidationError("gateway", err.Error())
	}

	if s.Env == gateway.EnvProduction && signature != "" {
		if !gw.VerifyWebhook(payload, signature) {
			return ErrBadSignature
		}
	}

	normalized, err := gw.ProcessWebhook(payload)
	if err != nil {
		return &gateway.Error{Gateway: gatewayName, Err: err}
	}

	mapped := mapGatewayStatus(normalized.Status)

	stored, err := s.Repo.GetByExternalID(ctx, normalized.ExternalID)
	if err != nil {
		return ErrNotFound
	}

	s.locks.Lock(stored.PaymentID)
	defer s.locks.Unlock(stored.PaymentID)

	// Re-read under the lock so the idempotency guard sees a consistent
	// prior state when webhooks race.
	p, err := s.Repo.GetByID(ctx, stored.PaymentID)
	if err != nil {
		return ErrNotFound
	}
	oldStatus := p.Status

	if mapped == models.PaymentStatusPending {
		s.Logger.Info("webhook left payment pending",
			zap.String("payment_id", p.PaymentID),
			zap.String("gateway_status", normalized.Status),
		)
		return nil
	}

	now := time.Now()
	p.Status = mapped
	p.UpdatedAt = &now
	if err := s.Repo.Update(ctx, p); err != nil {
		return fmt.Errorf("update payment: %w", err)
	}

	switch {
	case mapped == models.PaymentStatusSucceeded && oldStatus != models.PaymentStatusSucceeded:
		s.confirmBooking(ctx, p.BookingID)
		s.Events.Publish(models.EventPaymentSucceeded, SourceService, map[string]interface{}{
			"payment":    p,
			"booking_id": p.BookingID,
		})
		s.Logger.Info("payment succeeded",
			zap.String("payment_id", p.PaymentID),
			zap.String("booking_id", p.BookingID),
		)
	case mapped == models.PaymentStatusFailed:
		s.Events.Publish(models.EventPaymentFailed, SourceService, map[string]interface{}{
			"payment_id": p.PaymentID,
			"booking_id": p.BookingID,
		})
		s.Logger.Info("payment failed",
			zap.String("payment_id", p.PaymentID),
			zap.String("booking_id", p.BookingID),
		)
	}
	return nil
}

// Refund reverses a succeeded payment. The amount defaults to the full
// original amount.
func (s *DefaultPaymentService) Refund(ctx context.Context, paymentID string, req models.RefundRequest) (*models.Refund, error) {
	s.locks.Lock(paymentID)
	defer s.locks.Unlock(paymentID)

	p, err := s.Repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, ErrNotFound
	}
	if p.Status != models.PaymentStatusSucceeded {
		return nil, ErrInvalidState
	}

	amount := p.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}

	now := time.Now()
	p.Status = models.PaymentStatusRefunded
	p.UpdatedAt = &now
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	s.Logger.Info("payment refunded",
		zap.String("payment_id", paymentID),
		zap.Float64("amount", amount),
		zap.String("reason", req.Reason),
	)

	return &models.Refund{
		RefundID:  uuid.New().String(),
		PaymentID: paymentID,
		Amount:    amount,
		Status:    "succeeded",
		Timestamp: now,
	}, nil
}

// confirmBooking issues the direct synchronous confirm call. Its failure is
// logged but never rolls back the local transition: the money is captured
// either way, and reporting otherwise would misrepresent it.
func (s *DefaultPaymentService) confirmBooking(ctx context.Context, bookingID string) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout())
	defer cancel()
	if _, err := s.Bookings.Confirm(callCtx, bookingID); err != nil {
		s.Logger.Warn("could not confirm booking after successful payment",
			zap.String("booking_id", bookingID),
			zap.Error(err),
		)
	}
}

func (s *DefaultPaymentService) resolveAmount(ctx context.Context, req models.PaymentCreateRequest) (float64, error) {
	if req.Amount != nil {
		return *req.Amount, nil
	}
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout())
	defer cancel()
	b, err := s.Bookings.Get(callCtx, req.BookingID)
	if err != nil {
		s.Logger.Warn("could not fetch booking for amount lookup",
			zap.String("booking_id", req.BookingID),
			zap.Error(err),
		)
		return 0, ErrAmountUnavailable
	}
	if b.TotalAmount <= 0 {
		return 0, ErrAmountUnavailable
	}
	return b.TotalAmount, nil
}

// mapGatewayStatus folds the gateway status vocabulary into the canonical
// set. Unrecognized values map to pending, never to an error: an unknown
// intermediate state must not spuriously fail a payment.
func mapGatewayStatus(status string) string {
	switch strings.ToLower(status) {
	case "succeeded":
		return models.PaymentStatusSucceeded
	case "pending":
		return models.PaymentStatusPending
	case "canceled", "failed":
		return models.PaymentStatusFailed
	default:
		return models.PaymentStatusPending
	}
}
