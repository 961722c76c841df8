package payment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"photostudio/broker"
	"photostudio/database/repository"
	"photostudio/models"
	"photostudio/services/payment/gateway"
	"photostudio/utils"
)

// SourceService is the name stamped on events published by this service.
const SourceService = "payment"

// PaymentService is the payment state machine's public contract.
type PaymentService interface {
	Create(ctx context.Context, req models.PaymentCreateRequest) (*models.Payment, error)
	Get(ctx context.Context, paymentID string) (*models.Payment, error)
	ProcessWebhook(ctx context.Context, gatewayName string, payload map[string]interface{}, signature string) error
	Refund(ctx context.Context, paymentID string, req models.RefundRequest) (*models.Refund, error)
}

// BookingDirectory is the slice of the booking service's contract this
// service needs: reading a booking's amount and confirming on payment
// success. Both are synchronous direct calls, never events.
type BookingDirectory interface {
	Get(ctx context.Context, bookingID string) (*models.Booking, error)
	Confirm(ctx context.Context, bookingID string) (*models.Booking, error)
}

// GatewayFactory resolves a payment method name to its gateway variant.
type GatewayFactory func(method string) (gateway.Gateway, error)

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Repo     repository.PaymentRepository
	Bookings BookingDirectory
	Gateways GatewayFactory
	Env      gateway.Environment
	Events   broker.Publisher
	Logger   *zap.Logger

	// CallTimeout bounds direct calls into the booking service.
	CallTimeout time.Duration

	locks utils.KeyMutex
}

var _ PaymentService = (*DefaultPaymentService)(nil)

func (s *DefaultPaymentService) callTimeout() time.Duration {
	if s.CallTimeout > 0 {
		return s.CallTimeout
	}
	return 5 * time.Second
}
