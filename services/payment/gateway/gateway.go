// Package gateway implements the payment-provider capability consumed by the
// payment service. Variants are selected by method name; the environment
// (mock, test, production) is fixed at construction so saga logic never
// branches on it.
package gateway

import (
	"context"
	"fmt"
	"strings"
)

// Environment selects how a gateway talks to its provider.
type Environment string

const (
	EnvMock       Environment = "mock" // non-networked stand-in with synthetic ids
	EnvTest       Environment = "test"
	EnvProduction Environment = "production"
)

// ParseEnvironment normalizes a configuration string, defaulting to mock.
func ParseEnvironment(s string) Environment {
	switch Environment(strings.ToLower(s)) {
	case EnvTest:
		return EnvTest
	case EnvProduction:
		return EnvProduction
	default:
		return EnvMock
	}
}

// CreateResult is the provider's answer to a payment creation.
type CreateResult struct {
	ExternalPaymentID string `json:"external_payment_id"`
	PaymentURL        string `json:"payment_url"`
	Status            string `json:"status"`
}

// WebhookResult is a gateway-specific webhook payload normalized to the
// canonical shape.
type WebhookResult struct {
	ExternalID string                 `json:"external_id"`
	Status     string                 `json:"status"`
	Amount     float64                `json:"amount"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// Gateway is one payment provider integration.
type Gateway interface {
	CreatePayment(ctx context.Context, amount float64, bookingID, returnURL string) (CreateResult, error)
	ProcessWebhook(payload map[string]interface{}) (WebhookResult, error)
	VerifyWebhook(payload map[string]interface{}, signature string) bool
}

// Error wraps an upstream provider failure. Surfaced to the caller, never
// silently swallowed.
type Error struct {
	Gateway string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Gateway, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Config carries provider credentials threaded in from configuration.
type Config struct {
	YooKassaShopID    string
	YooKassaSecretKey string
	StripeKey         string
}

// ForMethod returns the gateway variant for a payment method name.
func ForMethod(method string, env Environment, cfg Config) (Gateway, error) {
	switch strings.ToLower(method) {
	case "yookassa":
		return NewYooKassa(env, cfg.YooKassaShopID, cfg.YooKassaSecretKey), nil
	case "sberpay":
		return NewSberPay(env), nil
	case "tinkoff":
		return NewTinkoff(env), nil
	case "stripe":
		return NewStripe(env, cfg.StripeKey), nil
	default:
		return nil, fmt.Errorf("unknown payment gateway: %s", method)
	}
}
