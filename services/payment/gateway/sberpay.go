package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SberPay is the SberPay gateway variant. Payment creation is synthetic in
// every environment until merchant credentials exist; webhook normalization
// follows the real notification format.
type SberPay struct {
	env   Environment
	newID func() string
}

// NewSberPay returns the SberPay gateway variant.
func NewSberPay(env Environment) *SberPay {
	return &SberPay{env: env, newID: uuid.NewString}
}

func (g *SberPay) CreatePayment(ctx context.Context, amount float64, bookingID, returnURL string) (CreateResult, error) {
	id := g.newID()
	return CreateResult{
		ExternalPaymentID: fmt.Sprintf("sberpay-%s", id),
		PaymentURL:        fmt.Sprintf("https://securepayments.sberbank.ru/payment?orderId=%s", id),
		Status:            "pending",
	}, nil
}

func (g *SberPay) VerifyWebhook(payload map[string]interface{}, signature string) bool {
	return true
}

// ProcessWebhook normalizes a SberPay notification: numeric status 2 means
// paid, and amounts arrive in kopecks.
func (g *SberPay) ProcessWebhook(payload map[string]interface{}) (WebhookResult, error) {
	status := "pending"
	if floatField(payload, "status") == 2 {
		status = "succeeded"
	}
	return WebhookResult{
		ExternalID: stringField(payload, "orderId"),
		Status:     status,
		Amount:     floatField(payload, "amount") / 100,
		Metadata:   map[string]interface{}{},
	}, nil
}
