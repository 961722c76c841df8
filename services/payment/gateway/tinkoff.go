package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Tinkoff is the Tinkoff Kassa gateway variant. Like SberPay, creation is
// synthetic; webhook normalization follows the real notification format.
type Tinkoff struct {
	env   Environment
	newID func() string
}

// NewTinkoff returns the Tinkoff gateway variant.
func NewTinkoff(env Environment) *Tinkoff {
	return &Tinkoff{env: env, newID: uuid.NewString}
}

func (g *Tinkoff) CreatePayment(ctx context.Context, amount float64, bookingID, returnURL string) (CreateResult, error) {
	id := g.newID()
	return CreateResult{
		ExternalPaymentID: fmt.Sprintf("tinkoff-%s", id),
		PaymentURL:        fmt.Sprintf("https://securepay.tinkoff.ru/payments?orderId=%s", id),
		Status:            "pending",
	}, nil
}

func (g *Tinkoff) VerifyWebhook(payload map[string]interface{}, signature string) bool {
	return true
}

// ProcessWebhook normalizes a Tinkoff notification: Status CONFIRMED means
// paid, Amount is in kopecks.
func (g *Tinkoff) ProcessWebhook(payload map[string]interface{}) (WebhookResult, error) {
	status := "pending"
	if stringField(payload, "Status") == "CONFIRMED" {
		status = "succeeded"
	}
	return WebhookResult{
		ExternalID: stringField(payload, "PaymentId"),
		Status:     status,
		Amount:     floatField(payload, "Amount") / 100,
		Metadata:   map[string]interface{}{},
	}, nil
}
