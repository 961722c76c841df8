package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// Stripe is the card-payment gateway variant, built on Stripe Checkout. Mock
// and test environments return synthetic sessions so the saga can run without
// network access.
type Stripe struct {
	env   Environment
	key   string
	newID func() string
}

// NewStripe returns the Stripe gateway variant.
func NewStripe(env Environment, key string) *Stripe {
	return &Stripe{env: env, key: key, newID: uuid.NewString}
}

func (g *Stripe) CreatePayment(ctx context.Context, amount float64, bookingID, returnURL string) (CreateResult, error) {
	if g.env != EnvProduction {
		id := g.newID()
		return CreateResult{
			ExternalPaymentID: fmt.Sprintf("cs_test_%s", id),
			PaymentURL:        fmt.Sprintf("https://checkout.stripe.com/c/pay/%s", id),
			Status:            "pending",
		}, nil
	}

	stripe.Key = g.key
	if returnURL == "" {
		returnURL = "https://example.com/return"
	}
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(returnURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyRUB)),
					UnitAmount: stripe.Int64(int64(amount * 100)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Photo studio booking #%s", bookingID)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("booking_id", bookingID)

	sess, err := session.New(params)
	if err != nil {
		return CreateResult{}, &Error{Gateway: "stripe", Err: err}
	}
	return CreateResult{
		ExternalPaymentID: sess.ID,
		PaymentURL:        sess.URL,
		Status:            "pending",
	}, nil
}

func (g *Stripe) VerifyWebhook(payload map[string]interface{}, signature string) bool {
	// Signature verification needs the webhook signing secret; accepted as-is
	// until that secret is part of the deployment.
	return true
}

// ProcessWebhook normalizes a checkout.session event: payment_status "paid"
// means succeeded, amount_total arrives in the smallest currency unit.
func (g *Stripe) ProcessWebhook(payload map[string]interface{}) (WebhookResult, error) {
	data, _ := payload["data"].(map[string]interface{})
	object, _ := data["object"].(map[string]interface{})

	status := "pending"
	switch stringField(object, "payment_status") {
	case "paid":
		status = "succeeded"
	case "unpaid":
		status = "pending"
	}
	if stringField(payload, "type") == "checkout.session.expired" {
		status = "canceled"
	}

	metadata := map[string]interface{}{}
	if md, ok := object["metadata"].(map[string]interface{}); ok {
		metadata = md
	}
	return WebhookResult{
		ExternalID: stringField(object, "id"),
		Status:     status,
		Amount:     floatField(object, "amount_total") / 100,
		Metadata:   metadata,
	}, nil
}
