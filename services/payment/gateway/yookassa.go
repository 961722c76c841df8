package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const yooKassaAPIURL = "https://api.yookassa.ru/v3/payments"

// YooKassa integrates with the YooKassa checkout API. In mock mode it returns
// synthetic ids; in test mode a failing API call falls back to a synthetic
// result instead of surfacing the error.
type YooKassa struct {
	env       Environment
	shopID    string
	secretKey string
	client    *http.Client

	// newID is swappable in tests for deterministic ids.
	newID func() string
}

// NewYooKassa returns the YooKassa gateway variant.
func NewYooKassa(env Environment, shopID, secretKey string) *YooKassa {
	return &YooKassa{
		env:       env,
		shopID:    shopID,
		secretKey: secretKey,
		client:    &http.Client{Timeout: 10 * time.Second},
		newID:     uuid.NewString,
	}
}

func (g *YooKassa) CreatePayment(ctx context.Context, amount float64, bookingID, returnURL string) (CreateResult, error) {
	if g.env == EnvMock {
		return g.synthetic("yookassa"), nil
	}

	result, err := g.createRemote(ctx, amount, bookingID, returnURL)
	if err != nil {
		if g.env == EnvTest {
			return g.synthetic("yookassa-test"), nil
		}
		return CreateResult{}, &Error{Gateway: "yookassa", Err: err}
	}
	return result, nil
}

func (g *YooKassa) createRemote(ctx context.Context, amount float64, bookingID, returnURL string) (CreateResult, error) {
	if returnURL == "" {
		returnURL = "https://example.com/return"
	}
	payload := map[string]interface{}{
		"amount": map[string]string{
			"value":    fmt.Sprintf("%.2f", amount),
			"currency": "RUB",
		},
		"confirmation": map[string]string{
			"type":       "redirect",
			"return_url": returnURL,
		},
		"description": fmt.Sprintf("Photo studio booking #%s", bookingID),
		"metadata": map[string]string{
			"booking_id": bookingID,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return CreateResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, yooKassaAPIURL, bytes.NewReader(body))
	if err != nil {
		return CreateResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotence-Key", g.newID())
	req.SetBasicAuth(g.shopID, g.secretKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return CreateResult{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return CreateResult{}, fmt.Errorf("yookassa answered %d", resp.StatusCode)
	}

	var data struct {
		ID           string `json:"id"`
		Status       string `json:"status"`
		Confirmation struct {
			ConfirmationURL string `json:"confirmation_url"`
		} `json:"confirmation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return CreateResult{}, err
	}
	return CreateResult{
		ExternalPaymentID: data.ID,
		PaymentURL:        data.Confirmation.ConfirmationURL,
		Status:            data.Status,
	}, nil
}

func (g *YooKassa) synthetic(prefix string) CreateResult {
	id := g.newID()
	return CreateResult{
		ExternalPaymentID: fmt.Sprintf("%s-%s", prefix, id),
		PaymentURL:        fmt.Sprintf("https://yoomoney.ru/checkout/payments/v2/contract?orderId=%s", id),
		Status:            "pending",
	}
}

func (g *YooKassa) VerifyWebhook(payload map[string]interface{}, signature string) bool {
	// TODO: verify the IP allow-list / signature once production credentials
	// are provisioned.
	return true
}

// ProcessWebhook normalizes the YooKassa notification shape:
// {"event": ..., "object": {"id", "status", "amount": {"value"}, "metadata"}}.
func (g *YooKassa) ProcessWebhook(payload map[string]interface{}) (WebhookResult, error) {
	object, _ := payload["object"].(map[string]interface{})
	result := WebhookResult{
		ExternalID: stringField(object, "id"),
		Status:     stringField(object, "status"),
		Metadata:   map[string]interface{}{},
	}
	if amount, ok := object["amount"].(map[string]interface{}); ok {
		result.Amount = floatField(amount, "value")
	}
	if md, ok := object["metadata"].(map[string]interface{}); ok {
		result.Metadata = md
	}
	return result, nil
}
