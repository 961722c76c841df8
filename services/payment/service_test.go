package payment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"photostudio/database/repository"
	"photostudio/models"
	"photostudio/services/payment/gateway"
)

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	eventType string
	payload   map[string]interface{}
}

func (p *fakePublisher) Publish(eventType, sourceService string, payload map[string]interface{}) models.PublishReceipt {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{eventType: eventType, payload: payload})
	return models.PublishReceipt{MessageID: "fake"}
}

func (p *fakePublisher) published(eventType string) []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []publishedEvent
	for _, e := range p.events {
		if e.eventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

// fakeBookings serves a fixed booking and counts confirm calls.
type fakeBookings struct {
	mu       sync.Mutex
	booking  *models.Booking
	confirms int
	fail     bool
}

func (f *fakeBookings) Get(ctx context.Context, bookingID string) (*models.Booking, error) {
	if f.booking == nil || f.booking.BookingID != bookingID {
		return nil, errors.New("booking not found")
	}
	return f.booking, nil
}

func (f *fakeBookings) Confirm(ctx context.Context, bookingID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("booking service unavailable")
	}
	f.confirms++
	f.booking.Status = models.BookingStatusConfirmed
	return f.booking, nil
}

func (f *fakeBookings) confirmCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirms
}

// fakeGateway answers with a canned creation result and webhook normalization.
type fakeGateway struct {
	createResult gateway.CreateResult
	createErr    error
	webhook      gateway.WebhookResult
	verified     bool
}

func (g *fakeGateway) CreatePayment(ctx context.Context, amount float64, bookingID, returnURL string) (gateway.CreateResult, error) {
	if g.createErr != nil {
		return gateway.CreateResult{}, g.createErr
	}
	return g.createResult, nil
}

func (g *fakeGateway) ProcessWebhook(payload map[string]interface{}) (gateway.WebhookResult, error) {
	return g.webhook, nil
}

func (g *fakeGateway) VerifyWebhook(payload map[string]interface{}, signature string) bool {
	return g.verified
}

func testBooking() *models.Booking {
	return &models.Booking{
		BookingID:   "booking-1",
		HallID:      "hall-001",
		Status:      models.BookingStatusPendingPayment,
		TotalAmount: 3000.00,
	}
}

func newTestService(t *testing.T, gw *fakeGateway) (*DefaultPaymentService, *fakeBookings, *fakePublisher) {
	t.Helper()
	bookings := &fakeBookings{booking: testBooking()}
	events := &fakePublisher{}
	svc := &DefaultPaymentService{
		Repo:     repository.NewMemoryPaymentRepo(),
		Bookings: bookings,
		Gateways: func(method string) (gateway.Gateway, error) {
			return gateway.ForMethod(method, gateway.EnvMock, gateway.Config{})
		},
		Env:    gateway.EnvMock,
		Events: events,
		Logger: zap.NewNop(),
	}
	if gw != nil {
		svc.Gateways = func(method string) (gateway.Gateway, error) { return gw, nil }
	}
	return svc, bookings, events
}

func TestCreateResolvesAmountFromBooking(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	p, err := svc.Create(context.Background(), models.PaymentCreateRequest{BookingID: "booking-1"})
	require.NoError(t, err)
	assert.Equal(t, 3000.00, p.Amount)
	assert.Equal(t, models.PaymentStatusPending, p.Status)
	assert.Equal(t, models.PaymentMethodYooKassa, p.PaymentMethod)
	assert.NotEmpty(t, p.ExternalPaymentID)
	assert.NotEmpty(t, p.PaymentURL)
}

func TestCreateExplicitAmountWins(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	amount := 500.00

	p, err := svc.Create(context.Background(), models.PaymentCreateRequest{
		BookingID: "booking-1",
		Amount:    &amount,
	})
	require.NoError(t, err)
	assert.Equal(t, 500.00, p.Amount)
}

func TestCreateUnknownBookingFails(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.Create(context.Background(), models.PaymentCreateRequest{BookingID: "missing"})
	assert.ErrorIs(t, err, ErrAmountUnavailable)
}

func TestCreateRequiresBookingID(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.Create(context.Background(), models.PaymentCreateRequest{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "booking_id", ve.Field)
}

func TestCreateUnknownMethodFails(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.Create(context.Background(), models.PaymentCreateRequest{
		BookingID:     "booking-1",
		PaymentMethod: "paypal",
	})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func createTestPayment(t *testing.T, svc *DefaultPaymentService) *models.Payment {
	t.Helper()
	p, err := svc.Create(context.Background(), models.PaymentCreateRequest{BookingID: "booking-1"})
	require.NoError(t, err)
	return p
}

func TestWebhookSucceededConfirmsBookingAndPublishes(t *testing.T) {
	gw := &fakeGateway{createResult: gateway.CreateResult{ExternalPaymentID: "ext-1"}}
	svc, bookings, events := newTestService(t, gw)
	p := createTestPayment(t, svc)

	gw.webhook = gateway.WebhookResult{ExternalID: "ext-1", Status: "succeeded"}
	require.NoError(t, svc.ProcessWebhook(context.Background(), "yookassa", nil, ""))

	stored, err := svc.Get(context.Background(), p.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSucceeded, stored.Status)
	assert.Equal(t, 1, bookings.confirmCount())

	published := events.published(models.EventPaymentSucceeded)
	require.Len(t, published, 1)
	assert.Equal(t, "booking-1", published[0].payload["booking_id"])
}

func TestDuplicateSucceededWebhookIsIdempotent(t *testing.T) {
	gw := &fakeGateway{createResult: gateway.CreateResult{ExternalPaymentID: "ext-1"}}
	svc, bookings, events := newTestService(t, gw)
	createTestPayment(t, svc)

	gw.webhook = gateway.WebhookResult{ExternalID: "ext-1", Status: "succeeded"}
	require.NoError(t, svc.ProcessWebhook(context.Background(), "yookassa", nil, ""))
	require.NoError(t, svc.ProcessWebhook(context.Background(), "yookassa", nil, ""))
	require.NoError(t, svc.ProcessWebhook(context.Background(), "yookassa", nil, ""))

	assert.Equal(t, 1, bookings.confirmCount())
	assert.Len(t, events.published(models.EventPaymentSucceeded), 1)
}

func TestWebhookFailedPublishesPaymentFailed(t *testing.T) {
	gw := &fakeGateway{createResult: gateway.CreateResult{ExternalPaymentID: "ext-1"}}
	svc, bookings, events := newTestService(t, gw)
	p := createTestPayment(t, svc)

	gw.webhook = gateway.WebhookResult{ExternalID: "ext-1", Status: "canceled"}
	require.NoError(t, svc.ProcessWebhook(context.Background(), "yookassa", nil, ""))

	stored, err := svc.Get(context.Background(), p.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, stored.Status)
	assert.Equal(t, 0, bookings.confirmCount())

	published := events.published(models.EventPaymentFailed)
	require.Len(t, published, 1)
	assert.Equal(t, p.PaymentID, published[0].payload["payment_id"])
	assert.Equal(t, "booking-1", published[0].payload["booking_id"])
}

func TestWebhookUnknownStatusLeavesPaymentPending(t *testing.T) {
	gw := &fakeGateway{createResult: gateway.CreateResult{ExternalPaymentID: "ext-1"}}
	svc, bookings, events := newTestService(t, gw)
	p := createTestPayment(t, svc)

	gw.webhook = gateway.WebhookResult{ExternalID: "ext-1", Status: "waiting_for_capture"}
	require.NoError(t, svc.ProcessWebhook(context.Background(), "yookassa", nil, ""))

	stored, err := svc.Get(context.Background(), p.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, stored.Status)
	assert.Equal(t, 0, bookings.confirmCount())
	assert.Empty(t, events.published(models.EventPaymentSucceeded))
	assert.Empty(t, events.published(models.EventPaymentFailed))
}

func TestWebhookUnknownExternalIDFails(t *testing.T) {
	gw := &fakeGateway{createResult: gateway.CreateResult{ExternalPaymentID: "ext-1"}}
	svc, _, _ := newTestService(t, gw)
	createTestPayment(t, svc)

	gw.webhook = gateway.WebhookResult{ExternalID: "ext-other", Status: "succeeded"}
	err := svc.ProcessWebhook(context.Background(), "yookassa", nil, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWebhookSignatureCheckedOnlyInProduction(t *testing.T) {
	gw := &fakeGateway{
		createResult: gateway.CreateResult{ExternalPaymentID: "ext-1"},
		verified:     false,
	}
	svc, _, _ := newTestService(t, gw)
	createTestPayment(t, svc)
	gw.webhook = gateway.WebhookResult{ExternalID: "ext-1", Status: "succeeded"}

	// Mock environment: signature ignored.
	require.NoError(t, svc.ProcessWebhook(context.Background(), "yookassa", nil, "bad-sig"))

	svc.Env = gateway.EnvProduction
	err := svc.ProcessWebhook(context.Background(), "yookassa", nil, "bad-sig")
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestWebhookBookingConfirmFailureDoesNotFailWebhook(t *testing.T) {
	gw := &fakeGateway{createResult: gateway.CreateResult{ExternalPaymentID: "ext-1"}}
	svc, bookings, events := newTestService(t, gw)
	p := createTestPayment(t, svc)
	bookings.fail = true

	gw.webhook = gateway.WebhookResult{ExternalID: "ext-1", Status: "succeeded"}
	require.NoError(t, svc.ProcessWebhook(context.Background(), "yookassa", nil, ""))

	// The local transition and the event stand even though the confirm call
	// failed.
	stored, err := svc.Get(context.Background(), p.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSucceeded, stored.Status)
	assert.Len(t, events.published(models.EventPaymentSucceeded), 1)
}

func TestRefundFullAmountByDefault(t *testing.T) {
	gw := &fakeGateway{createResult: gateway.CreateResult{ExternalPaymentID: "ext-1"}}
	svc, _, _ := newTestService(t, gw)
	p := createTestPayment(t, svc)

	gw.webhook = gateway.WebhookResult{ExternalID: "ext-1", Status: "succeeded"}
	require.NoError(t, svc.ProcessWebhook(context.Background(), "yookassa", nil, ""))

	refund, err := svc.Refund(context.Background(), p.PaymentID, models.RefundRequest{})
	require.NoError(t, err)
	assert.Equal(t, p.Amount, refund.Amount)
	assert.Equal(t, "succeeded", refund.Status)

	stored, err := svc.Get(context.Background(), p.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, stored.Status)
}

func TestRefundPartialAmount(t *testing.T) {
	gw := &fakeGateway{createResult: gateway.CreateResult{ExternalPaymentID: "ext-1"}}
	svc, _, _ := newTestService(t, gw)
	p := createTestPayment(t, svc)
	gw.webhook = gateway.WebhookResult{ExternalID: "ext-1", Status: "succeeded"}
	require.NoError(t, svc.ProcessWebhook(context.Background(), "yookassa", nil, ""))

	amount := 1000.00
	refund, err := svc.Refund(context.Background(), p.PaymentID, models.RefundRequest{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, 1000.00, refund.Amount)
}

func TestRefundRequiresSucceededState(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	p := createTestPayment(t, svc)

	_, err := svc.Refund(context.Background(), p.PaymentID, models.RefundRequest{})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRefundTwiceFails(t *testing.T) {
	gw := &fakeGateway{createResult: gateway.CreateResult{ExternalPaymentID: "ext-1"}}
	svc, _, _ := newTestService(t, gw)
	p := createTestPayment(t, svc)
	gw.webhook = gateway.WebhookResult{ExternalID: "ext-1", Status: "succeeded"}
	require.NoError(t, svc.ProcessWebhook(context.Background(), "yookassa", nil, ""))

	_, err := svc.Refund(context.Background(), p.PaymentID, models.RefundRequest{})
	require.NoError(t, err)
	_, err = svc.Refund(context.Background(), p.PaymentID, models.RefundRequest{})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRefundUnknownPayment(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	_, err := svc.Refund(context.Background(), "missing", models.RefundRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMapGatewayStatus(t *testing.T) {
	cases := map[string]string{
		"succeeded":           models.PaymentStatusSucceeded,
		"Succeeded":           models.PaymentStatusSucceeded,
		"pending":             models.PaymentStatusPending,
		"canceled":            models.PaymentStatusFailed,
		"failed":              models.PaymentStatusFailed,
		"FAILED":              models.PaymentStatusFailed,
		"waiting_for_capture": models.PaymentStatusPending,
		"":                    models.PaymentStatusPending,
	}
	for in, want := range cases {
		assert.Equalf(t, want, mapGatewayStatus(in), "status %q", in)
	}
}

func TestConcurrentSucceededWebhooksConfirmOnce(t *testing.T) {
	gw := &fakeGateway{createResult: gateway.CreateResult{ExternalPaymentID: "ext-1"}}
	svc, bookings, events := newTestService(t, gw)
	createTestPayment(t, svc)
	gw.webhook = gateway.WebhookResult{ExternalID: "ext-1", Status: "succeeded"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := svc.ProcessWebhook(context.Background(), "yookassa", nil, "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, bookings.confirmCount())
	assert.Len(t, events.published(models.EventPaymentSucceeded), 1)
}
