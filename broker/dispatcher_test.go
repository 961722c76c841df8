package broker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"photostudio/models"
)

// recordingConsumer collects delivered messages and can be told to fail.
type recordingConsumer struct {
	mu       sync.Mutex
	messages []models.Message
	fail     bool
}

func (c *recordingConsumer) Consume(ctx context.Context, msg models.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	if c.fail {
		return errors.New("consumer rejected message")
	}
	return nil
}

func (c *recordingConsumer) received() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Message(nil), c.messages...)
}

func newTestDispatcher(t *testing.T) (*Broker, *Dispatcher, *ConsumerTransport) {
	t.Helper()
	logger := zap.NewNop()
	b := New(logger)
	transport := NewConsumerTransport(nil)
	d := NewDispatcher(b, transport, 10*time.Millisecond, time.Second, logger)
	return b, d, transport
}

func TestSweepDeliversInPublishOrder(t *testing.T) {
	b, d, transport := newTestDispatcher(t)
	consumer := &recordingConsumer{}
	transport.Register("notification", consumer)
	b.Subscribe("booking.created", "notification", "local://notification")

	b.Publish("booking.created", "booking", map[string]interface{}{"n": 1})
	b.Publish("booking.created", "booking", map[string]interface{}{"n": 2})
	b.Publish("booking.created", "booking", map[string]interface{}{"n": 3})

	// One sweep pops one message per event type.
	for i := 0; i < 3; i++ {
		d.sweep(context.Background())
	}

	got := consumer.received()
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Payload["n"])
	assert.Equal(t, 2, got[1].Payload["n"])
	assert.Equal(t, 3, got[2].Payload["n"])
	assert.Equal(t, 0, b.PendingTotal())
}

func TestSweepDeliversToSubscribersInRegistrationOrder(t *testing.T) {
	b, d, transport := newTestDispatcher(t)
	var order []string
	var mu sync.Mutex
	record := func(name string) Consumer {
		return consumerFunc(func(ctx context.Context, msg models.Message) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		})
	}
	transport.Register("integration", record("integration"))
	transport.Register("notification", record("notification"))
	b.Subscribe("booking.created", "integration", "local://integration")
	b.Subscribe("booking.created", "notification", "local://notification")

	b.Publish("booking.created", "booking", nil)
	d.sweep(context.Background())

	assert.Equal(t, []string{"integration", "notification"}, order)
}

func TestFailedDeliveryIsNeverRetried(t *testing.T) {
	b, d, transport := newTestDispatcher(t)
	consumer := &recordingConsumer{fail: true}
	transport.Register("notification", consumer)
	b.Subscribe("booking.created", "notification", "local://notification")

	b.Publish("booking.created", "booking", map[string]interface{}{"n": 1})

	d.sweep(context.Background())
	assert.Len(t, consumer.received(), 1)
	assert.Equal(t, 0, b.PendingTotal())

	// Further sweeps see an empty queue; the failed message is gone.
	d.sweep(context.Background())
	d.sweep(context.Background())
	assert.Len(t, consumer.received(), 1)
}

func TestOneSubscriberFailingDoesNotAffectSiblings(t *testing.T) {
	b, d, transport := newTestDispatcher(t)
	failing := &recordingConsumer{fail: true}
	healthy := &recordingConsumer{}
	transport.Register("integration", failing)
	transport.Register("notification", healthy)
	b.Subscribe("booking.created", "integration", "local://integration")
	b.Subscribe("booking.created", "notification", "local://notification")

	b.Publish("booking.created", "booking", nil)
	d.sweep(context.Background())

	assert.Len(t, failing.received(), 1)
	assert.Len(t, healthy.received(), 1)
}

func TestMessageWithNoSubscribersIsDropped(t *testing.T) {
	b, d, _ := newTestDispatcher(t)

	b.Publish("booking.created", "booking", nil)
	assert.Equal(t, 1, b.PendingTotal())

	d.sweep(context.Background())
	assert.Equal(t, 0, b.PendingTotal())
}

func TestRunWakesOnPublish(t *testing.T) {
	b, d, transport := newTestDispatcher(t)
	consumer := &recordingConsumer{}
	transport.Register("notification", consumer)
	b.Subscribe("booking.created", "notification", "local://notification")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	b.Publish("booking.created", "booking", nil)

	require.Eventually(t, func() bool {
		return len(consumer.received()) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop on context cancellation")
	}
}

// consumerFunc adapts a function to the Consumer interface for tests.
type consumerFunc func(ctx context.Context, msg models.Message) error

func (f consumerFunc) Consume(ctx context.Context, msg models.Message) error {
	return f(ctx, msg)
}
