package broker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Dispatcher continuously drains the broker's queues and delivers popped
// messages to subscribers. Semantics are deliberately at-most-once: a message
// is popped before delivery is attempted and is never requeued, whatever the
// outcome. Collaborators needing stronger guarantees must reconcile against
// their own durable log.
type Dispatcher struct {
	broker    *Broker
	transport Transport
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
}

// NewDispatcher wires a dispatcher to a broker and a delivery transport.
// interval is the idle sweep fallback; timeout bounds each delivery attempt.
func NewDispatcher(b *Broker, transport Transport, interval, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		broker:    b,
		transport: transport,
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
	}
}

// Run sweeps until ctx is cancelled. A publish wakes it immediately; the
// ticker is only a fallback so a missed wake cannot strand a queue.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		d.sweep(ctx)
		select {
		case <-ctx.Done():
			return
		case <-d.broker.wake:
		case <-ticker.C:
		}
	}
}

// sweep pops one message per non-empty event type and attempts delivery to
// each subscriber in registration order. Delivery outcomes are independent:
// one subscriber failing does not affect its siblings.
func (d *Dispatcher) sweep(ctx context.Context) {
	for _, eventType := range d.broker.store.NonEmptyTypes() {
		msg, ok := d.broker.store.DequeueNext(eventType)
		if !ok {
			continue
		}
		for _, sub := range d.broker.registry.SubscribersFor(eventType) {
			if sub.Endpoint == "" {
				d.logger.Warn("subscriber has no endpoint",
					zap.String("subscriber", sub.SubscriberID),
					zap.String("message_id", msg.MessageID),
				)
				continue
			}
			attemptCtx, cancel := context.WithTimeout(ctx, d.timeout)
			err := d.transport.Deliver(attemptCtx, sub.Endpoint, msg)
			cancel()
			if err != nil {
				// Log and move on; the message is gone for this subscriber.
				d.logger.Warn("delivery failed",
					zap.String("subscriber", sub.SubscriberID),
					zap.String("event_type", eventType),
					zap.String("message_id", msg.MessageID),
					zap.Error(err),
				)
				continue
			}
			d.logger.Info("message delivered",
				zap.String("subscriber", sub.SubscriberID),
				zap.String("event_type", eventType),
				zap.String("message_id", msg.MessageID),
			)
		}
	}
}
