package broker

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"photostudio/models"
)

// Publisher is the producer-side contract. Publishing is fire-and-forget:
// delivery failures are a broker-internal concern and are never surfaced to
// the publisher.
type Publisher interface {
	Publish(eventType, sourceService string, payload map[string]interface{}) models.PublishReceipt
}

// Broker is the in-process message broker: per-event-type FIFO queues plus a
// runtime-mutable subscriber registry. Delivery is at-most-once, driven by a
// Dispatcher.
type Broker struct {
	store    *QueueStore
	registry *Registry
	wake     chan struct{}
	logger   *zap.Logger
}

// New returns a broker with empty queues and registry.
func New(logger *zap.Logger) *Broker {
	return &Broker{
		store:    NewQueueStore(),
		registry: NewRegistry(),
		wake:     make(chan struct{}, 1),
		logger:   logger,
	}
}

// Publish wraps payload in a Message, enqueues it and nudges the dispatcher.
// It always succeeds.
func (b *Broker) Publish(eventType, sourceService string, payload map[string]interface{}) models.PublishReceipt {
	msg := models.Message{
		MessageID:     uuid.New().String(),
		EventType:     eventType,
		SourceService: sourceService,
		Payload:       payload,
		Timestamp:     time.Now(),
	}
	depth := b.store.Enqueue(msg)
	b.logger.Info("event published",
		zap.String("event_type", eventType),
		zap.String("message_id", msg.MessageID),
		zap.Int("queue_size", depth),
	)
	select {
	case b.wake <- struct{}{}:
	default:
	}
	return models.PublishReceipt{MessageID: msg.MessageID, QueueDepth: depth}
}

// Subscribe registers a subscriber endpoint for an event type at runtime.
// Duplicate registrations are idempotent.
func (b *Broker) Subscribe(eventType, subscriberID, endpoint string) {
	b.registry.Subscribe(eventType, subscriberID, endpoint)
}

// QueueDepths reports the depth of every queue, for health checks.
func (b *Broker) QueueDepths() map[string]int {
	return b.store.Depths()
}

// PendingTotal is the number of messages not yet popped across all queues.
func (b *Broker) PendingTotal() int {
	total := 0
	for _, d := range b.store.Depths() {
		total += d
	}
	return total
}

// QueueSnapshot returns per-queue depth plus up to limit pending messages,
// for the introspection endpoint.
func (b *Broker) QueueSnapshot(limit int) map[string]QueueInfo {
	peek := b.store.Peek(limit)
	depths := b.store.Depths()
	out := make(map[string]QueueInfo, len(depths))
	for t, d := range depths {
		out[t] = QueueInfo{Size: d, Messages: peek[t]}
	}
	return out
}

// QueueInfo is one queue's introspection view.
type QueueInfo struct {
	Size     int              `json:"size"`
	Messages []models.Message `json:"messages"`
}
