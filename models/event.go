package models

import "time"

// Event types carried by the message broker. Constants keep producers and
// consumers on the same vocabulary.
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventPaymentSucceeded = "payment.succeeded"
	EventPaymentFailed    = "payment.failed"
)

// Message is a single published event. Immutable after creation: the queue
// owns it until a dispatch attempt pops it, then it is delivered or dropped.
type Message struct {
	MessageID     string                 `json:"message_id"`
	EventType     string                 `json:"event_type"`
	SourceService string                 `json:"source_service"`
	Payload       map[string]interface{} `json:"payload"`
	Timestamp     time.Time              `json:"timestamp"`
}

// PublishReceipt is returned to a publisher; queue depth is observability
// only, publishing is fire-and-forget.
type PublishReceipt struct {
	MessageID  string `json:"message_id"`
	QueueDepth int    `json:"queue_size"`
}
