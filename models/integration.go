package models

import "time"

// EventLog is one processed event as recorded by the integration consumer.
type EventLog struct {
	EventID       string                 `json:"event_id"`
	EventType     string                 `json:"event_type"`
	SourceService string                 `json:"source_service"`
	Payload       map[string]interface{} `json:"payload"`
	Status        string                 `json:"status"` // processed, failed
	ProcessedAt   time.Time              `json:"processed_at"`
	Timestamp     time.Time              `json:"timestamp"`
}
