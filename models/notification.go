package models

import "time"

// Notification is a record of an outbound customer notification. The actual
// channel transport (SMTP, SMS provider) is pluggable; the record is kept
// either way so the flow can be inspected.
type Notification struct {
	NotificationID string    `json:"notification_id"`
	Type           string    `json:"type"` // "email" or "sms"
	To             string    `json:"to"`
	Subject        string    `json:"subject,omitempty"`
	Body           string    `json:"body"`
	Status         string    `json:"status"` // "sent" or "failed"
	SentAt         time.Time `json:"sent_at"`
}

// ReminderPayload is the asynq task payload for a scheduled booking reminder.
type ReminderPayload struct {
	BookingID     string `json:"booking_id"`
	HallID        string `json:"hall_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	StartTime     string `json:"start_time"`
}
