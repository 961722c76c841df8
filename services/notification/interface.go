package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"photostudio/models"
)

// SubscriberID is this consumer's identity on the broker.
const SubscriberID = "notification"

// NotificationService consumes booking/payment events and turns them into
// customer notifications. It honors the broker's delivery contract: a nil
// return from Consume acknowledges the message.
type NotificationService interface {
	Consume(ctx context.Context, msg models.Message) error
	Recent(limit int) []models.Notification
}

// BookingReader is the read slice of the booking service this consumer needs
// to resolve contact details from a bare booking_id payload.
type BookingReader interface {
	Get(ctx context.Context, bookingID string) (*models.Booking, error)
}

// EmailSender delivers one email. The channel transport is out of scope here,
// so the default implementation only logs.
type EmailSender interface {
	SendEmail(to, subject, body string) error
}

// SMSSender delivers one SMS.
type SMSSender interface {
	SendSMS(to, message string) error
}

// ReminderScheduler schedules a visit reminder ahead of the booking start.
type ReminderScheduler interface {
	ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error
}

// DefaultNotificationService implements NotificationService.
type DefaultNotificationService struct {
	Bookings  BookingReader
	Email     EmailSender
	SMS       SMSSender
	Scheduler ReminderScheduler // nil when reminders are disabled
	// ReminderLead is how long before the booking start the reminder fires.
	ReminderLead time.Duration
	Logger       *zap.Logger

	mu  sync.Mutex
	log []models.Notification
}

var _ NotificationService = (*DefaultNotificationService)(nil)
