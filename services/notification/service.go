package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"photostudio/models"
)

// Consume routes one delivered event to its notification handler. Unknown
// event types are acknowledged and ignored.
func (s *DefaultNotificationService) Consume(ctx context.Context, msg models.Message) error {
	switch msg.EventType {
	case models.EventBookingCreated:
		return s.onBookingCreated(msg)
	case models.EventBookingConfirmed:
		return s.onBookingConfirmed(ctx, msg)
	case models.EventBookingCancelled:
		return s.onBookingCancelled(ctx, msg)
	case models.EventPaymentSucceeded:
		return s.onPaymentSucceeded(ctx, msg)
	case models.EventPaymentFailed:
		s.Logger.Info("payment failed, no customer notification", zap.String("message_id", msg.MessageID))
		return nil
	default:
		s.Logger.Debug("ignoring event", zap.String("event_type", msg.EventType))
		return nil
	}
}

// Recent returns the newest recorded notifications, most recent last.
func (s *DefaultNotificationService) Recent(limit int) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.log)
	if limit > 0 && n > limit {
		return append([]models.Notification(nil), s.log[n-limit:]...)
	}
	return append([]models.Notification(nil), s.log...)
}

func (s *DefaultNotificationService) onBookingCreated(msg models.Message) error {
	b, ok := payloadBooking(msg.Payload, "booking")
	if !ok {
		return fmt.Errorf("booking.created payload has no booking")
	}
	subject := "Your booking is awaiting payment"
	body := fmt.Sprintf("Hi %s, your booking of hall %s from %s to %s is reserved. Please pay %.2f to confirm it.",
		b.CustomerName, b.HallID,
		b.StartTime.Format(time.RFC3339), b.EndTime.Format(time.RFC3339),
		b.TotalAmount,
	)
	s.sendEmail(b.CustomerEmail, subject, body)
	s.sendSMS(b.CustomerPhone, fmt.Sprintf("Booking %s reserved, awaiting payment of %.2f.", b.BookingID, b.TotalAmount))
	return nil
}

func (s *DefaultNotificationService) onBookingConfirmed(ctx context.Context, msg models.Message) error {
	b, ok := payloadBooking(msg.Payload, "booking")
	if !ok {
		var err error
		b, err = s.fetchBooking(ctx, msg.Payload)
		if err != nil {
			return err
		}
	}
	subject := "Your booking is confirmed"
	body := fmt.Sprintf("Hi %s, your booking of hall %s on %s is confirmed. See you there!",
		b.CustomerName, b.HallID, b.StartTime.Format(time.RFC3339))
	s.sendEmail(b.CustomerEmail, subject, body)
	s.sendSMS(b.CustomerPhone, fmt.Sprintf("Booking %s confirmed.", b.BookingID))

	s.scheduleReminder(b)
	return nil
}

func (s *DefaultNotificationService) onBookingCancelled(ctx context.Context, msg models.Message) error {
	b, err := s.fetchBooking(ctx, msg.Payload)
	if err != nil {
		return err
	}
	s.sendEmail(b.CustomerEmail, "Your booking was cancelled",
		fmt.Sprintf("Hi %s, your booking %s has been cancelled.", b.CustomerName, b.BookingID))
	return nil
}

func (s *DefaultNotificationService) onPaymentSucceeded(ctx context.Context, msg models.Message) error {
	p, ok := payloadPayment(msg.Payload, "payment")
	if !ok {
		return fmt.Errorf("payment.succeeded payload has no payment")
	}
	b, err := s.fetchBooking(ctx, msg.Payload)
	if err != nil {
		// The receipt is best-effort; the confirmation email already went out.
		s.Logger.Warn("could not resolve booking for receipt", zap.Error(err))
		return nil
	}
	s.sendEmail(b.CustomerEmail, "Payment received",
		fmt.Sprintf("We received your payment of %.2f via %s for booking %s.", p.Amount, p.PaymentMethod, p.BookingID))
	return nil
}

func (s *DefaultNotificationService) scheduleReminder(b *models.Booking) {
	if s.Scheduler == nil || b.StartTime.IsZero() {
		return
	}
	lead := s.ReminderLead
	if lead <= 0 {
		lead = time.Hour
	}
	fireAt := b.StartTime.Add(-lead)
	if fireAt.Before(time.Now()) {
		return
	}
	payload := models.ReminderPayload{
		BookingID:     b.BookingID,
		HallID:        b.HallID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		StartTime:     b.StartTime.Format(time.RFC3339),
	}
	if err := s.Scheduler.ScheduleReminder(payload, fireAt); err != nil {
		s.Logger.Warn("failed to schedule reminder",
			zap.String("booking_id", b.BookingID),
			zap.Error(err),
		)
	}
}

func (s *DefaultNotificationService) fetchBooking(ctx context.Context, payload map[string]interface{}) (*models.Booking, error) {
	id, _ := payload["booking_id"].(string)
	if id == "" {
		return nil, fmt.Errorf("payload has no booking_id")
	}
	b, err := s.Bookings.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch booking %s: %w", id, err)
	}
	return b, nil
}

func (s *DefaultNotificationService) sendEmail(to, subject, body string) {
	status := "sent"
	if err := s.Email.SendEmail(to, subject, body); err != nil {
		status = "failed"
		s.Logger.Warn("email delivery failed", zap.String("to", to), zap.Error(err))
	}
	s.record(models.Notification{
		NotificationID: uuid.New().String(),
		Type:           "email",
		To:             to,
		Subject:        subject,
		Body:           body,
		Status:         status,
		SentAt:         time.Now(),
	})
}

func (s *DefaultNotificationService) sendSMS(to, message string) {
	status := "sent"
	if err := s.SMS.SendSMS(to, message); err != nil {
		status = "failed"
		s.Logger.Warn("sms delivery failed", zap.String("to", to), zap.Error(err))
	}
	s.record(models.Notification{
		NotificationID: uuid.New().String(),
		Type:           "sms",
		To:             to,
		Body:           message,
		Status:         status,
		SentAt:         time.Now(),
	})
}

func (s *DefaultNotificationService) record(n models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, n)
}

// payloadBooking extracts a booking from an event payload. In-process
// deliveries carry the struct itself; HTTP deliveries carry decoded JSON, so
// a round-trip through json covers both.
func payloadBooking(payload map[string]interface{}, key string) (*models.Booking, bool) {
	raw, ok := payload[key]
	if !ok || raw == nil {
		return nil, false
	}
	if b, ok := raw.(*models.Booking); ok {
		return b, true
	}
	var b models.Booking
	if !remarshal(raw, &b) || b.BookingID == "" {
		return nil, false
	}
	return &b, true
}

func payloadPayment(payload map[string]interface{}, key string) (*models.Payment, bool) {
	raw, ok := payload[key]
	if !ok || raw == nil {
		return nil, false
	}
	if p, ok := raw.(*models.Payment); ok {
		return p, true
	}
	var p models.Payment
	if !remarshal(raw, &p) || p.PaymentID == "" {
		return nil, false
	}
	return &p, true
}

func remarshal(from interface{}, to interface{}) bool {
	data, err := json.Marshal(from)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, to) == nil
}
