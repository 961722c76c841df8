// Package integration is the CRM-sync stand-in consumer: it records every
// delivered event in an inspectable log and acknowledges it. It never
// publishes booking.* or payment.* events of its own, so it cannot loop the
// saga.
package integration

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"photostudio/models"
)

// SubscriberID is this consumer's identity on the broker.
const SubscriberID = "integration"

// IntegrationService consumes events and keeps the processed-event log.
type IntegrationService interface {
	Consume(ctx context.Context, msg models.Message) error
	Events() []models.EventLog
}

// DefaultIntegrationService implements IntegrationService.
type DefaultIntegrationService struct {
	Logger *zap.Logger

	mu     sync.Mutex
	events []models.EventLog
}

var _ IntegrationService = (*DefaultIntegrationService)(nil)

// Consume records the event as processed.
func (s *DefaultIntegrationService) Consume(ctx context.Context, msg models.Message) error {
	now := time.Now()
	entry := models.EventLog{
		EventID:       uuid.New().String(),
		EventType:     msg.EventType,
		SourceService: msg.SourceService,
		Payload:       msg.Payload,
		Status:        "processed",
		ProcessedAt:   now,
		Timestamp:     now,
	}

	s.mu.Lock()
	s.events = append(s.events, entry)
	s.mu.Unlock()

	s.Logger.Info("integration event recorded",
		zap.String("event_type", msg.EventType),
		zap.String("message_id", msg.MessageID),
	)
	return nil
}

// Events returns a snapshot of the processed-event log.
func (s *DefaultIntegrationService) Events() []models.EventLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.EventLog(nil), s.events...)
}
