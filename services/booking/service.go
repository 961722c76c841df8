package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"photostudio/models"
)

// Create validates the request, prices the slot, stores the booking in
// pending_payment and publishes booking.created with the full record.
func (s *DefaultBookingService) Create(ctx context.Context, req models.BookingCreateRequest) (*models.Booking, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	total := s.Pricer.Quote(ctx, req.HallID, req.StartTime, req.EndTime)

	b := &models.Booking{
		BookingID:     uuid.New().String(),
		HallID:        req.HallID,
		UserID:        req.UserID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        models.BookingStatusPendingPayment,
		TotalAmount:   total,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		CreatedAt:     time.Now(),
	}

	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("store booking: %w", err)
	}

	s.Logger.Info("booking created",
		zap.String("booking_id", b.BookingID),
		zap.String("hall_id", b.HallID),
		zap.Float64("total_amount", b.TotalAmount),
	)

	s.Events.Publish(models.EventBookingCreated, SourceService, map[string]interface{}{
		"booking": b,
	})

	return b, nil
}

// Get returns the booking or ErrNotFound.
func (s *DefaultBookingService) Get(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// List returns every stored booking.
func (s *DefaultBookingService) List(ctx context.Context) ([]models.Booking, error) {
	return s.Repo.List(ctx)
}

// Cancel transitions the booking to cancelled and publishes
// booking.cancelled. Cancelling twice fails with ErrAlreadyCancelled and
// does not republish.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID string) (*models.Booking, error) {
	s.locks.Lock(bookingID)
	defer s.locks.Unlock(bookingID)

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	if b.Status == models.BookingStatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	now := time.Now()
	b.Status = models.BookingStatusCancelled
	b.UpdatedAt = &now
	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	s.Logger.Info("booking cancelled", zap.String("booking_id", bookingID))

	s.Events.Publish(models.EventBookingCancelled, SourceService, map[string]interface{}{
		"booking_id": bookingID,
	})

	return b, nil
}

// Confirm transitions the booking to confirmed and publishes
// booking.confirmed. Confirming an already-confirmed booking is an idempotent
// no-op returning the current record without republishing; the payment
// service relies on this to call Confirm unconditionally on every success
// signal.
func (s *DefaultBookingService) Confirm(ctx context.Context, bookingID string) (*models.Booking, error) {
	s.locks.Lock(bookingID)
	defer s.locks.Unlock(bookingID)

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	if b.Status == models.BookingStatusConfirmed {
		return b, nil
	}

	now := time.Now()
	b.Status = models.BookingStatusConfirmed
	b.UpdatedAt = &now
	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	s.Logger.Info("booking confirmed", zap.String("booking_id", bookingID))

	s.Events.Publish(models.EventBookingConfirmed, SourceService, map[string]interface{}{
		"booking_id": bookingID,
		"booking":    b,
	})

	return b, nil
}

func validateCreateRequest(req models.BookingCreateRequest) error {
	switch {
	case req.HallID == "":
		return NewValidationError("hall_id", "required")
	case req.UserID == "":
		return NewValidationError("user_id", "required")
	case req.StartTime.IsZero():
		return NewValidationError("start_time", "required")
	case req.EndTime.IsZero():
		return NewValidationError("end_time", "required")
	case req.CustomerName == "":
		return NewValidationError("customer_name", "required")
	case req.CustomerEmail == "":
		return NewValidationError("customer_email", "required")
	case req.CustomerPhone == "":
		return NewValidationError("customer_phone", "required")
	case !req.EndTime.After(req.StartTime):
		return NewValidationError("end_time", "must be after start_time")
	}
	return nil
}
