package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"photostudio/broker"
	"photostudio/database/repository"
	"photostudio/models"
	"photostudio/utils"
)

// SourceService is the name stamped on events published by this service.
const SourceService = "booking"

// BookingService is the booking state machine's public contract. Bookings
// move pending_payment -> confirmed | cancelled; both targets are terminal.
type BookingService interface {
	Create(ctx context.Context, req models.BookingCreateRequest) (*models.Booking, error)
	Get(ctx context.Context, bookingID string) (*models.Booking, error)
	List(ctx context.Context) ([]models.Booking, error)
	Cancel(ctx context.Context, bookingID string) (*models.Booking, error)
	Confirm(ctx context.Context, bookingID string) (*models.Booking, error)
	Availability(ctx context.Context, hallID string, startDate, endDate time.Time) ([]models.Slot, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo   repository.BookingRepository
	Halls  repository.HallRepository
	Pricer Pricer
	Events broker.Publisher
	Logger *zap.Logger

	locks utils.KeyMutex
}

var _ BookingService = (*DefaultBookingService)(nil)
