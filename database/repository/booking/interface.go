package booking

import (
	"context"

	"photostudio/models"
)

// Repository is the storage contract for booking records. The booking
// service is the only writer; records are never deleted, only
// status-transitioned.
type Repository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	Update(ctx context.Context, b *models.Booking) error
	List(ctx context.Context) ([]models.Booking, error)
	ListByHall(ctx context.Context, hallID string) ([]models.Booking, error)
}
