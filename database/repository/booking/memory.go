package booking

import (
	"context"
	"errors"
	"sync"

	"photostudio/models"
)

// ErrNotFound is returned when no booking matches the given id.
var ErrNotFound = errors.New("booking not found")

// MemoryRepo is the default in-process store. Durable backends plug in behind
// the same Repository interface.
type MemoryRepo struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
}

// NewMemoryRepo returns an empty in-memory booking store.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{bookings: make(map[string]models.Booking)}
}

func (r *MemoryRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.BookingID] = *b
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (r *MemoryRepo) Update(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.BookingID]; !ok {
		return ErrNotFound
	}
	r.bookings[b.BookingID] = *b
	return nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (r *MemoryRepo) ListByHall(ctx context.Context, hallID string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.HallID == hallID {
			out = append(out, b)
		}
	}
	return out, nil
}
