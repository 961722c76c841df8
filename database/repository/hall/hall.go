package hall

import (
	"context"
	"errors"
	"sync"

	"photostudio/models"
)

// ErrNotFound is returned when no hall matches the given id.
var ErrNotFound = errors.New("hall not found")

// Repository is the read contract for the hall catalog.
type Repository interface {
	GetByID(ctx context.Context, hallID string) (*models.Hall, error)
	List(ctx context.Context) ([]models.Hall, error)
}

// MemoryRepo serves the hall catalog from memory. The catalog is small and
// effectively static, so there is no durable variant.
type MemoryRepo struct {
	mu    sync.RWMutex
	halls map[string]models.Hall
	order []string
}

// NewMemoryRepo returns a catalog seeded with the given halls.
func NewMemoryRepo(halls []models.Hall) *MemoryRepo {
	r := &MemoryRepo{halls: make(map[string]models.Hall, len(halls))}
	for _, h := range halls {
		r.halls[h.HallID] = h
		r.order = append(r.order, h.HallID)
	}
	return r
}

// DefaultHalls is the seed catalog.
func DefaultHalls() []models.Hall {
	return []models.Hall{
		{
			HallID:             "hall-001",
			Name:               "Grand Hall",
			MinBookingDuration: 60,
			WorkStart:          9 * 60,
			WorkEnd:            22 * 60,
			HourlyRate:         1500.00,
		},
		{
			HallID:             "hall-002",
			Name:               "Small Hall",
			MinBookingDuration: 30,
			WorkStart:          9 * 60,
			WorkEnd:            22 * 60,
			HourlyRate:         1500.00,
		},
	}
}

func (r *MemoryRepo) GetByID(ctx context.Context, hallID string) (*models.Hall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.halls[hallID]
	if !ok {
		return nil, ErrNotFound
	}
	return &h, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]models.Hall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Hall, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.halls[id])
	}
	return out, nil
}
