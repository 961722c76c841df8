package payment

import (
	"context"
	"errors"
	"sync"

	"photostudio/models"
)

// ErrNotFound is returned when no payment matches the given id.
var ErrNotFound = errors.New("payment not found")

// MemoryRepo is the default in-process store.
type MemoryRepo struct {
	mu       sync.RWMutex
	payments map[string]models.Payment
}

// NewMemoryRepo returns an empty in-memory payment store.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{payments: make(map[string]models.Payment)}
}

func (r *MemoryRepo) Create(ctx context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[p.PaymentID] = *p
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[paymentID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryRepo) GetByExternalID(ctx context.Context, externalPaymentID string) (*models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.payments {
		if p.ExternalPaymentID == externalPaymentID {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepo) Update(ctx context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[p.PaymentID]; !ok {
		return ErrNotFound
	}
	r.payments[p.PaymentID] = *p
	return nil
}
