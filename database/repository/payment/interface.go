package payment

import (
	"context"

	"photostudio/models"
)

// Repository is the storage contract for payment records. Webhook processing
// looks payments up by the gateway-assigned external id; there is no fallback
// lookup by amount or metadata.
type Repository interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByID(ctx context.Context, paymentID string) (*models.Payment, error)
	GetByExternalID(ctx context.Context, externalPaymentID string) (*models.Payment, error)
	Update(ctx context.Context, p *models.Payment) error
}
