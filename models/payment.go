package models

import "time"

// Payment statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Supported gateway method names.
const (
	PaymentMethodYooKassa = "yookassa"
	PaymentMethodSberPay  = "sberpay"
	PaymentMethodTinkoff  = "tinkoff"
	PaymentMethodStripe   = "stripe"
)

// Payment is a payment record owned exclusively by the payment service.
// BookingID is a weak reference: booking data is only reached through the
// booking service's public contract.
type Payment struct {
	PaymentID         string     `bson:"payment_id" json:"payment_id"`
	BookingID         string     `bson:"booking_id" json:"booking_id"`
	Amount            float64    `bson:"amount" json:"amount"`
	PaymentMethod     string     `bson:"payment_method" json:"payment_method"`
	Status            string     `bson:"status" json:"status"`
	ExternalPaymentID string     `bson:"external_payment_id" json:"external_payment_id,omitempty"`
	PaymentURL        string     `bson:"payment_url" json:"payment_url,omitempty"`
	CreatedAt         time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt         *time.Time `bson:"updated_at,omitempty" json:"updated_at"`
}

// PaymentCreateRequest is the client request to start a payment. Amount is
// optional; when nil the booking's total_amount is used.
type PaymentCreateRequest struct {
	BookingID     string   `json:"booking_id"`
	Amount        *float64 `json:"amount,omitempty"`
	PaymentMethod string   `json:"payment_method"`
	ReturnURL     string   `json:"return_url,omitempty"`
}

// RefundRequest asks for a refund of a succeeded payment. Amount nil means a
// full refund.
type RefundRequest struct {
	Amount *float64 `json:"amount,omitempty"`
	Reason string   `json:"reason,omitempty"`
}

// Refund is the record returned by a refund operation.
type Refund struct {
	RefundID  string    `json:"refund_id"`
	PaymentID string    `json:"payment_id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
