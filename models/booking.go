package models

import "time"

// Booking statuses. A booking starts in pending_payment and can only move to
// confirmed or cancelled; both are terminal. Completed is reserved for a
// post-visit flow that is not part of the payment saga.
const (
	BookingStatusPendingPayment = "pending_payment"
	BookingStatusConfirmed      = "confirmed"
	BookingStatusCancelled      = "cancelled"
	BookingStatusCompleted      = "completed"
)

// Booking is a hall reservation record. Owned exclusively by the booking
// service; other components only see it through its read/confirm/cancel calls.
type Booking struct {
	BookingID     string     `bson:"booking_id" json:"booking_id"`
	HallID        string     `bson:"hall_id" json:"hall_id"`
	UserID        string     `bson:"user_id" json:"user_id"`
	StartTime     time.Time  `bson:"start_time" json:"start_time"`
	EndTime       time.Time  `bson:"end_time" json:"end_time"`
	Status        string     `bson:"status" json:"status"`
	TotalAmount   float64    `bson:"total_amount" json:"total_amount"`
	CustomerName  string     `bson:"customer_name" json:"customer_name"`
	CustomerEmail string     `bson:"customer_email" json:"customer_email"`
	CustomerPhone string     `bson:"customer_phone" json:"customer_phone"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt     *time.Time `bson:"updated_at,omitempty" json:"updated_at"`
}

// Occupying reports whether the booking reserves its hall's time range for
// availability purposes.
func (b *Booking) Occupying() bool {
	return b.Status == BookingStatusPendingPayment || b.Status == BookingStatusConfirmed
}

// BookingCreateRequest carries the fields a client must provide to book a hall.
type BookingCreateRequest struct {
	HallID        string    `json:"hall_id"`
	UserID        string    `json:"user_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
}

// Slot is a derived 15-minute availability window; never stored.
type Slot struct {
	HallID    string    `json:"hall_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Available bool      `json:"available"`
}
