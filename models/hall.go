package models

// Hall describes a bookable studio hall. Working hours are minutes from
// midnight; HourlyRate feeds the pricing engine.
type Hall struct {
	HallID             string  `bson:"hall_id" json:"hall_id"`
	Name               string  `bson:"name" json:"name"`
	MinBookingDuration int     `bson:"min_booking_duration" json:"min_booking_duration"`
	WorkStart          int     `bson:"work_start" json:"work_start"`
	WorkEnd            int     `bson:"work_end" json:"work_end"`
	HourlyRate         float64 `bson:"hourly_rate" json:"hourly_rate"`
}
