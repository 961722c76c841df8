package booking

import (
	"context"
	"time"

	"photostudio/database/repository"
)

// DefaultHourlyRate applies when a hall has no rate of its own.
const DefaultHourlyRate = 1500.00

// Pricer computes the total price of a booking. Quote is total: given valid,
// ordered start/end times it always produces a price. Different halls may
// price differently, so the engine is pluggable.
type Pricer interface {
	Quote(ctx context.Context, hallID string, start, end time.Time) float64
}

// HourlyRatePricer prices a booking as duration in hours times the hall's
// hourly rate.
type HourlyRatePricer struct {
	Halls       repository.HallRepository
	DefaultRate float64
}

// NewHourlyRatePricer returns a pricer over the hall catalog.
func NewHourlyRatePricer(halls repository.HallRepository) *HourlyRatePricer {
	return &HourlyRatePricer{Halls: halls, DefaultRate: DefaultHourlyRate}
}

func (p *HourlyRatePricer) Quote(ctx context.Context, hallID string, start, end time.Time) float64 {
	rate := p.DefaultRate
	if p.Halls != nil {
		if h, err := p.Halls.GetByID(ctx, hallID); err == nil && h.HourlyRate > 0 {
			rate = h.HourlyRate
		}
	}
	hours := end.Sub(start).Hours()
	return hours * rate
}
