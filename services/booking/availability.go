package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"photostudio/models"
)

// slotStep is the granularity of the availability grid.
const slotStep = 15 * time.Minute

// Availability walks [startDate, endDate) in 15-minute slots for the given
// hall, or every catalog hall when hallID is empty. A slot is unavailable iff
// an occupying booking (pending_payment or confirmed) overlaps it. A booking
// with a malformed stored time range is skipped rather than failing the scan.
func (s *DefaultBookingService) Availability(ctx context.Context, hallID string, startDate, endDate time.Time) ([]models.Slot, error) {
	hallIDs, err := s.resolveHalls(ctx, hallID)
	if err != nil {
		return nil, err
	}

	occupied, err := s.occupiedRanges(ctx, hallIDs)
	if err != nil {
		return nil, err
	}

	var slots []models.Slot
	cursor := startDate.Truncate(time.Hour)
	for cursor.Before(endDate) {
		slotEnd := cursor.Add(slotStep)
		for _, hid := range hallIDs {
			available := true
			for _, r := range occupied[hid] {
				// Half-open overlap: touching edges do not collide.
				if !(slotEnd.Before(r.start) || slotEnd.Equal(r.start) ||
					cursor.After(r.end) || cursor.Equal(r.end)) {
					available = false
					break
				}
			}
			slots = append(slots, models.Slot{
				HallID:    hid,
				StartTime: cursor,
				EndTime:   slotEnd,
				Available: available,
			})
		}
		cursor = slotEnd
	}
	return slots, nil
}

type timeRange struct {
	start, end time.Time
}

func (s *DefaultBookingService) resolveHalls(ctx context.Context, hallID string) ([]string, error) {
	if hallID != "" {
		return []string{hallID}, nil
	}
	halls, err := s.Halls.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list halls: %w", err)
	}
	ids := make([]string, 0, len(halls))
	for _, h := range halls {
		ids = append(ids, h.HallID)
	}
	return ids, nil
}

// occupiedRanges collects the occupying time ranges per hall, dropping
// records whose stored times cannot be trusted.
func (s *DefaultBookingService) occupiedRanges(ctx context.Context, hallIDs []string) (map[string][]timeRange, error) {
	wanted := make(map[string]bool, len(hallIDs))
	for _, id := range hallIDs {
		wanted[id] = true
	}

	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	occupied := make(map[string][]timeRange)
	for _, b := range all {
		if !wanted[b.HallID] || !b.Occupying() {
			continue
		}
		if b.StartTime.IsZero() || b.EndTime.IsZero() || !b.EndTime.After(b.StartTime) {
			s.Logger.Warn("skipping booking with malformed time range",
				zap.String("booking_id", b.BookingID),
			)
			continue
		}
		occupied[b.HallID] = append(occupied[b.HallID], timeRange{start: b.StartTime, end: b.EndTime})
	}
	return occupied, nil
}
