package schedule

import (
	"context"
	"fmt"

	"github.com/iono-such-things/hvac-ai-secretary/database/repository/blocks"
	"github.com/iono-such-things/hvac-ai-secretary/models"
)

// AvailabilityEngine answers which start hours are bookable on a date.
type AvailabilityEngine interface {
	AvailableSlots(ctx context.Context, date string) ([]models.Slot, error)
	IsBookable(ctx context.Context, date string, hour int) (bool, error)
}

// DefaultAvailabilityEngine combines the business-hours table with the
// block repository. It recomputes from current state on every call and
// imposes no forward horizon; which dates are even offered is the
// presentation layer's concern.
type DefaultAvailabilityEngine struct {
	Hours  BusinessHours
	Blocks blocks.Repository
}

// AvailableSlots returns the 1-hour slots for a date in increasing hour
// order. A closed day or a fully-blocked date yields an empty slice.
// Listing granularity is always one hour regardless of how long an
// appointment runs; a longer appointment still starts on any free hour.
func (e *DefaultAvailabilityEngine) AvailableSlots(ctx context.Context, date string) ([]models.Slot, error) {
	dow, err := Weekday(date)
	if err != nil {
		return nil, err
	}

	hours := e.Hours.HoursFor(dow)
	if hours == nil {
		return []models.Slot{}, nil
	}

	state, err := e.Blocks.State(ctx)
	if err != nil {
		return nil, fmt.Errorf("availability: load block state: %w", err)
	}
	if state.DateBlocked(date) {
		return []models.Slot{}, nil
	}

	slots := make([]models.Slot, 0, hours.Close-hours.Open)
	for h := hours.Open; h < hours.Close; h++ {
		slots = append(slots, models.Slot{
			Hour:      h,
			Available: !state.HourBlocked(date, h),
		})
	}
	return slots, nil
}

// IsBookable reports whether the specific (date, hour) is currently
// bookable: an operating hour on an open day with no block against it.
func (e *DefaultAvailabilityEngine) IsBookable(ctx context.Context, date string, hour int) (bool, error) {
	dow, err := Weekday(date)
	if err != nil {
		return false, err
	}
	hours := e.Hours.HoursFor(dow)
	if hours == nil || hour < hours.Open || hour >= hours.Close {
		return false, nil
	}
	state, err := e.Blocks.State(ctx)
	if err != nil {
		return false, fmt.Errorf("availability: load block state: %w", err)
	}
	return !state.DateBlocked(date) && !state.HourBlocked(date, hour), nil
}
