package schedule

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/iono-such-things/hvac-ai-secretary/database/repository/blocks"
	"github.com/iono-such-things/hvac-ai-secretary/models"
	"github.com/iono-such-things/hvac-ai-secretary/services/calendar"
	"github.com/iono-such-things/hvac-ai-secretary/utils"
)

// ErrConflict is returned by TryReserve when the slot is no longer
// available. It aliases the repository's sentinel so both the atomic
// registry path and the calendar path report conflicts uniformly.
var ErrConflict = blocks.ErrSlotTaken

// ConflictGuard atomically verifies that a slot is free and marks it
// taken before any other booking side effect proceeds.
type ConflictGuard interface {
	TryReserve(ctx context.Context, req models.BookingRequest) error
}

// DefaultConflictGuard reserves against whichever authority is
// configured. Availability is re-derived here at reservation time, never
// trusted from an earlier listing: time passes while a visitor fills the
// form, and the listing may be stale.
type DefaultConflictGuard struct {
	Hours  BusinessHours
	Blocks blocks.Repository
	// Calendar, when non-nil and connected with UseCalendar set, is the
	// authority instead of the block repository.
	Calendar    calendar.Authority
	UseCalendar bool

	// calMu serializes the calendar check-then-insert, which is two
	// network calls rather than one atomic update.
	calMu sync.Mutex
}

// TryReserve returns nil once the slot is durably marked unavailable,
// ErrConflict when it is already taken, and any other error when the
// marking act itself failed (the slot then remains available).
func (g *DefaultConflictGuard) TryReserve(ctx context.Context, req models.BookingRequest) error {
	date := req.Date
	hour := *req.Slot

	dow, err := Weekday(date)
	if err != nil {
		return fmt.Errorf("reserve: %w", err)
	}
	hours := g.Hours.HoursFor(dow)
	if hours == nil || hour < hours.Open || hour >= hours.Close {
		return ErrConflict
	}

	if g.UseCalendar && g.Calendar != nil && g.Calendar.Connected() {
		return g.reserveOnCalendar(ctx, req, date, hour)
	}

	// The registry's ReserveSlot is a single exclusive check-and-mark, so
	// of two concurrent attempts for the same (date, hour) at most one
	// returns nil.
	return g.Blocks.ReserveSlot(ctx, date, hour)
}

// reserveOnCalendar treats the external calendar as ground truth. The
// local registry is not kept in sync; a local block that disagrees with
// the calendar is logged and tolerated.
func (g *DefaultConflictGuard) reserveOnCalendar(ctx context.Context, req models.BookingRequest, date string, hour int) error {
	logger := utils.GetLogger()

	g.calMu.Lock()
	defer g.calMu.Unlock()

	busy, err := g.Calendar.CheckConflict(ctx, date, hour)
	if err != nil {
		return fmt.Errorf("reserve: calendar conflict check: %w", err)
	}
	if busy {
		return ErrConflict
	}

	if _, err := g.Calendar.Reserve(ctx, req); err != nil {
		return fmt.Errorf("reserve: calendar event: %w", err)
	}

	if state, stErr := g.Blocks.State(ctx); stErr == nil {
		if state.DateBlocked(date) || state.HourBlocked(date, hour) {
			logger.Warn("local block registry disagrees with calendar authority",
				zap.String("date", date), zap.Int("hour", hour))
		}
	}
	return nil
}
