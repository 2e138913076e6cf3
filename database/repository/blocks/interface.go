package blocks

import (
	"context"
	"errors"

	"github.com/iono-such-things/hvac-ai-secretary/models"
)

// ErrSlotTaken is returned by ReserveSlot when the date is fully blocked
// or the hour is already marked unavailable.
var ErrSlotTaken = errors.New("slot already blocked")

// Repository is the single source of truth for locally-tracked
// availability overrides. Every mutating operation is idempotent and
// persists before returning; persistence failures surface as errors
// rather than being swallowed.
type Repository interface {
	// State returns the current persisted block state. Missing or corrupt
	// storage yields the empty state, never an error: absence of prior
	// blocks is indistinguishable from first run.
	State(ctx context.Context) (models.BlockState, error)

	BlockDate(ctx context.Context, date string) error
	// UnblockDate removes the whole-day block and deletes any per-hour
	// entries recorded for the same date.
	UnblockDate(ctx context.Context, date string) error
	BlockSlot(ctx context.Context, date string, hour int) error
	// UnblockSlot removes the hour; when the date's hour set becomes
	// empty the date key itself is deleted.
	UnblockSlot(ctx context.Context, date string, hour int) error

	// ReserveSlot atomically checks that (date, hour) is not blocked and
	// marks it blocked. It returns ErrSlotTaken when another reservation
	// or an administrative block got there first. The check and the mark
	// are one exclusive step: two concurrent calls for the same pair
	// cannot both succeed.
	ReserveSlot(ctx context.Context, date string, hour int) error
}
