package calendar

import (
	"context"

	"github.com/iono-such-things/hvac-ai-secretary/models"
)

// Authority is the external calendar consulted for availability. It is
// an optional collaborator: resolved once at startup and passed down,
// with callers branching on Connected rather than probing for failures.
type Authority interface {
	// Connected reports whether the calendar has been authorized.
	Connected() bool
	// CheckConflict reports whether an appointment already occupies the
	// start hour on the date.
	CheckConflict(ctx context.Context, date string, hour int) (bool, error)
	// Reserve creates the calendar event marking the slot taken and
	// returns a link to it.
	Reserve(ctx context.Context, req models.BookingRequest) (string, error)
}
