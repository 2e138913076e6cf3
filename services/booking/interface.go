package booking

import (
	"context"

	"github.com/iono-such-things/hvac-ai-secretary/models"
	"github.com/iono-such-things/hvac-ai-secretary/services/schedule"
)

// BookingService is the public entry point for visitor submissions.
type BookingService interface {
	Submit(ctx context.Context, req models.BookingRequest) models.BookingOutcome
}

// SideEffects dispatches the notifications that follow a confirmed
// submission: owner/customer email, optional calendar event, optional
// database record, optional partner webhook. Dispatch is fire-and-
// continue; individual failures are observable in logs but never change
// the booking outcome.
type SideEffects interface {
	BookingConfirmed(ctx context.Context, req models.BookingRequest)
	CallbackRequested(ctx context.Context, req models.BookingRequest)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Hours   schedule.BusinessHours
	Guard   schedule.ConflictGuard
	Effects SideEffects
}
