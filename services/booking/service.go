package booking

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/iono-such-things/hvac-ai-secretary/models"
	"github.com/iono-such-things/hvac-ai-secretary/services/schedule"
	"github.com/iono-such-things/hvac-ai-secretary/utils"
)

// Submit validates a submission, reserves the slot when one is
// requested, and dispatches notifications. The reservation is durable
// before this returns: notification latency never gates the outcome,
// and no notification fires for a conflicting or rejected request.
func (s *DefaultBookingService) Submit(ctx context.Context, req models.BookingRequest) models.BookingOutcome {
	logger := utils.GetLogger()

	if err := s.validate(req); err != nil {
		return models.BookingOutcome{
			Status: models.OutcomeRejected,
			Reason: err.(*BookingError).Message,
		}
	}

	if req.IsCallback() {
		s.Effects.CallbackRequested(ctx, req)
		return models.BookingOutcome{Status: models.OutcomeConfirmed}
	}

	date, hour := req.Date, *req.Slot

	if err := s.Guard.TryReserve(ctx, req); err != nil {
		if errors.Is(err, schedule.ErrConflict) {
			// Routine: the slot went away while the visitor filled the
			// form. No side effects fire.
			return models.BookingOutcome{
				Status: models.OutcomeConflict,
				Date:   date,
				Hour:   hour,
			}
		}
		logger.Error("reservation failed",
			zap.String("date", date), zap.Int("hour", hour), zap.Error(err))
		return models.BookingOutcome{
			Status: models.OutcomeFailed,
			Date:   date,
			Hour:   hour,
			Reason: "could not reserve the slot",
		}
	}

	s.Effects.BookingConfirmed(ctx, req)

	return models.BookingOutcome{
		Status: models.OutcomeConfirmed,
		Date:   date,
		Hour:   hour,
	}
}

// validate rejects a submission before any state is touched.
func (s *DefaultBookingService) validate(req models.BookingRequest) error {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Phone) == "" ||
		strings.TrimSpace(req.Service) == "" {
		return NewValidationError("name, phone, and service are required")
	}

	if req.IsCallback() {
		return nil
	}

	if !schedule.ValidDate(req.Date) {
		return NewValidationError("date must be YYYY-MM-DD")
	}
	if req.Slot == nil {
		return NewValidationError("slot hour is required")
	}

	dow, err := schedule.Weekday(req.Date)
	if err != nil {
		return NewValidationError("date must be YYYY-MM-DD")
	}
	hours := s.Hours.HoursFor(dow)
	if hours == nil {
		return NewValidationError("we are closed on the requested day")
	}
	if *req.Slot < hours.Open || *req.Slot >= hours.Close {
		return NewValidationError("slot hour is outside operating hours")
	}
	return nil
}
