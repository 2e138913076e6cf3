package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/iono-such-things/hvac-ai-secretary/models"
	"github.com/iono-such-things/hvac-ai-secretary/services/schedule"
)

type fakeGuard struct {
	err   error
	calls int
}

func (g *fakeGuard) TryReserve(_ context.Context, _ models.BookingRequest) error {
	g.calls++
	return g.err
}

type fakeEffects struct {
	confirmed int
	callbacks int
}

func (e *fakeEffects) BookingConfirmed(_ context.Context, _ models.BookingRequest) {
	e.confirmed++
}

func (e *fakeEffects) CallbackRequested(_ context.Context, _ models.BookingRequest) {
	e.callbacks++
}

func newTestService(guard *fakeGuard, effects *fakeEffects) *DefaultBookingService {
	return &DefaultBookingService{
		Hours:   schedule.DefaultBusinessHours(),
		Guard:   guard,
		Effects: effects,
	}
}

func bookingReq(date string, hour int) models.BookingRequest {
	return models.BookingRequest{
		Type:    models.RequestBooking,
		Name:    "Pat Winters",
		Phone:   "555-0142",
		Email:   "pat@example.com",
		Service: "Furnace Tune-Up",
		Date:    date,
		Slot:    &hour,
	}
}

func TestSubmitConfirmed(t *testing.T) {
	guard := &fakeGuard{}
	effects := &fakeEffects{}
	svc := newTestService(guard, effects)

	out := svc.Submit(context.Background(), bookingReq("2024-06-10", 9))
	if out.Status != models.OutcomeConfirmed {
		t.Fatalf("expected confirmed, got %s (%s)", out.Status, out.Reason)
	}
	if out.Date != "2024-06-10" || out.Hour != 9 {
		t.Errorf("outcome did not echo the slot: %+v", out)
	}
	if guard.calls != 1 {
		t.Errorf("expected one reservation attempt, got %d", guard.calls)
	}
	if effects.confirmed != 1 {
		t.Errorf("expected confirmation side effects, got %d", effects.confirmed)
	}
}

func TestSubmitConflict(t *testing.T) {
	guard := &fakeGuard{err: schedule.ErrConflict}
	effects := &fakeEffects{}
	svc := newTestService(guard, effects)

	out := svc.Submit(context.Background(), bookingReq("2024-06-10", 9))
	if out.Status != models.OutcomeConflict {
		t.Fatalf("expected conflict, got %s", out.Status)
	}
	if effects.confirmed != 0 {
		t.Error("no side effects may fire on a conflict")
	}
}

func TestSubmitReserveFailure(t *testing.T) {
	guard := &fakeGuard{err: errors.New("disk full")}
	effects := &fakeEffects{}
	svc := newTestService(guard, effects)

	out := svc.Submit(context.Background(), bookingReq("2024-06-10", 9))
	if out.Status != models.OutcomeFailed {
		t.Fatalf("expected failed, got %s", out.Status)
	}
	if out.Reason == "" {
		t.Error("expected a reason on failure")
	}
	if effects.confirmed != 0 {
		t.Error("no side effects may fire when the reservation did not persist")
	}
}

func TestSubmitCallback(t *testing.T) {
	guard := &fakeGuard{}
	effects := &fakeEffects{}
	svc := newTestService(guard, effects)

	out := svc.Submit(context.Background(), models.BookingRequest{
		Type:     models.RequestCallback,
		Name:     "Pat Winters",
		Phone:    "555-0142",
		Service:  "No Heat",
		BestTime: "mornings",
	})
	if out.Status != models.OutcomeConfirmed {
		t.Fatalf("expected confirmed, got %s (%s)", out.Status, out.Reason)
	}
	if guard.calls != 0 {
		t.Error("a callback request must not reserve a slot")
	}
	if effects.callbacks != 1 {
		t.Errorf("expected callback side effects, got %d", effects.callbacks)
	}
}

func TestSubmitRejected(t *testing.T) {
	hour := 9
	sunday := 10
	closingHour := 19

	cases := []struct {
		name string
		req  models.BookingRequest
	}{
		{"missing name", models.BookingRequest{Type: models.RequestBooking, Phone: "555-0142", Service: "AC Repair", Date: "2024-06-10", Slot: &hour}},
		{"missing phone", models.BookingRequest{Type: models.RequestBooking, Name: "Pat", Service: "AC Repair", Date: "2024-06-10", Slot: &hour}},
		{"missing service", models.BookingRequest{Type: models.RequestBooking, Name: "Pat", Phone: "555-0142", Date: "2024-06-10", Slot: &hour}},
		{"bad date", models.BookingRequest{Type: models.RequestBooking, Name: "Pat", Phone: "555-0142", Service: "AC Repair", Date: "06/10/2024", Slot: &hour}},
		{"missing slot", models.BookingRequest{Type: models.RequestBooking, Name: "Pat", Phone: "555-0142", Service: "AC Repair", Date: "2024-06-10"}},
		{"closed day", models.BookingRequest{Type: models.RequestBooking, Name: "Pat", Phone: "555-0142", Service: "AC Repair", Date: "2024-06-09", Slot: &sunday}},
		{"outside hours", models.BookingRequest{Type: models.RequestBooking, Name: "Pat", Phone: "555-0142", Service: "AC Repair", Date: "2024-06-10", Slot: &closingHour}},
	}

	for _, tc := range cases {
		guard := &fakeGuard{}
		effects := &fakeEffects{}
		svc := newTestService(guard, effects)

		out := svc.Submit(context.Background(), tc.req)
		if out.Status != models.OutcomeRejected {
			t.Errorf("%s: expected rejected, got %s", tc.name, out.Status)
		}
		if out.Reason == "" {
			t.Errorf("%s: expected a reason", tc.name)
		}
		if guard.calls != 0 || effects.confirmed != 0 || effects.callbacks != 0 {
			t.Errorf("%s: rejected request must not touch guard or effects", tc.name)
		}
	}
}
