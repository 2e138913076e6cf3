package schedule

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/iono-such-things/hvac-ai-secretary/database/repository/blocks"
)

func newTestEngine(t *testing.T) (*DefaultAvailabilityEngine, blocks.Repository) {
	t.Helper()
	repo := blocks.NewFileRepo(filepath.Join(t.TempDir(), "blocked.json"))
	return &DefaultAvailabilityEngine{
		Hours:  DefaultBusinessHours(),
		Blocks: repo,
	}, repo
}

func TestAvailableSlotsSaturday(t *testing.T) {
	engine, _ := newTestEngine(t)

	// 2024-06-08 is a Saturday, 8am-5pm.
	slots, err := engine.AvailableSlots(context.Background(), "2024-06-08")
	if err != nil {
		t.Fatalf("AvailableSlots failed: %v", err)
	}
	if len(slots) != 9 {
		t.Fatalf("expected 9 slots, got %d", len(slots))
	}
	for i, s := range slots {
		if s.Hour != 8+i {
			t.Errorf("slot %d: expected hour %d, got %d", i, 8+i, s.Hour)
		}
		if !s.Available {
			t.Errorf("hour %d: expected available", s.Hour)
		}
	}
}

func TestAvailableSlotsWeekday(t *testing.T) {
	engine, _ := newTestEngine(t)

	slots, err := engine.AvailableSlots(context.Background(), "2024-06-10")
	if err != nil {
		t.Fatalf("AvailableSlots failed: %v", err)
	}
	if len(slots) != 12 {
		t.Fatalf("expected 12 slots for a Monday, got %d", len(slots))
	}
	if slots[0].Hour != 7 || slots[11].Hour != 18 {
		t.Errorf("expected hours 7..18, got %d..%d", slots[0].Hour, slots[11].Hour)
	}
}

func TestAvailableSlotsClosedDay(t *testing.T) {
	engine, _ := newTestEngine(t)

	slots, err := engine.AvailableSlots(context.Background(), "2024-06-09")
	if err != nil {
		t.Fatalf("AvailableSlots failed: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots on Sunday, got %d", len(slots))
	}
}

func TestAvailableSlotsBlockedDate(t *testing.T) {
	engine, repo := newTestEngine(t)
	ctx := context.Background()

	if err := repo.BlockDate(ctx, "2024-06-10"); err != nil {
		t.Fatal(err)
	}
	slots, err := engine.AvailableSlots(ctx, "2024-06-10")
	if err != nil {
		t.Fatalf("AvailableSlots failed: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots on a blocked date, got %d", len(slots))
	}
}

func TestAvailableSlotsBlockedHour(t *testing.T) {
	engine, repo := newTestEngine(t)
	ctx := context.Background()

	if err := repo.BlockSlot(ctx, "2024-06-10", 9); err != nil {
		t.Fatal(err)
	}
	slots, err := engine.AvailableSlots(ctx, "2024-06-10")
	if err != nil {
		t.Fatalf("AvailableSlots failed: %v", err)
	}
	for _, s := range slots {
		want := s.Hour != 9
		if s.Available != want {
			t.Errorf("hour %d: available = %v, want %v", s.Hour, s.Available, want)
		}
	}
}

func TestAvailableSlotsInvalidDate(t *testing.T) {
	engine, _ := newTestEngine(t)

	if _, err := engine.AvailableSlots(context.Background(), "june 10"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestIsBookable(t *testing.T) {
	engine, repo := newTestEngine(t)
	ctx := context.Background()

	cases := []struct {
		name string
		date string
		hour int
		want bool
	}{
		{"open weekday hour", "2024-06-10", 9, true},
		{"before opening", "2024-06-10", 6, false},
		{"closing hour", "2024-06-10", 19, false},
		{"sunday", "2024-06-09", 10, false},
		{"saturday early", "2024-06-08", 7, false},
	}
	for _, tc := range cases {
		got, err := engine.IsBookable(ctx, tc.date, tc.hour)
		if err != nil {
			t.Fatalf("%s: IsBookable failed: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: IsBookable = %v, want %v", tc.name, got, tc.want)
		}
	}

	if err := repo.BlockSlot(ctx, "2024-06-10", 9); err != nil {
		t.Fatal(err)
	}
	got, err := engine.IsBookable(ctx, "2024-06-10", 9)
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Error("expected blocked hour not bookable")
	}
}
