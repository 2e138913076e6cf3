package blocks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func newTestRepo(t *testing.T) *FileRepo {
	t.Helper()
	return NewFileRepo(filepath.Join(t.TempDir(), "blocked.json"))
}

func TestStateMissingFile(t *testing.T) {
	repo := newTestRepo(t)

	state, err := repo.State(context.Background())
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}
	if len(state.Dates) != 0 || len(state.Slots) != 0 {
		t.Fatalf("expected empty state, got %+v", state)
	}
	if state.Version != 1 {
		t.Errorf("expected version 1, got %d", state.Version)
	}
}

func TestStateCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocked.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	repo := NewFileRepo(path)

	state, err := repo.State(context.Background())
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}
	if len(state.Dates) != 0 || len(state.Slots) != 0 {
		t.Fatalf("expected empty state for corrupt file, got %+v", state)
	}
}

func TestStateLegacyUnversioned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocked.json")
	legacy := `{"dates":["2024-06-10"],"slots":{"2024-06-11":[9,14]}}`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}
	repo := NewFileRepo(path)

	state, err := repo.State(context.Background())
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}
	if state.Version != 1 {
		t.Errorf("expected legacy document read as version 1, got %d", state.Version)
	}
	if !state.DateBlocked("2024-06-10") {
		t.Error("expected 2024-06-10 blocked")
	}
	if !state.HourBlocked("2024-06-11", 14) {
		t.Error("expected hour 14 blocked on 2024-06-11")
	}
}

func TestBlockDateIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.BlockDate(ctx, "2024-06-10"); err != nil {
		t.Fatalf("BlockDate failed: %v", err)
	}
	if err := repo.BlockDate(ctx, "2024-06-10"); err != nil {
		t.Fatalf("second BlockDate failed: %v", err)
	}

	state, _ := repo.State(ctx)
	if len(state.Dates) != 1 {
		t.Fatalf("expected 1 blocked date, got %v", state.Dates)
	}
}

func TestUnblockDateClearsSlots(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.BlockDate(ctx, "2024-06-10"); err != nil {
		t.Fatal(err)
	}
	if err := repo.BlockSlot(ctx, "2024-06-10", 9); err != nil {
		t.Fatal(err)
	}

	if err := repo.UnblockDate(ctx, "2024-06-10"); err != nil {
		t.Fatalf("UnblockDate failed: %v", err)
	}

	state, _ := repo.State(ctx)
	if state.DateBlocked("2024-06-10") {
		t.Error("date still blocked after unblock")
	}
	if _, ok := state.Slots["2024-06-10"]; ok {
		t.Error("per-hour entries not cleared with the all-day block")
	}
}

func TestBlockSlotRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.BlockSlot(ctx, "2024-06-10", 9); err != nil {
		t.Fatalf("BlockSlot failed: %v", err)
	}
	if err := repo.BlockSlot(ctx, "2024-06-10", 9); err != nil {
		t.Fatalf("second BlockSlot failed: %v", err)
	}

	state, _ := repo.State(ctx)
	if got := state.Slots["2024-06-10"]; len(got) != 1 || got[0] != 9 {
		t.Fatalf("expected [9], got %v", got)
	}

	if err := repo.UnblockSlot(ctx, "2024-06-10", 9); err != nil {
		t.Fatalf("UnblockSlot failed: %v", err)
	}
	state, _ = repo.State(ctx)
	if _, ok := state.Slots["2024-06-10"]; ok {
		t.Error("date key should be removed once its hour set is empty")
	}

	// Unblocking again is a no-op.
	if err := repo.UnblockSlot(ctx, "2024-06-10", 9); err != nil {
		t.Fatalf("repeat UnblockSlot failed: %v", err)
	}
}

func TestUnblockSlotKeepsRemainingHours(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, h := range []int{9, 14} {
		if err := repo.BlockSlot(ctx, "2024-06-10", h); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.UnblockSlot(ctx, "2024-06-10", 9); err != nil {
		t.Fatal(err)
	}

	state, _ := repo.State(ctx)
	if got := state.Slots["2024-06-10"]; len(got) != 1 || got[0] != 14 {
		t.Fatalf("expected [14], got %v", got)
	}
}

func TestReserveSlot(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.ReserveSlot(ctx, "2024-06-10", 9); err != nil {
		t.Fatalf("first ReserveSlot failed: %v", err)
	}
	if err := repo.ReserveSlot(ctx, "2024-06-10", 9); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestReserveSlotOnBlockedDate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.BlockDate(ctx, "2024-06-10"); err != nil {
		t.Fatal(err)
	}
	if err := repo.ReserveSlot(ctx, "2024-06-10", 9); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken on blocked date, got %v", err)
	}
}

func TestReserveSlotConcurrent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const attempts = 16
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = repo.ReserveSlot(ctx, "2024-06-10", 9)
		}(i)
	}
	wg.Wait()

	reserved := 0
	for _, err := range results {
		switch {
		case err == nil:
			reserved++
		case errors.Is(err, ErrSlotTaken):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if reserved != 1 {
		t.Fatalf("expected exactly one successful reservation, got %d", reserved)
	}
}
