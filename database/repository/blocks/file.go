package blocks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/iono-such-things/hvac-ai-secretary/models"
)

// FileRepo persists the block state as a JSON document on disk. All
// operations, reads included, run behind one process-wide mutex so every
// load-check-write cycle is serialized; this is the exclusivity
// discipline ReserveSlot relies on.
type FileRepo struct {
	path string
	mu   sync.Mutex
}

// NewFileRepo returns a file-backed block repository rooted at path.
func NewFileRepo(path string) *FileRepo {
	return &FileRepo{path: path}
}

func (r *FileRepo) State(ctx context.Context) (models.BlockState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(), nil
}

func (r *FileRepo) BlockDate(ctx context.Context, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.load()
	if state.DateBlocked(date) {
		return nil
	}
	state.Dates = append(state.Dates, date)
	sort.Strings(state.Dates)
	return r.save(state)
}

func (r *FileRepo) UnblockDate(ctx context.Context, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.load()
	kept := state.Dates[:0]
	for _, d := range state.Dates {
		if d != date {
			kept = append(kept, d)
		}
	}
	state.Dates = kept
	// Removing an all-day block also clears any per-hour entries so no
	// orphaned state is left behind.
	delete(state.Slots, date)
	return r.save(state)
}

func (r *FileRepo) BlockSlot(ctx context.Context, date string, hour int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.load()
	if state.HourBlocked(date, hour) {
		return nil
	}
	state.Slots[date] = append(state.Slots[date], hour)
	sort.Ints(state.Slots[date])
	return r.save(state)
}

func (r *FileRepo) UnblockSlot(ctx context.Context, date string, hour int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.load()
	hours, ok := state.Slots[date]
	if !ok {
		return nil
	}
	kept := hours[:0]
	for _, h := range hours {
		if h != hour {
			kept = append(kept, h)
		}
	}
	if len(kept) == 0 {
		delete(state.Slots, date)
	} else {
		state.Slots[date] = kept
	}
	return r.save(state)
}

func (r *FileRepo) ReserveSlot(ctx context.Context, date string, hour int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.load()
	if state.DateBlocked(date) || state.HourBlocked(date, hour) {
		return ErrSlotTaken
	}
	state.Slots[date] = append(state.Slots[date], hour)
	sort.Ints(state.Slots[date])
	return r.save(state)
}

// load reads the persisted state; missing or unreadable storage yields
// the empty state. Callers must hold the mutex.
func (r *FileRepo) load() models.BlockState {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return models.EmptyBlockState()
	}
	var state models.BlockState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.EmptyBlockState()
	}
	if state.Version == 0 {
		// Legacy unversioned document; the field set is identical.
		state.Version = models.BlockStateVersion
	}
	if state.Dates == nil {
		state.Dates = []string{}
	}
	if state.Slots == nil {
		state.Slots = map[string][]int{}
	}
	return state
}

// save writes the state back to disk. Callers must hold the mutex.
func (r *FileRepo) save(state models.BlockState) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("block store: create dir: %w", err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("block store: encode state: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("block store: write state: %w", err)
	}
	return nil
}
