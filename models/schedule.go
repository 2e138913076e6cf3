package models

// OperatingHours is the open/close window for one day of the week, as
// whole hours on a 24h clock. The window is half-open: a slot may start
// at any hour in [Open, Close).
type OperatingHours struct {
	Open  int `json:"open"`
	Close int `json:"close"`
}

// Slot is a single bookable start-hour on a given date.
type Slot struct {
	Hour      int  `json:"hour"`
	Available bool `json:"available"`
}

// BlockStateVersion is the current shape of the persisted block state.
// Version 1 matches the original unversioned blocked.json layout, so
// documents without a version field are read as version 1.
const BlockStateVersion = 1

// BlockState is the persisted set of administrative availability
// overrides: whole blocked dates and per-date blocked start hours.
// A date present in Dates makes every hour on it unavailable regardless
// of what Slots holds for that date.
type BlockState struct {
	Version int              `bson:"version" json:"version"`
	Dates   []string         `bson:"dates" json:"dates"`
	Slots   map[string][]int `bson:"slots" json:"slots"`
}

// EmptyBlockState returns the state used when no prior blocks exist.
// First run and missing storage are indistinguishable.
func EmptyBlockState() BlockState {
	return BlockState{
		Version: BlockStateVersion,
		Dates:   []string{},
		Slots:   map[string][]int{},
	}
}

// DateBlocked reports whether the whole date is blocked.
func (s BlockState) DateBlocked(date string) bool {
	for _, d := range s.Dates {
		if d == date {
			return true
		}
	}
	return false
}

// HourBlocked reports whether the specific start hour is blocked on date.
func (s BlockState) HourBlocked(date string, hour int) bool {
	for _, h := range s.Slots[date] {
		if h == hour {
			return true
		}
	}
	return false
}
