package models

import (
	"sort"
	"time"
)

// WeightEntry is a single logged set: which set of the exercise it was,
// how much weight and how many reps. A weight of 0 means "not filled in yet".
type WeightEntry struct {
	SetNumber int     `json:"set_number"`
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
}

// WeightRecord aggregates all sets of one exercise for one training week.
// It is the unit of durable storage and of remote sync.
type WeightRecord struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	PlanID        string        `json:"plan_id"`
	Day           string        `json:"day"`
	ExerciseName  string        `json:"exercise_name"`
	ExerciseIndex int           `json:"exercise_index"`
	WeekStart     string        `json:"week_start"` // YYYY-MM-DD, always a Monday.
	Sets          []WeightEntry `json:"sets"`
	Note          string        `json:"note"`
	NeedsSync     bool          `json:"needs_sync"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// RecordIdentity is the tuple that uniquely identifies a WeightRecord.
// The local store keeps at most one record per identity.
type RecordIdentity struct {
	UserID        string
	PlanID        string
	Day           string
	ExerciseIndex int
	ExerciseName  string
	WeekStart     string
}

func (r *WeightRecord) Identity() RecordIdentity {
	return RecordIdentity{
		UserID:        r.UserID,
		PlanID:        r.PlanID,
		Day:           r.Day,
		ExerciseIndex: r.ExerciseIndex,
		ExerciseName:  r.ExerciseName,
		WeekStart:     r.WeekStart,
	}
}

// SortedSets returns the record's sets ordered by set number. The sort is
// stable, so entries sharing a set number (or imported without one) keep
// their original list position.
func (r *WeightRecord) SortedSets() []WeightEntry {
	sets := make([]WeightEntry, len(r.Sets))
	copy(sets, r.Sets)
	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].SetNumber < sets[j].SetNumber
	})
	return sets
}
