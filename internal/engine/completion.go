package engine

import (
	"context"

	"github.com/sebasblancogonz/bulkup/internal/ledger"
	"github.com/sebasblancogonz/bulkup/internal/models"
)

// CompletedSets counts how many of the exercise's sets have a weight logged
// for the current week. Pure read over the cache, no I/O.
func (e *Engine) CompletedSets(day string, exerciseIndex int, exerciseName string, totalSets int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	week := e.currentWeekLocked()
	planID := e.planIDLocked()

	count := 0
	for i := 0; i < totalSets; i++ {
		k := ledger.NewKey(planID, day, exerciseIndex, exerciseName, i, week)
		if _, ok := e.cache.MigrateLegacyRead(k, k.LegacyStrings()); ok {
			count++
		}
	}
	return count
}

// HasWeightForExercise reports whether at least one set has a weight.
func (e *Engine) HasWeightForExercise(day string, exerciseIndex int, exerciseName string, totalSets int) bool {
	return e.CompletedSets(day, exerciseIndex, exerciseName, totalSets) > 0
}

// Progress is the completed-set ratio in [0, 1].
func (e *Engine) Progress(day string, exerciseIndex int, exerciseName string, totalSets int) float64 {
	if totalSets <= 0 {
		return 0
	}
	return float64(e.CompletedSets(day, exerciseIndex, exerciseName, totalSets)) / float64(totalSets)
}

// RecordFor loads the stored record behind an exercise of the current week,
// mainly so presentation code can show its needs-sync state. Nil when the
// exercise was never saved.
func (e *Engine) RecordFor(ctx context.Context, day string, exerciseIndex int, exerciseName string) (*models.WeightRecord, error) {
	if err := e.bindPlan(ctx); err != nil {
		return nil, err
	}

	e.mu.Lock()
	id := models.RecordIdentity{
		UserID:        e.userID,
		PlanID:        e.planIDLocked(),
		Day:           day,
		ExerciseIndex: exerciseIndex,
		ExerciseName:  exerciseName,
		WeekStart:     e.currentWeekLocked(),
	}
	e.mu.Unlock()

	return e.store.FindByIdentity(ctx, id)
}
