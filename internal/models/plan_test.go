package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebasblancogonz/bulkup/internal/models"
)

func TestPlanExercise_TargetReps(t *testing.T) {
	tests := []struct {
		spec string
		want int
	}{
		{"8-12", 12},
		{"10", 10},
		{"", 0},
		{"5-5", 5},
		{" 6 - 8 ", 8},
		{"AMRAP", 0},
		{"3x5", 0},
	}
	for _, tc := range tests {
		ex := models.PlanExercise{Reps: tc.spec}
		assert.Equal(t, tc.want, ex.TargetReps(), "spec %q", tc.spec)
	}
}

func TestTrainingPlan_FindExercise(t *testing.T) {
	plan := &models.TrainingPlan{
		ID: "plan1",
		Days: []models.PlanDay{
			{
				Day: "lunes",
				Exercises: []models.PlanExercise{
					{Name: "Sentadilla", OrderIndex: 0, Sets: 3, Reps: "8-12"},
					{Name: "Peso Muerto", OrderIndex: 1, Sets: 3, Reps: "5"},
				},
			},
		},
	}

	ex, ok := plan.FindExercise("lunes", 0, "Sentadilla")
	require.True(t, ok)
	assert.Equal(t, 3, ex.Sets)

	// Day and name matching is case-insensitive.
	_, ok = plan.FindExercise("Lunes", 1, "peso muerto")
	assert.True(t, ok)

	// Index and name must both match.
	_, ok = plan.FindExercise("lunes", 1, "Sentadilla")
	assert.False(t, ok)
	_, ok = plan.FindExercise("martes", 0, "Sentadilla")
	assert.False(t, ok)
}

func TestWeightRecord_SortedSets(t *testing.T) {
	rec := models.WeightRecord{
		Sets: []models.WeightEntry{
			{SetNumber: 2, Weight: 90},
			{SetNumber: 0, Weight: 80},
			{SetNumber: 1, Weight: 85},
		},
	}
	sets := rec.SortedSets()
	require.Len(t, sets, 3)
	assert.Equal(t, 80.0, sets[0].Weight)
	assert.Equal(t, 85.0, sets[1].Weight)
	assert.Equal(t, 90.0, sets[2].Weight)

	// The original slice is untouched.
	assert.Equal(t, 2, rec.Sets[0].SetNumber)
}

func TestWeightRecord_SortedSets_StableOnTies(t *testing.T) {
	// Positional imports end up with duplicate set numbers; list order
	// breaks the tie.
	rec := models.WeightRecord{
		Sets: []models.WeightEntry{
			{SetNumber: 0, Weight: 80, Reps: 10},
			{SetNumber: 0, Weight: 85, Reps: 8},
		},
	}
	sets := rec.SortedSets()
	assert.Equal(t, 80.0, sets[0].Weight)
	assert.Equal(t, 85.0, sets[1].Weight)
}

func TestWeightRecord_Identity(t *testing.T) {
	rec := models.WeightRecord{
		UserID:        "u1",
		PlanID:        "p1",
		Day:           "lunes",
		ExerciseIndex: 0,
		ExerciseName:  "Sentadilla",
		WeekStart:     "2024-01-01",
	}
	a := rec.Identity()
	rec.Sets = []models.WeightEntry{{SetNumber: 0, Weight: 100}}
	rec.Note = "different content"
	assert.Equal(t, a, rec.Identity(), "identity ignores content fields")
}
