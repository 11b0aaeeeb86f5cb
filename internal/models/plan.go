package models

import (
	"strconv"
	"strings"
	"time"
)

type TrainingPlan struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Days        []PlanDay `json:"days"`
}

type PlanDay struct {
	Day       string         `json:"day"`
	Exercises []PlanExercise `json:"exercises"`
}

type PlanExercise struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	OrderIndex int    `json:"order_index"`
	Sets       int    `json:"sets"`
	Reps       string `json:"reps"` // Free-form: "10", "8-12", "AMRAP"...
}

// TargetReps derives a single rep number from the free-form rep spec:
// a range takes its upper bound, a plain number parses directly,
// anything else (empty, AMRAP, ...) yields 0.
func (e PlanExercise) TargetReps() int {
	spec := strings.TrimSpace(e.Reps)
	if spec == "" {
		return 0
	}
	if idx := strings.LastIndex(spec, "-"); idx > 0 {
		spec = spec[idx+1:]
	}
	reps, err := strconv.Atoi(strings.TrimSpace(spec))
	if err != nil || reps < 0 {
		return 0
	}
	return reps
}

// FindExercise looks up an exercise by day, position and name.
func (p *TrainingPlan) FindExercise(day string, exerciseIndex int, exerciseName string) (PlanExercise, bool) {
	for _, d := range p.Days {
		if !strings.EqualFold(d.Day, day) {
			continue
		}
		for _, ex := range d.Exercises {
			if ex.OrderIndex == exerciseIndex && strings.EqualFold(ex.Name, exerciseName) {
				return ex, true
			}
		}
	}
	return PlanExercise{}, false
}

//
// For TOML parsing only
//

type PlanTOML struct {
	Name        string        `toml:"name"`
	Description string        `toml:"description"`
	Days        []PlanDayTOML `toml:"day"`
}

type PlanDayTOML struct {
	Name      string             `toml:"name"`
	Exercises []PlanExerciseTOML `toml:"exercise"`
}

type PlanExerciseTOML struct {
	Name string `toml:"name"`
	Sets int    `toml:"sets"`
	Reps string `toml:"reps"`
}
