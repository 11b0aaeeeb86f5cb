package ledger

import (
	"fmt"
	"strings"
)

// NoSet marks a key that addresses a whole exercise instead of one set.
// Note keys and legacy exercise-level lookups use it.
const NoSet = -1

// Key identifies one (exercise, week) slot in the weight cache, optionally
// narrowed to a single set. Keys are compared as values and never parsed
// back; String exists only for legacy-format compatibility.
type Key struct {
	PlanID        string
	Day           string
	ExerciseIndex int
	Exercise      string // normalized form, see NormalizeExercise
	SetIndex      int    // NoSet when the key covers the whole exercise
	Week          string // canonical week-start, YYYY-MM-DD
}

var accentFolder = strings.NewReplacer(
	"á", "a",
	"é", "e",
	"í", "i",
	"ó", "o",
	"ú", "u",
	"ñ", "n",
)

// NormalizeExercise folds an exercise name into its key form: lower case,
// underscores for spaces, Spanish accents stripped. Only á é í ó ú and ñ
// are folded; anything else passes through unchanged.
func NormalizeExercise(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")
	return accentFolder.Replace(name)
}

// NewKey builds the canonical key for one set of an exercise in a week.
// Pass NoSet as setIndex for an exercise-level key. Day and week are caller
// contract: day comes from the plan, week from the week calculator.
func NewKey(planID, day string, exerciseIndex int, exerciseName string, setIndex int, week string) Key {
	return Key{
		PlanID:        planID,
		Day:           day,
		ExerciseIndex: exerciseIndex,
		Exercise:      NormalizeExercise(exerciseName),
		SetIndex:      setIndex,
		Week:          week,
	}
}

// WithSet returns a copy of the key narrowed to the given set index.
func (k Key) WithSet(setIndex int) Key {
	k.SetIndex = setIndex
	return k
}

// String renders the historical string form of the key:
// [planID-]day-exerciseIndex-name[-setIndex]-week.
func (k Key) String() string {
	var sb strings.Builder
	if k.PlanID != "" {
		sb.WriteString(k.PlanID)
		sb.WriteByte('-')
	}
	fmt.Fprintf(&sb, "%s-%d-%s", k.Day, k.ExerciseIndex, k.Exercise)
	if k.SetIndex != NoSet {
		fmt.Fprintf(&sb, "-%d", k.SetIndex)
	}
	sb.WriteByte('-')
	sb.WriteString(k.Week)
	return sb.String()
}

// LegacyRawKey renders the pre-exercise-name key string directly, for
// rehydrating records that carry no exercise name at all.
func LegacyRawKey(planID, day string, exerciseIndex, setIndex int, week string) string {
	k := Key{PlanID: planID, Day: day, ExerciseIndex: exerciseIndex, SetIndex: setIndex, Week: week}
	return k.LegacyStrings()[0]
}

// LegacyStrings lists the key formats used before exercise names were part
// of the key, in lookup priority order. Old persisted entries may still sit
// under one of these; see Cache.MigrateLegacyRead.
func (k Key) LegacyStrings() []string {
	set := ""
	if k.SetIndex != NoSet {
		set = fmt.Sprintf("-%d", k.SetIndex)
	}
	candidates := make([]string, 0, 2)
	if k.PlanID != "" {
		candidates = append(candidates,
			fmt.Sprintf("%s-%s-%d%s-%s", k.PlanID, k.Day, k.ExerciseIndex, set, k.Week))
	}
	candidates = append(candidates,
		fmt.Sprintf("%s-%d%s-%s", k.Day, k.ExerciseIndex, set, k.Week))
	return candidates
}
