package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sebasblancogonz/bulkup/internal/engine"
	"github.com/sebasblancogonz/bulkup/internal/models"
)

var (
	logSetIndex int
	logWeight   float64
	logNote     string
)

var logCmd = &cobra.Command{
	Use:   "log [day] [exercise-index]",
	Short: "Log a weight for one set of the current week and save it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day := args[0]

		exIdx, err := strconv.Atoi(args[1])
		if err != nil || exIdx < 1 {
			return fmt.Errorf("Invalid exercise index. Must be a positive integer")
		}
		exIdx--

		if logSetIndex < 1 {
			return fmt.Errorf("Invalid set index (should be 1-based)")
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		// Warm the cache first so the save keeps the week's other sets.
		if err := eng.LoadWeek(ctx, time.Now()); err != nil {
			return fmt.Errorf("Failed to load current week: %w", err)
		}

		ex, err := resolveExercise(cmd, eng, day, exIdx)
		if err != nil {
			return err
		}

		eng.UpdateWeight(day, exIdx, ex.Name, logSetIndex-1, logWeight)

		note := logNote
		if note == "" {
			note, _ = eng.NoteFor(day, exIdx, ex.Name)
		}

		synced, err := eng.SaveWeek(ctx, day, exIdx, ex.Name, note)
		if err != nil {
			return fmt.Errorf("Failed to save week: %w", err)
		}

		done := eng.CompletedSets(day, exIdx, ex.Name, ex.Sets)
		if synced {
			fmt.Printf("✅ Logged %.1fkg on set %d of '%s' (%d/%d sets done)\n",
				logWeight, logSetIndex, ex.Name, done, ex.Sets)
		} else {
			fmt.Printf("✅ Logged %.1fkg on set %d of '%s' (%d/%d sets done, not yet synced)\n",
				logWeight, logSetIndex, ex.Name, done, ex.Sets)
		}
		return nil
	},
}

// resolveExercise finds the day's exercise at the zero-based index.
func resolveExercise(cmd *cobra.Command, eng *engine.Engine, day string, exIdx int) (models.PlanExercise, error) {
	plan, err := eng.Plan(cmd.Context())
	if err != nil {
		return models.PlanExercise{}, err
	}

	for _, d := range plan.Days {
		if !strings.EqualFold(d.Day, day) {
			continue
		}
		for _, ex := range d.Exercises {
			if ex.OrderIndex == exIdx {
				return ex, nil
			}
		}
		return models.PlanExercise{}, fmt.Errorf("Exercise index out of range for %s", day)
	}
	return models.PlanExercise{}, fmt.Errorf("Day %q not found in plan %q", day, plan.Name)
}

func init() {
	logCmd.Flags().IntVarP(&logSetIndex, "set", "s", 0, "Set number (1-based)")
	logCmd.Flags().Float64VarP(&logWeight, "weight", "w", 0, "Weight used for the set (0 clears it)")
	logCmd.Flags().StringVarP(&logNote, "note", "n", "", "Optional note for the exercise")
	logCmd.MarkFlagRequired("set")
	logCmd.MarkFlagRequired("weight")
	rootCmd.AddCommand(logCmd)
}
