package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var noteText string

var setNoteCmd = &cobra.Command{
	Use:   "note [day] [exercise-index]",
	Short: "Set a note for an exercise in the current week",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day := args[0]

		exIdx, err := strconv.Atoi(args[1])
		if err != nil || exIdx < 1 {
			return fmt.Errorf("Invalid exercise index (should be 1-based)")
		}
		exIdx--

		eng, err := newEngine()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		// The save re-persists the whole exercise week, so the cache must
		// hold the already-logged weights first.
		if err := eng.LoadWeek(ctx, time.Now()); err != nil {
			return fmt.Errorf("Failed to load current week: %w", err)
		}

		ex, err := resolveExercise(cmd, eng, day, exIdx)
		if err != nil {
			return err
		}

		synced, err := eng.SaveWeek(ctx, day, exIdx, ex.Name, noteText)
		if err != nil {
			return fmt.Errorf("Failed to save note: %w", err)
		}

		if synced {
			fmt.Println("✅ Note set successfully")
		} else {
			fmt.Println("✅ Note saved locally (not yet synced)")
		}
		return nil
	},
}

func init() {
	setNoteCmd.Flags().StringVarP(&noteText, "note", "n", "", "Note text to set for the exercise")
	setNoteCmd.MarkFlagRequired("note")
	rootCmd.AddCommand(setNoteCmd)
}
