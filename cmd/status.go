package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show completion progress for the current week",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := eng.LoadWeek(ctx, time.Now()); err != nil {
			return fmt.Errorf("Failed to load current week: %w", err)
		}
		if !eng.IsFullyLoaded() {
			return fmt.Errorf("Week not fully loaded, try again")
		}

		plan, err := eng.Plan(ctx)
		if err != nil {
			return err
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		fmt.Printf("%s — week of %s\n", green(plan.Name), cyan(eng.CurrentWeek()))

		for _, day := range plan.Days {
			total, done := 0, 0
			for _, ex := range day.Exercises {
				total += ex.Sets
				done += eng.CompletedSets(day.Day, ex.OrderIndex, ex.Name, ex.Sets)
			}
			pct := 0.0
			if total > 0 {
				pct = 100 * float64(done) / float64(total)
			}
			fmt.Printf("  %s %d/%d sets (%.0f%%)\n", yellow(day.Day+":"), done, total, pct)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
