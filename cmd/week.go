package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sebasblancogonz/bulkup/internal/engine"
	"github.com/sebasblancogonz/bulkup/internal/utils"
)

var weekCmd = &cobra.Command{
	Use:   "week [prev|next|current|YYYY-MM-DD]",
	Short: "Load and display a training week (current week by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		target := "current"
		if len(args) == 1 {
			target = args[0]
		}

		switch target {
		case "current":
			err = eng.ChangeWeek(ctx, engine.WeekCurrent)
		case "prev":
			err = eng.ChangeWeek(ctx, engine.WeekPrevious)
		case "next":
			err = eng.ChangeWeek(ctx, engine.WeekNext)
		default:
			var date time.Time
			date, err = time.Parse("2006-01-02", target)
			if err != nil {
				return fmt.Errorf("Invalid week %q, expected prev, next, current or YYYY-MM-DD", target)
			}
			err = eng.LoadWeek(ctx, date)
		}
		if err != nil {
			return fmt.Errorf("Failed to load week: %w", err)
		}

		return printWeek(cmd, eng)
	},
}

func printWeek(cmd *cobra.Command, eng *engine.Engine) error {
	ctx := cmd.Context()

	plan, err := eng.Plan(ctx)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	monday, _ := utils.ParseWeek(eng.CurrentWeek())
	sunday := monday.AddDate(0, 0, 6)
	fmt.Printf("%s %s\n", green(plan.Name), cyan(fmt.Sprintf("(%s → %s)",
		monday.Format("Jan 02"), sunday.Format("Jan 02"))))

	for _, day := range plan.Days {
		fmt.Printf("\n%s\n", yellow(day.Day))

		for _, ex := range day.Exercises {
			done := eng.CompletedSets(day.Day, ex.OrderIndex, ex.Name, ex.Sets)
			fmt.Printf("  %s %s (%d/%d sets)\n",
				cyan(fmt.Sprintf("%d.", ex.OrderIndex+1)), ex.Name, done, ex.Sets)

			for setIdx := 0; setIdx < ex.Sets; setIdx++ {
				weight, ok := eng.WeightFor(day.Day, ex.OrderIndex, ex.Name, setIdx)
				setStr := "—"
				if ok {
					setStr = fmt.Sprintf("%.1fkg × %s", weight, ex.Reps)
				}
				fmt.Printf("     set %d: %s\n", setIdx+1, setStr)
			}

			if note, ok := eng.NoteFor(day.Day, ex.OrderIndex, ex.Name); ok {
				fmt.Printf("     %s %s\n", green("Note:"), note)
			}

			if rec, err := eng.RecordFor(ctx, day.Day, ex.OrderIndex, ex.Name); err == nil && rec != nil && rec.NeedsSync {
				fmt.Printf("     %s\n", red("not yet synced"))
			}
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(weekCmd)
}
