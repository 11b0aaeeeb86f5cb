package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sebasblancogonz/bulkup/internal/storage"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage training plans",
}

var planImportCmd = &cobra.Command{
	Use:   "import [file.toml]",
	Short: "Import a training plan from a TOML file and make it active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("Failed to read plan file: %w", err)
		}

		st, err := storage.NewStorage()
		if err != nil {
			return err
		}

		plan, err := st.ImportPlan(cmd.Context(), data)
		if err != nil {
			return fmt.Errorf("Failed to import plan: %w", err)
		}

		fmt.Printf("✅ Plan '%s' imported and set active\n", plan.Name)
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active training plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := storage.NewStorage()
		if err != nil {
			return err
		}

		plan, err := st.ActivePlan(cmd.Context())
		if err != nil {
			return err
		}
		if plan == nil {
			return fmt.Errorf("No active plan, import one with 'bulkup plan import'")
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		fmt.Printf("%s\n", green(plan.Name))
		if plan.Description != "" {
			fmt.Printf("%s\n", plan.Description)
		}
		for _, day := range plan.Days {
			fmt.Printf("\n%s\n", yellow(day.Day))
			for _, ex := range day.Exercises {
				fmt.Printf("  %s %s — %d × %s\n",
					cyan(fmt.Sprintf("%d.", ex.OrderIndex+1)), ex.Name, ex.Sets, ex.Reps)
			}
		}
		return nil
	},
}

func init() {
	planCmd.AddCommand(planImportCmd)
	planCmd.AddCommand(planShowCmd)
	rootCmd.AddCommand(planCmd)
}
