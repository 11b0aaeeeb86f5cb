package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push locally saved records that are still waiting for the remote",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		synced, pending, err := eng.RetryPending(cmd.Context())
		if err != nil {
			return fmt.Errorf("Failed to sync pending records: %w", err)
		}

		if synced == 0 && pending == 0 {
			fmt.Println("✅ Nothing to sync")
			return nil
		}
		fmt.Printf("✅ Synced %d record(s), %d still pending\n", synced, pending)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
