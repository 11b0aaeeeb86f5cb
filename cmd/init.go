package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/sebasblancogonz/bulkup/internal/config"
	"github.com/sebasblancogonz/bulkup/internal/storage"
)

const defaultConfig = `[database]
connection_string = "file:./local.db?cache=shared&mode=rwc"

[api]
base_url = "https://api.bulkup.fit"

[sync]
lookback_weeks = 4
`

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file and initialize the local database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("Failed to resolve config path: %w", err)
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("Failed to create config dir: %w", err)
			}
			if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
				return fmt.Errorf("Failed to write config: %w", err)
			}
			fmt.Printf("✅ Config written to %s\n", path)
		}

		db, err := sql.Open("libsql", "file:./local.db?cache=shared&mode=rwc")
		if err != nil {
			return fmt.Errorf("Failed to open database: %w", err)
		}
		defer db.Close()

		if err := storage.InitializeDB(db); err != nil {
			return fmt.Errorf("Failed to initialize database: %w", err)
		}
		fmt.Println("✅ Database initialized successfully as local.db")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSetupCmd)
}
