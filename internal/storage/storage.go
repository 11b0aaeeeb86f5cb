package storage

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sebasblancogonz/bulkup/internal/config"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

type Storage struct {
	DB *sql.DB
}

func NewStorage() (*Storage, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("Failed to load config: %w", err)
	}

	url := cfg.DB.ConnectionString
	if url == "" {
		url = os.Getenv("BULKUP_DATABASE_URL")
	}
	if url == "" {
		return nil, fmt.Errorf("No database connection string configured")
	}

	db, err := sql.Open("libsql", url)
	if err != nil {
		return nil, fmt.Errorf("Failed to open db %s: %w", url, err)
	}

	if err := InitializeDB(db); err != nil {
		return nil, fmt.Errorf("Failed to initialize database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func InitializeDB(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS training_plans (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            description TEXT,
            created_at TEXT NOT NULL,
            is_active INTEGER NOT NULL DEFAULT 0
        );

        CREATE TABLE IF NOT EXISTS plan_exercises (
            id TEXT PRIMARY KEY,
            plan_id TEXT NOT NULL,
            day TEXT NOT NULL,
            order_index INTEGER NOT NULL,
            name TEXT NOT NULL,
            sets INTEGER NOT NULL,
            reps TEXT NOT NULL,
            FOREIGN KEY (plan_id) REFERENCES training_plans(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS weight_records (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            plan_id TEXT NOT NULL,
            day TEXT NOT NULL,
            exercise_index INTEGER NOT NULL,
            exercise_name TEXT NOT NULL,
            week_start TEXT NOT NULL,
            sets TEXT NOT NULL,
            note TEXT NOT NULL DEFAULT '',
            needs_sync INTEGER NOT NULL DEFAULT 0,
            updated_at TEXT NOT NULL,
            UNIQUE (user_id, plan_id, day, exercise_index, exercise_name, week_start)
        );

        CREATE INDEX IF NOT EXISTS idx_weight_records_week
            ON weight_records (user_id, week_start);
    `)
	return err
}
